package common

import (
	"github.com/nspcc-dev/infovault/pkg/vault"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	ConfigFlag          = "config"
	configFlagShorthand = "c"
	configFlagUsage     = "Path to the config file, ENV variables are used if omitted"

	LabelFlag      = "label"
	labelFlagUsage = "Record label, records without label are stored in the root"

	KeyFlag      = "key"
	keyFlagUsage = "Record key"

	ExternalFlag      = "external"
	externalFlagUsage = "Use external storage root"
)

// AddConfigFileFlag adds the config file flag to the command.
func AddConfigFileFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(ConfigFlag, configFlagShorthand, "", configFlagUsage)
}

// AddExternalFlag adds the external root flag to the command.
func AddExternalFlag(cmd *cobra.Command) {
	addExternalFlag(cmd.Flags())
}

// AddLabelFlag adds the label and external root flags to the command.
func AddLabelFlag(cmd *cobra.Command) {
	ff := cmd.Flags()

	ff.String(LabelFlag, "", labelFlagUsage)
	addExternalFlag(ff)
}

// AddAddressFlags adds label, key and external root flags to the command.
// Key flag is required.
func AddAddressFlags(cmd *cobra.Command) {
	AddLabelFlag(cmd)
	cmd.Flags().String(KeyFlag, "", keyFlagUsage)
	_ = cmd.MarkFlagRequired(KeyFlag)
}

func addExternalFlag(ff *pflag.FlagSet) {
	ff.Bool(ExternalFlag, false, externalFlagUsage)
}

// Address returns record address from the command flags.
func Address(cmd *cobra.Command) vault.Address {
	label, _ := cmd.Flags().GetString(LabelFlag)
	key, _ := cmd.Flags().GetString(KeyFlag)

	return vault.Address{
		Label: label,
		Key:   key,
	}
}

// Label returns record label from the command flags.
func Label(cmd *cobra.Command) string {
	label, _ := cmd.Flags().GetString(LabelFlag)
	return label
}

// Root returns storage root selected by the command flags.
func Root(cmd *cobra.Command) vault.Root {
	if external, _ := cmd.Flags().GetBool(ExternalFlag); external {
		return vault.RootExternal
	}
	return vault.RootInternal
}
