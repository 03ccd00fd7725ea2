package main

import (
	"os"

	"github.com/nspcc-dev/infovault/cmd/infovault/internal/records"
	"github.com/nspcc-dev/infovault/cmd/internal/cmderr"
	"github.com/nspcc-dev/infovault/misc"
	"github.com/spf13/cobra"
)

var command = &cobra.Command{
	Use:   "infovault",
	Short: "InfoVault record storage",
	Long: `InfoVault stores named records grouped by labels in a local directory tree
and serves them over NATS.`,
	RunE:          entryPoint,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func entryPoint(cmd *cobra.Command, _ []string) error {
	printVersion, _ := cmd.Flags().GetBool("version")
	if printVersion {
		cmd.Print(misc.BuildInfo("InfoVault"))

		return nil
	}

	return cmd.Usage()
}

func init() {
	// use stdout as default output for cmd.Print()
	command.SetOut(os.Stdout)
	command.Flags().Bool("version", false, "Application version")
	command.AddCommand(newServeCmd(), newDeadLettersCmd())
	command.AddCommand(records.Commands()...)
}

func main() {
	err := command.Execute()
	cmderr.ExitOnErr(err)
}
