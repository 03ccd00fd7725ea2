package records

import (
	"fmt"

	"github.com/nspcc-dev/infovault/cmd/infovault/internal/common"
	"github.com/nspcc-dev/infovault/pkg/vault"
	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm"},
		Short:   "Delete record",
		Long:    "Delete record, deletion of a missing record succeeds",
		Args:    cobra.NoArgs,
		RunE:    deleteFunc,
	}

	common.AddConfigFileFlag(cmd)
	common.AddAddressFlags(cmd)

	return cmd
}

func deleteFunc(cmd *cobra.Command, _ []string) error {
	v, err := common.OpenVault(cmd)
	if err != nil {
		return err
	}
	defer v.Close()

	addr := common.Address(cmd)

	err = v.Delete(vault.DeletePrm{
		Address: addr,
		Root:    common.Root(cmd),
	})
	if err != nil {
		return fmt.Errorf("could not delete record: %w", err)
	}

	cmd.Printf("[%s] Record deleted\n", addr)

	return nil
}
