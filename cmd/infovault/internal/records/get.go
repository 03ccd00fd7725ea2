package records

import (
	"errors"
	"fmt"
	"os"

	"github.com/nspcc-dev/infovault/cmd/infovault/internal/common"
	"github.com/nspcc-dev/infovault/cmd/internal/cmderr"
	"github.com/nspcc-dev/infovault/pkg/vault"
	"github.com/spf13/cobra"
)

const outFlag = "out"

// notFoundExitCode is returned by get command if the record is missing.
const notFoundExitCode = 2

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Load record",
		Long:  "Load record and write its data to the standard output or to the file",
		Args:  cobra.NoArgs,
		RunE:  getFunc,
	}

	common.AddConfigFileFlag(cmd)
	common.AddAddressFlags(cmd)

	cmd.Flags().String(outFlag, "", "File to write record data to")

	return cmd
}

func getFunc(cmd *cobra.Command, _ []string) error {
	v, err := common.OpenVault(cmd)
	if err != nil {
		return err
	}
	defer v.Close()

	data, err := v.Load(vault.LoadPrm{
		Address: common.Address(cmd),
		Root:    common.Root(cmd),
	})
	if err != nil {
		err = fmt.Errorf("could not load record: %w", err)
		if errors.Is(err, vault.ErrNotFound) {
			return cmderr.ExitErr{Code: notFoundExitCode, Cause: err}
		}
		return err
	}

	out, _ := cmd.Flags().GetString(outFlag)
	if out == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return common.Errf("print failure: %w", err)
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("could not write file: %w", err)
	}

	cmd.Printf("[%s] Record data saved to %s\n", common.Address(cmd), out)

	return nil
}
