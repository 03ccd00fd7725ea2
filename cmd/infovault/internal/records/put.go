package records

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cheggaaa/pb"
	"github.com/nspcc-dev/infovault/cmd/infovault/internal/common"
	"github.com/nspcc-dev/infovault/pkg/vault"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	dataFlag       = "data"
	fileFlag       = "file"
	noProgressFlag = "no-progress"
	autoCreateFlag = "auto-create"
)

func newPutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put",
		Short: "Save record",
		Long: `Save record replacing any previous contents. Data is taken from --data flag,
from the file passed via --file flag or from the standard input.`,
		Args: cobra.NoArgs,
		RunE: putFunc,
	}

	common.AddConfigFileFlag(cmd)
	common.AddAddressFlags(cmd)

	cmd.Flags().String(dataFlag, "", "Record data")
	cmd.Flags().String(fileFlag, "", "Path to the file with record data")
	cmd.Flags().Bool(noProgressFlag, false, "Do not show progress bar")
	cmd.Flags().Bool(autoCreateFlag, true, "Create missing label")
	cmd.MarkFlagsMutuallyExclusive(dataFlag, fileFlag)

	return cmd
}

func putFunc(cmd *cobra.Command, _ []string) error {
	data, err := readPayload(cmd)
	if err != nil {
		return err
	}

	v, err := common.OpenVault(cmd)
	if err != nil {
		return err
	}
	defer v.Close()

	autoCreate, _ := cmd.Flags().GetBool(autoCreateFlag)
	addr := common.Address(cmd)

	err = v.Save(vault.SavePrm{
		Address:    addr,
		Data:       data,
		AutoCreate: autoCreate,
		Root:       common.Root(cmd),
	})
	if err != nil {
		return fmt.Errorf("could not save record: %w", err)
	}

	cmd.Printf("[%s] Record successfully saved (%d bytes)\n", addr, len(data))

	return nil
}

func readPayload(cmd *cobra.Command) ([]byte, error) {
	if cmd.Flags().Changed(dataFlag) {
		data, _ := cmd.Flags().GetString(dataFlag)
		return []byte(data), nil
	}

	if filename, _ := cmd.Flags().GetString(fileFlag); filename != "" {
		return readFile(cmd, filename)
	}

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, errors.New("no record data: use --data, --file or pipe data to the standard input")
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	return data, common.Errf("can't read standard input: %w", err)
}

func readFile(cmd *cobra.Command, filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("can't open file '%s': %w", filename, err)
	}
	defer f.Close()

	var r io.Reader = f

	noProgress, _ := cmd.Flags().GetBool(noProgressFlag)
	if !noProgress {
		fi, err := f.Stat()
		if err != nil {
			cmd.PrintErrf("Failed to get file size, progress bar is disabled: %v\n", err)
		} else {
			p := pb.New64(fi.Size())
			p.Output = cmd.OutOrStdout()
			p.SetUnits(pb.U_BYTES)
			p.Start()
			defer p.Finish()

			r = p.NewProxyReader(f)
		}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("can't read file '%s': %w", filename, err)
	}

	return data, nil
}
