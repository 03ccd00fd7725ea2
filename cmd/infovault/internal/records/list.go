package records

import (
	"fmt"
	"strconv"

	"github.com/nspcc-dev/infovault/cmd/infovault/internal/common"
	"github.com/nspcc-dev/infovault/pkg/vault"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const (
	startFlag = "start"
	countFlag = "count"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records of the label",
		Long:  "List keys and sizes of the label records sorted by key",
		Args:  cobra.NoArgs,
		RunE:  listFunc,
	}

	common.AddConfigFileFlag(cmd)
	common.AddLabelFlag(cmd)

	return cmd
}

func listFunc(cmd *cobra.Command, _ []string) error {
	v, err := common.OpenVault(cmd)
	if err != nil {
		return err
	}
	defer v.Close()

	records, err := v.List(vault.ListPrm{
		Label: common.Label(cmd),
		Root:  common.Root(cmd),
	})
	if err != nil {
		return fmt.Errorf("could not list records: %w", err)
	}

	out := tablewriter.NewWriter(cmd.OutOrStdout())
	out.SetHeader([]string{"#", "Key", "Size"})
	out.SetAutoWrapText(false)

	for i := range records {
		out.Append([]string{
			strconv.Itoa(i + 1),
			records[i].Key,
			strconv.FormatInt(records[i].Size, 10),
		})
	}

	out.Render()

	return nil
}

func newRangeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "range",
		Short: "Load page of the label records",
		Long: `Load records from the 1-based window [start, start+count-1] of the label
records sorted by key. All records are loaded if count is not positive.`,
		Args: cobra.NoArgs,
		RunE: rangeFunc,
	}

	common.AddConfigFileFlag(cmd)
	common.AddLabelFlag(cmd)

	cmd.Flags().Int(startFlag, 1, "Position of the first record, starting from 1")
	cmd.Flags().Int(countFlag, 0, "Number of records to load")

	return cmd
}

func rangeFunc(cmd *cobra.Command, _ []string) error {
	v, err := common.OpenVault(cmd)
	if err != nil {
		return err
	}
	defer v.Close()

	start, _ := cmd.Flags().GetInt(startFlag)
	count, _ := cmd.Flags().GetInt(countFlag)

	var res [][]byte

	if count > 0 {
		res, err = v.LoadRange(vault.RangePrm{
			Label: common.Label(cmd),
			Start: start,
			Count: count,
			Root:  common.Root(cmd),
		})
	} else {
		res, err = v.LoadAll(vault.AllPrm{
			Label: common.Label(cmd),
			Root:  common.Root(cmd),
		})
	}
	if err != nil {
		return fmt.Errorf("could not load records: %w", err)
	}

	for i := range res {
		cmd.Println(string(res[i]))
	}

	return nil
}

func newLabelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "List labels",
		Long:  "List labels of the storage root sorted by name",
		Args:  cobra.NoArgs,
		RunE:  labelsFunc,
	}

	common.AddConfigFileFlag(cmd)
	common.AddExternalFlag(cmd)

	return cmd
}

func labelsFunc(cmd *cobra.Command, _ []string) error {
	v, err := common.OpenVault(cmd)
	if err != nil {
		return err
	}
	defer v.Close()

	labels, err := v.Labels(common.Root(cmd))
	if err != nil {
		return fmt.Errorf("could not list labels: %w", err)
	}

	out := tablewriter.NewWriter(cmd.OutOrStdout())
	out.SetHeader([]string{"Label"})

	for i := range labels {
		out.Append([]string{labels[i]})
	}

	out.Render()

	return nil
}
