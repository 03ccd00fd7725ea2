package main

import (
	"errors"
	"fmt"
	"time"

	deadletterconfig "github.com/nspcc-dev/infovault/cmd/infovault/config/deadletter"
	"github.com/nspcc-dev/infovault/cmd/infovault/internal/common"
	"github.com/nspcc-dev/infovault/pkg/services/vault/deadletter"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const purgeFlag = "purge"

func newDeadLettersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dead-letters",
		Short: "List envelopes with unknown operations",
		Long: `List envelopes stored by the service because their operations are unknown.
The service must be stopped, the database is locked while it is running.`,
		Args: cobra.NoArgs,
		RunE: deadLettersFunc,
	}

	common.AddConfigFileFlag(cmd)
	cmd.Flags().Bool(purgeFlag, false, "Remove listed envelopes")

	return cmd
}

func deadLettersFunc(cmd *cobra.Command, _ []string) error {
	c, err := common.ReadConfig(cmd)
	if err != nil {
		return err
	}

	p := deadletterconfig.Path(c)
	if p == "" {
		return errors.New("dead letter storage is not configured")
	}

	s, err := deadletter.Open(p, deadletter.WithTimeout(deadletterconfig.Timeout(c)))
	if err != nil {
		return err
	}
	defer s.Close()

	var letters []deadletter.Letter

	err = s.Iterate(func(l deadletter.Letter) error {
		letters = append(letters, l)
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not read dead letters: %w", err)
	}

	out := tablewriter.NewWriter(cmd.OutOrStdout())
	out.SetHeader([]string{"ID", "Operation", "Received"})
	out.SetAutoWrapText(false)

	for _, l := range letters {
		out.Append([]string{
			l.Envelope.ID.String(),
			string(l.Envelope.Operation),
			l.Received.Format(time.RFC3339),
		})
	}

	out.Render()

	if purge, _ := cmd.Flags().GetBool(purgeFlag); purge {
		for _, l := range letters {
			if err := s.Delete(l.Envelope.ID); err != nil {
				return fmt.Errorf("could not remove dead letter %s: %w", l.Envelope.ID, err)
			}
		}

		cmd.Printf("%d dead letters removed\n", len(letters))
	}

	return nil
}
