// Package records provides commands working with the vault records
// directly, without the service.
package records

import "github.com/spf13/cobra"

// Commands returns record commands.
func Commands() []*cobra.Command {
	return []*cobra.Command{
		newPutCmd(),
		newGetCmd(),
		newDeleteCmd(),
		newListCmd(),
		newRangeCmd(),
		newLabelsCmd(),
	}
}
