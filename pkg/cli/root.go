// Package cli implements the marketplace operator command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the marketplace command tree.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "marketplace",
		Short:         "Compile marketplace subgraph queries and inspect NFT contracts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCompileCmd(false),
		newCompileCmd(true),
		newOneCmd(),
		newIDsCmd(),
		newIDCmd(),
		newDiscoverCmd(),
		newSeedCmd(),
		newVersionCmd(version),
	)
	return root
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "marketplace %s\n", version)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
