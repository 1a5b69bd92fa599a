package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/DeBrosOfficial/marketplace/pkg/catalog"
	"github.com/DeBrosOfficial/marketplace/pkg/subgraph"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

func newDiscoverCmd() *cobra.Command {
	var (
		url     string
		network string
		chainID int64
		timeout time.Duration
		format  string
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List the approved collection contracts of a subgraph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, ok := catalog.ParseNetwork(network)
			if !ok {
				return fmt.Errorf("unknown network %q, expected ETHEREUM or MATIC", network)
			}
			if chainID <= 0 {
				return fmt.Errorf("--chain-id must be positive")
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			client := subgraph.NewClient(subgraph.Config{URL: url, Timeout: timeout}, nil, nil)
			found, err := catalog.Discover(ctx, client, n, catalog.ChainID(chainID))
			if err != nil {
				return fmt.Errorf("discovery failed: %w", err)
			}
			return printContracts(cmd.OutOrStdout(), format, found)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Collections subgraph URL (required)")
	cmd.Flags().StringVar(&network, "network", string(catalog.NetworkMatic), "ETHEREUM or MATIC")
	cmd.Flags().Int64Var(&chainID, "chain-id", int64(catalog.ChainMaticMainnet), "Chain id recorded on discovered contracts")
	cmd.Flags().DurationVar(&timeout, "timeout", subgraph.DefaultTimeout, "Per-request timeout")
	cmd.Flags().StringVar(&format, "format", formatJSON, "Output format: json or table")
	cmd.MarkFlagRequired("url")
	return cmd
}

func newSeedCmd() *cobra.Command {
	var (
		chainID int64
		format  string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "List the built-in marketplace contracts of a chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printContracts(cmd.OutOrStdout(), format, catalog.MarketplaceContracts(catalog.ChainID(chainID)))
		},
	}

	cmd.Flags().Int64Var(&chainID, "chain-id", int64(catalog.ChainEthereumMainnet), "Chain id")
	cmd.Flags().StringVar(&format, "format", formatJSON, "Output format: json or table")
	return cmd
}

func printContracts(w io.Writer, format string, list []catalog.Contract) error {
	switch format {
	case formatJSON:
		if list == nil {
			list = []catalog.Contract{}
		}
		return writeJSON(w, list)
	case formatTable:
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		fmt.Fprintln(tw, "NAME\tADDRESS\tCATEGORY\tNETWORK\tCHAIN")
		for _, c := range list {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", c.Name, c.Address, c.Category, c.Network, c.ChainID)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(w, "\nTotal: %d\n", len(list))
		return nil
	default:
		return fmt.Errorf("unknown format %q, expected json or table", format)
	}
}
