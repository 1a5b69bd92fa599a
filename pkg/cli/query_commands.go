package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/DeBrosOfficial/marketplace/pkg/catalog"
	"github.com/DeBrosOfficial/marketplace/pkg/httputil"
	"github.com/DeBrosOfficial/marketplace/pkg/nfts"
)

// filterFlags mirrors nfts.FilterSpec on the command line.
type filterFlags struct {
	category            string
	owner               string
	search              string
	contractAddresses   []string
	ids                 []string
	sortBy              string
	isOnSale            bool
	wearableCategory    string
	isWearableHead      bool
	isWearableAccessory bool
	wearableGenders     []string
	emoteCategory       string
	emoteGenders        []string
	emotePlayMode       string
	itemRarities        []string
	first               int
	skip                int
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&ff.category, "category", "", "parcel, estate, wearable, emote or ens")
	f.StringVar(&ff.owner, "owner", "", "Owner address")
	f.StringVar(&ff.search, "search", "", "Full text search")
	f.StringSliceVar(&ff.contractAddresses, "contract", nil, "Contract address (repeatable)")
	f.StringSliceVar(&ff.ids, "id", nil, "NFT id <contract>-<token> (repeatable)")
	f.StringVar(&ff.sortBy, "sort-by", "", "newest, recently_listed, recently_sold, name or cheapest")
	f.BoolVar(&ff.isOnSale, "on-sale", false, "Only NFTs with an open order")
	f.StringVar(&ff.wearableCategory, "wearable-category", "", "Wearable category")
	f.BoolVar(&ff.isWearableHead, "wearable-head", false, "Only head wearables")
	f.BoolVar(&ff.isWearableAccessory, "wearable-accessory", false, "Only accessory wearables")
	f.StringSliceVar(&ff.wearableGenders, "wearable-gender", nil, "male or female (repeatable)")
	f.StringVar(&ff.emoteCategory, "emote-category", "", "Emote category")
	f.StringSliceVar(&ff.emoteGenders, "emote-gender", nil, "male or female (repeatable)")
	f.StringVar(&ff.emotePlayMode, "emote-play-mode", "", "loop or simple")
	f.StringSliceVar(&ff.itemRarities, "rarity", nil, "Item rarity (repeatable)")
	f.IntVar(&ff.first, "first", -1, "Page size (omit for the subgraph maximum)")
	f.IntVar(&ff.skip, "skip", -1, "Results to skip")
}

// spec validates the flags and builds the filter. Pagination flags left at
// their default are treated as absent.
func (ff *filterFlags) spec(cmd *cobra.Command) (nfts.FilterSpec, error) {
	f := nfts.FilterSpec{
		Search:              ff.search,
		IsOnSale:            ff.isOnSale,
		WearableCategory:    ff.wearableCategory,
		IsWearableHead:      ff.isWearableHead,
		IsWearableAccessory: ff.isWearableAccessory,
		EmoteCategory:       ff.emoteCategory,
		ItemRarities:        ff.itemRarities,
	}

	if ff.category != "" {
		c, ok := nfts.ParseCategory(ff.category)
		if !ok {
			return f, fmt.Errorf("unknown category %q", ff.category)
		}
		f.Category = c
	}
	if ff.owner != "" {
		if !httputil.ValidateAddress(ff.owner) {
			return f, fmt.Errorf("invalid owner address %q", ff.owner)
		}
		f.Owner = catalog.NormalizeAddress(ff.owner)
	}
	if bad, ok := httputil.ValidateAddresses(ff.contractAddresses); !ok {
		return f, fmt.Errorf("invalid contract address %q", bad)
	}
	for _, a := range ff.contractAddresses {
		f.ContractAddresses = append(f.ContractAddresses, catalog.NormalizeAddress(a))
	}
	for _, id := range ff.ids {
		normalized, err := normalizeID(id)
		if err != nil {
			return f, err
		}
		f.IDs = append(f.IDs, normalized)
	}
	if ff.sortBy != "" {
		s, ok := nfts.ParseSortBy(ff.sortBy)
		if !ok {
			return f, fmt.Errorf("unknown sort %q", ff.sortBy)
		}
		f.SortBy = s
	}

	var err error
	if f.WearableGenders, err = parseGenders(ff.wearableGenders); err != nil {
		return f, err
	}
	if f.EmoteGenders, err = parseGenders(ff.emoteGenders); err != nil {
		return f, err
	}
	if ff.emotePlayMode != "" {
		m, ok := nfts.ParsePlayMode(ff.emotePlayMode)
		if !ok {
			return f, fmt.Errorf("unknown emote play mode %q", ff.emotePlayMode)
		}
		f.EmotePlayMode = m
	}

	if cmd.Flags().Changed("first") {
		if ff.first < 0 || ff.first > nfts.MaxResults {
			return f, fmt.Errorf("--first must be between 0 and %d", nfts.MaxResults)
		}
		first := ff.first
		f.First = &first
	}
	if cmd.Flags().Changed("skip") {
		if ff.skip < 0 || ff.skip > nfts.MaxSkip {
			return f, fmt.Errorf("--skip must be between 0 and %d", nfts.MaxSkip)
		}
		skip := ff.skip
		f.Skip = &skip
	}
	return f, nil
}

func parseGenders(values []string) ([]nfts.Gender, error) {
	var out []nfts.Gender
	for _, v := range values {
		g, ok := nfts.ParseGender(v)
		if !ok {
			return nil, fmt.Errorf("unknown gender %q", v)
		}
		out = append(out, g)
	}
	return out, nil
}

func normalizeID(id string) (string, error) {
	contract, token, ok := nfts.SplitID(id)
	if !ok || !httputil.ValidateAddress(contract) || !httputil.ValidateTokenID(token) {
		return "", fmt.Errorf("invalid NFT id %q, expected <contract>-<token>", id)
	}
	return nfts.CombineID(catalog.NormalizeAddress(contract), token), nil
}

func newCompileCmd(count bool) *cobra.Command {
	var (
		ff      filterFlags
		asJSON  bool
		use     = "compile"
		short   = "Compile an NFT search query"
		compile = nfts.Compile
	)
	if count {
		use = "count"
		short = "Compile the query that counts matching NFTs"
		compile = nfts.CompileCount
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ff.spec(cmd)
			if err != nil {
				return err
			}
			q := compile(f, nfts.Options{})
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), q)
			}
			return printQuery(cmd.OutOrStdout(), q.Text, q.Variables)
		},
	}
	ff.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print query, variables and window as one JSON document")
	return cmd
}

func newOneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "one <contract> <token>",
		Short: "Compile the query that loads one NFT",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := normalizeID(nfts.CombineID(args[0], args[1]))
			if err != nil {
				return err
			}
			contract, token, _ := nfts.SplitID(id)
			return printQuery(cmd.OutOrStdout(), nfts.FetchOne(nil), nfts.FetchOneVariables(contract, token))
		},
	}
}

func newIDsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ids <id>...",
		Short: "Compile the query that loads NFTs by id",
		Args:  cobra.RangeArgs(1, nfts.MaxResults),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]string, 0, len(args))
			for _, id := range args {
				normalized, err := normalizeID(id)
				if err != nil {
					return err
				}
				ids = append(ids, normalized)
			}
			return printQuery(cmd.OutOrStdout(), nfts.FetchByIDs(nil), nfts.FetchByIDsVariables(ids))
		},
	}
}

func newIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "id <contract> <token>",
		Short: "Print the NFT id of a token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := normalizeID(nfts.CombineID(args[0], args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func printQuery(w io.Writer, text string, variables map[string]any) error {
	fmt.Fprintln(w, text)
	return writeJSON(w, variables)
}
