package nfts

import (
	"fmt"
	"strings"
	"time"
)

// Options customise a compilation. The zero value compiles against NFTFragment with
// DefaultOrderBy and the wall clock.
type Options struct {
	// Fragment supplies the selection of data queries.
	Fragment FragmentProvider
	// OrderBy maps the filter's sort to the entity field to order by.
	OrderBy func(SortBy) string
	// ExtraVariables returns additional variable declarations, e.g. "$network: String".
	ExtraVariables func(FilterSpec) []string
	// ExtraWhere returns additional clauses for the where block.
	ExtraWhere func(FilterSpec) []string
	// Now returns the compile time. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Fragment == nil {
		o.Fragment = NFTFragment
	}
	if o.OrderBy == nil {
		o.OrderBy = DefaultOrderBy
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Variables declared by every NFT search query.
var filterVariables = []string{
	"$first: Int",
	"$skip: Int",
	"$orderBy: String",
	"$orderDirection: String",
	"$expiresAt: String",
	"$owner: String",
	"$wearableCategory: String",
	"$isWearableHead: Boolean",
	"$isWearableAccessory: Boolean",
	"$emoteCategory: String",
}

const (
	bodyShapeMale   = "BaseMale"
	bodyShapeFemale = "BaseFemale"
)

// Compile builds the NFT search query for f.
func Compile(f FilterSpec, opts Options) CompiledQuery {
	return compile(f, opts, false)
}

// CompileCount builds the variant of the search query used to count matches: it
// selects ids only and always requests MaxResults.
func CompileCount(f FilterSpec, opts Options) CompiledQuery {
	return compile(f, opts, true)
}

func compile(f FilterSpec, opts Options, count bool) CompiledQuery {
	opts = opts.withDefaults()
	now := opts.Now()
	window := RequestWindow(f, count)

	wb := buildWhere(f)
	if opts.ExtraWhere != nil {
		wb.Extend(opts.ExtraWhere(f))
	}

	declarations := append([]string(nil), filterVariables...)
	if opts.ExtraVariables != nil {
		for _, v := range opts.ExtraVariables(f) {
			if v = strings.TrimSpace(v); v != "" {
				declarations = append(declarations, v)
			}
		}
	}

	selection := "..." + opts.Fragment.FragmentName()
	if count {
		selection = "id"
	}

	var b strings.Builder
	b.WriteString("query NFTs(\n")
	for _, d := range declarations {
		b.WriteString("  ")
		b.WriteString(d)
		b.WriteByte('\n')
	}
	b.WriteString(") {\n")
	b.WriteString("  nfts(\n")
	b.WriteString("    where: {\n")
	if wb.Len() > 0 {
		b.WriteString(wb.Build("      "))
		b.WriteByte('\n')
	}
	b.WriteString("    }\n")
	fmt.Fprintf(&b, "    first: %d\n", window)
	b.WriteString("    skip: 0\n")
	b.WriteString("    orderBy: $orderBy\n")
	b.WriteString("    orderDirection: $orderDirection\n")
	b.WriteString("  ) {\n")
	fmt.Fprintf(&b, "    %s\n", selection)
	b.WriteString("  }\n")
	b.WriteString("}\n")
	if !count {
		b.WriteByte('\n')
		b.WriteString(opts.Fragment.FragmentDefinition())
		b.WriteByte('\n')
	}

	return CompiledQuery{
		Text:      b.String(),
		Variables: QueryVariables(f, opts.OrderBy, now),
		ExpiresAt: now.UnixMilli(),
		Window:    window,
	}
}

func buildWhere(f FilterSpec) *whereBuilder {
	wb := newWhereBuilder()

	if f.Owner != "" {
		wb.Where("owner: $owner")
	}

	if f.IsOnSale || f.SortBy == SortByCheapest || f.SortBy == SortByRecentlyListed {
		wb.Where("searchOrderStatus: open")
		wb.Where("searchOrderExpiresAt_gt: $expiresAt")
	}

	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		if lit, ok := Quote(term); ok {
			wb.Where("searchText_contains: " + lit)
		}
	}

	wb.WhereIn("contractAddress_in", f.ContractAddresses, ", ")
	wb.WhereIn("id_in", f.IDs, ", ")

	if f.SortBy == SortByRecentlySold {
		wb.Where("soldAt_not: null")
	}

	if f.includes(CategoryWearable) {
		if f.WearableCategory != "" {
			wb.Where("searchWearableCategory: $wearableCategory")
		}
		if f.IsWearableHead {
			wb.Where("searchIsWearableHead: $isWearableHead")
		}
		if f.IsWearableAccessory {
			wb.Where("searchIsWearableAccessory: $isWearableAccessory")
		}
		wb.Where(bodyShapeClause("searchWearableBodyShapes", f.WearableGenders))
		wb.WhereIn("searchWearableRarity_in", f.ItemRarities, ",")
	}

	if f.includes(CategoryEmote) {
		if f.EmoteCategory != "" {
			wb.Where("searchEmoteCategory: $emoteCategory")
		}
		wb.Where(bodyShapeClause("searchEmoteBodyShapes", f.EmoteGenders))
		if f.EmotePlayMode != "" {
			wb.Wheref("searchEmoteLoop: %t", f.EmotePlayMode == PlayModeLoop)
		}
		wb.WhereIn("searchEmoteRarity_in", f.ItemRarities, ",")
	}

	return wb
}

// bodyShapeClause maps the selected genders to a body shape clause on field.
// Both genders need the _contains operator; none selected yields no clause.
func bodyShapeClause(field string, genders []Gender) string {
	var male, female bool
	for _, g := range genders {
		switch g {
		case GenderMale:
			male = true
		case GenderFemale:
			female = true
		}
	}

	switch {
	case male && female:
		return fmt.Sprintf("%s_contains: [%s, %s]", field, bodyShapeMale, bodyShapeFemale)
	case male:
		return fmt.Sprintf("%s: [%s]", field, bodyShapeMale)
	case female:
		return fmt.Sprintf("%s: [%s]", field, bodyShapeFemale)
	default:
		return ""
	}
}

// FetchOne returns the query that loads a single NFT by contract address and token
// id. Bind it with FetchOneVariables.
func FetchOne(fragment FragmentProvider) string {
	if fragment == nil {
		fragment = NFTFragment
	}
	return fmt.Sprintf(`query NFTByTokenId($contractAddress: String, $tokenId: String) {
  nfts(
    where: { contractAddress: $contractAddress, tokenId: $tokenId }
    first: 1
  ) {
    ...%s
  }
}

%s
`, fragment.FragmentName(), fragment.FragmentDefinition())
}

// FetchOneVariables binds the variables of FetchOne.
func FetchOneVariables(contractAddress, tokenID string) map[string]any {
	return map[string]any{
		"contractAddress": contractAddress,
		"tokenId":         tokenID,
	}
}

// FetchByIDs returns the query that loads NFTs by their combined ids, up to
// MaxResults of them. Bind it with FetchByIDsVariables.
func FetchByIDs(fragment FragmentProvider) string {
	if fragment == nil {
		fragment = NFTFragment
	}
	return fmt.Sprintf(`query NFTsByIds($tokenIds: [String!]) {
  nfts(
    where: { id_in: $tokenIds }
    first: %d
  ) {
    ...%s
  }
}

%s
`, MaxResults, fragment.FragmentName(), fragment.FragmentDefinition())
}

// FetchByIDsVariables binds the variables of FetchByIDs.
func FetchByIDsVariables(ids []string) map[string]any {
	return map[string]any{
		"tokenIds": append([]string{}, ids...),
	}
}
