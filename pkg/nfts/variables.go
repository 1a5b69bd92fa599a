package nfts

import (
	"strconv"
	"time"
)

// QueryVariables builds the variable bundle sent along with a compiled query: every
// filter field that is set, the resolved orderBy and orderDirection, and expiresAt.
//
// expiresAt is the compile time in unix milliseconds. The query declares it as
// String and the subgraph compares it as a BigInt, so it is bound as a decimal
// string. The numeric value is CompiledQuery.ExpiresAt.
func QueryVariables(f FilterSpec, orderBy func(SortBy) string, now time.Time) map[string]any {
	if orderBy == nil {
		orderBy = DefaultOrderBy
	}

	vars := map[string]any{
		"orderBy":        orderBy(f.SortBy),
		"orderDirection": string(OrderDirection(f.SortBy)),
		"expiresAt":      strconv.FormatInt(now.UnixMilli(), 10),
	}

	setString := func(key, v string) {
		if v != "" {
			vars[key] = v
		}
	}
	setBool := func(key string, v bool) {
		if v {
			vars[key] = v
		}
	}
	setList := func(key string, v []string) {
		if len(v) > 0 {
			vars[key] = append([]string(nil), v...)
		}
	}

	setString("category", string(f.Category))
	setString("owner", f.Owner)
	setString("search", f.Search)
	setList("contractAddresses", f.ContractAddresses)
	setList("ids", f.IDs)
	setBool("isOnSale", f.IsOnSale)
	setString("wearableCategory", f.WearableCategory)
	setBool("isWearableHead", f.IsWearableHead)
	setBool("isWearableAccessory", f.IsWearableAccessory)
	setList("wearableGenders", gendersToStrings(f.WearableGenders))
	setString("emoteCategory", f.EmoteCategory)
	setList("emoteGenders", gendersToStrings(f.EmoteGenders))
	setString("emotePlayMode", string(f.EmotePlayMode))
	setList("itemRarities", f.ItemRarities)
	if f.First != nil {
		vars["first"] = *f.First
	}
	if f.Skip != nil {
		vars["skip"] = *f.Skip
	}

	return vars
}

func gendersToStrings(gs []Gender) []string {
	if len(gs) == 0 {
		return nil
	}
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = string(g)
	}
	return out
}
