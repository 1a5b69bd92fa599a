package nfts

// DefaultSortBy is used whenever a filter carries no (or an unknown) sort.
const DefaultSortBy = SortByNewest

// OrderDirection resolves the subgraph order direction for a sort.
// Unset or unknown sorts resolve through DefaultSortBy.
func OrderDirection(sortBy SortBy) Direction {
	if d, ok := directionOf(sortBy); ok {
		return d
	}
	if d, ok := directionOf(DefaultSortBy); ok {
		return d
	}
	return Descending
}

func directionOf(sortBy SortBy) (Direction, bool) {
	switch sortBy {
	case SortByNewest, SortByRecentlyListed, SortByRecentlySold:
		return Descending, true
	case SortByName, SortByCheapest:
		return Ascending, true
	default:
		return "", false
	}
}

// DefaultOrderBy maps a sort to the NFT entity field the subgraph orders by.
func DefaultOrderBy(sortBy SortBy) string {
	switch sortBy {
	case SortByRecentlyListed:
		return "searchOrderCreatedAt"
	case SortByRecentlySold:
		return "soldAt"
	case SortByName:
		return "name"
	case SortByCheapest:
		return "searchOrderPrice"
	default:
		// newest
		return "createdAt"
	}
}
