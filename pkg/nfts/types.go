package nfts

import "strings"

// Category is the NFT category a filter can be narrowed to.
type Category string

const (
	CategoryParcel   Category = "parcel"
	CategoryEstate   Category = "estate"
	CategoryWearable Category = "wearable"
	CategoryEmote    Category = "emote"
	CategoryENS      Category = "ens"
)

// SortBy selects the ordering of the returned NFTs.
type SortBy string

const (
	SortByNewest         SortBy = "newest"
	SortByRecentlyListed SortBy = "recently_listed"
	SortByRecentlySold   SortBy = "recently_sold"
	SortByName           SortBy = "name"
	SortByCheapest       SortBy = "cheapest"
)

// Gender is the avatar gender a wearable or emote is compatible with.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// PlayMode tells whether an emote loops or plays once.
type PlayMode string

const (
	PlayModeLoop   PlayMode = "loop"
	PlayModeSimple PlayMode = "simple"
)

// Direction is the order direction sent to the subgraph.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// FilterSpec holds the search criteria of an NFT query. Every field is optional.
//
// Wearable fields are only honored when Category is empty or CategoryWearable, emote
// fields only when Category is empty or CategoryEmote. Mismatched combinations are
// ignored, never rejected.
type FilterSpec struct {
	Category          Category `json:"category,omitempty"`
	Owner             string   `json:"owner,omitempty"`
	Search            string   `json:"search,omitempty"`
	ContractAddresses []string `json:"contractAddresses,omitempty"`
	IDs               []string `json:"ids,omitempty"`
	SortBy            SortBy   `json:"sortBy,omitempty"`
	IsOnSale          bool     `json:"isOnSale,omitempty"`

	WearableCategory    string   `json:"wearableCategory,omitempty"`
	IsWearableHead      bool     `json:"isWearableHead,omitempty"`
	IsWearableAccessory bool     `json:"isWearableAccessory,omitempty"`
	WearableGenders     []Gender `json:"wearableGenders,omitempty"`

	EmoteCategory string   `json:"emoteCategory,omitempty"`
	EmoteGenders  []Gender `json:"emoteGenders,omitempty"`
	EmotePlayMode PlayMode `json:"emotePlayMode,omitempty"`

	ItemRarities []string `json:"itemRarities,omitempty"`

	First *int `json:"first,omitempty"`
	Skip  *int `json:"skip,omitempty"`
}

// CompiledQuery is the output of a compilation: query text ready to send to the
// subgraph and the variables bound to it.
type CompiledQuery struct {
	Text      string         `json:"query"`
	Variables map[string]any `json:"variables"`
	// ExpiresAt is the compile time in unix milliseconds, also bound as $expiresAt.
	ExpiresAt int64 `json:"expiresAt"`
	// Window is the number of results requested from the subgraph.
	Window int `json:"window"`
}

// includes reports whether the filter's category admits items of category c.
func (f FilterSpec) includes(c Category) bool {
	return f.Category == "" || f.Category == c
}

// ParseCategory parses a category name case-insensitively.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryParcel, CategoryEstate, CategoryWearable, CategoryEmote, CategoryENS:
		return c, true
	}
	return "", false
}

// ParseSortBy parses a sort name case-insensitively.
func ParseSortBy(s string) (SortBy, bool) {
	sb := SortBy(strings.ToLower(strings.TrimSpace(s)))
	switch sb {
	case SortByNewest, SortByRecentlyListed, SortByRecentlySold, SortByName, SortByCheapest:
		return sb, true
	}
	return "", false
}

// ParseGender parses a gender name case-insensitively.
func ParseGender(s string) (Gender, bool) {
	g := Gender(strings.ToLower(strings.TrimSpace(s)))
	switch g {
	case GenderMale, GenderFemale:
		return g, true
	}
	return "", false
}

// ParsePlayMode parses an emote play mode case-insensitively.
func ParsePlayMode(s string) (PlayMode, bool) {
	m := PlayMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case PlayModeLoop, PlayModeSimple:
		return m, true
	}
	return "", false
}
