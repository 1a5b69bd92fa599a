package gateway

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/DeBrosOfficial/marketplace/pkg/catalog"
	mperrors "github.com/DeBrosOfficial/marketplace/pkg/errors"
	"github.com/DeBrosOfficial/marketplace/pkg/httputil"
	"github.com/DeBrosOfficial/marketplace/pkg/nfts"
)

// parseFilterSpec builds a FilterSpec from the query string of r. Malformed
// addresses, unknown enum values and out of range pagination are reported as
// validation errors; everything else is passed through for the compiler.
func parseFilterSpec(r *http.Request) (nfts.FilterSpec, error) {
	var f nfts.FilterSpec

	if v := strings.TrimSpace(r.URL.Query().Get("category")); v != "" {
		c, ok := nfts.ParseCategory(v)
		if !ok {
			return f, mperrors.NewValidationError("category", "unknown category", v)
		}
		f.Category = c
	}

	if v := strings.TrimSpace(r.URL.Query().Get("owner")); v != "" {
		if !httputil.ValidateAddress(v) {
			return f, mperrors.NewValidationError("owner", "invalid address", v)
		}
		f.Owner = catalog.NormalizeAddress(v)
	}

	f.Search = r.URL.Query().Get("search")

	addresses := httputil.QueryParams(r, "contractAddress")
	if bad, ok := httputil.ValidateAddresses(addresses); !ok {
		return f, mperrors.NewValidationError("contractAddress", "invalid address", bad)
	}
	for _, a := range addresses {
		f.ContractAddresses = append(f.ContractAddresses, catalog.NormalizeAddress(a))
	}

	for _, id := range httputil.QueryParams(r, "id") {
		normalized, err := validateNFTID(id)
		if err != nil {
			return f, err
		}
		f.IDs = append(f.IDs, normalized)
	}

	if v := strings.TrimSpace(r.URL.Query().Get("sortBy")); v != "" {
		s, ok := nfts.ParseSortBy(v)
		if !ok {
			return f, mperrors.NewValidationError("sortBy", "unknown sort", v)
		}
		f.SortBy = s
	}

	var err error
	if f.IsOnSale, err = flag(r, "isOnSale"); err != nil {
		return f, err
	}

	f.WearableCategory = strings.TrimSpace(r.URL.Query().Get("wearableCategory"))
	if f.IsWearableHead, err = flag(r, "isWearableHead"); err != nil {
		return f, err
	}
	if f.IsWearableAccessory, err = flag(r, "isWearableAccessory"); err != nil {
		return f, err
	}
	if f.WearableGenders, err = genders(r, "wearableGender"); err != nil {
		return f, err
	}

	f.EmoteCategory = strings.TrimSpace(r.URL.Query().Get("emoteCategory"))
	if f.EmoteGenders, err = genders(r, "emoteGender"); err != nil {
		return f, err
	}
	if v := strings.TrimSpace(r.URL.Query().Get("emotePlayMode")); v != "" {
		m, ok := nfts.ParsePlayMode(v)
		if !ok {
			return f, mperrors.NewValidationError("emotePlayMode", "unknown play mode", v)
		}
		f.EmotePlayMode = m
	}

	f.ItemRarities = httputil.QueryParams(r, "itemRarity")

	if f.First, err = pagination(r, "first"); err != nil {
		return f, err
	}
	if f.First != nil && *f.First > nfts.MaxResults {
		return f, mperrors.NewValidationError("first", "must not exceed "+strconv.Itoa(nfts.MaxResults), *f.First)
	}
	if f.Skip, err = pagination(r, "skip"); err != nil {
		return f, err
	}
	if f.Skip != nil && *f.Skip > nfts.MaxSkip {
		return f, mperrors.NewValidationError("skip", "must not exceed "+strconv.Itoa(nfts.MaxSkip), *f.Skip)
	}

	return f, nil
}

// validateNFTID checks a combined "<contract>-<token>" id and returns it with
// the contract address normalized.
func validateNFTID(id string) (string, error) {
	contract, token, ok := nfts.SplitID(id)
	if !ok || !httputil.ValidateAddress(contract) || !httputil.ValidateTokenID(token) {
		return "", mperrors.NewValidationError("id", "expected <contractAddress>-<tokenId>", id)
	}
	return nfts.CombineID(catalog.NormalizeAddress(contract), token), nil
}

func flag(r *http.Request, key string) (bool, error) {
	b, err := httputil.OptionalQueryBool(r, key)
	if err != nil {
		return false, mperrors.NewValidationError(key, err.Error(), r.URL.Query().Get(key))
	}
	return b != nil && *b, nil
}

func genders(r *http.Request, key string) ([]nfts.Gender, error) {
	var out []nfts.Gender
	for _, v := range httputil.QueryParams(r, key) {
		g, ok := nfts.ParseGender(v)
		if !ok {
			return nil, mperrors.NewValidationError(key, "unknown gender", v)
		}
		out = append(out, g)
	}
	return out, nil
}

func pagination(r *http.Request, key string) (*int, error) {
	n, err := httputil.OptionalQueryInt(r, key)
	if err != nil {
		return nil, mperrors.NewValidationError(key, err.Error(), r.URL.Query().Get(key))
	}
	if n != nil && *n < 0 {
		return nil, mperrors.NewValidationError(key, "must not be negative", *n)
	}
	return n, nil
}
