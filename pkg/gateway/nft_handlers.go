package gateway

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/DeBrosOfficial/marketplace/pkg/catalog"
	mperrors "github.com/DeBrosOfficial/marketplace/pkg/errors"
	"github.com/DeBrosOfficial/marketplace/pkg/httputil"
	"github.com/DeBrosOfficial/marketplace/pkg/nfts"
)

// nftQueryHandler compiles a search query from the request's filter
// parameters. count=true selects the count variant.
func (g *Gateway) nftQueryHandler(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilterSpec(r)
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	count, err := flag(r, "count")
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}

	var q nfts.CompiledQuery
	if count {
		q = nfts.CompileCount(f, nfts.Options{})
		g.metrics.RecordCompile("count")
	} else {
		q = nfts.Compile(f, nfts.Options{})
		g.metrics.RecordCompile("fetch")
	}
	httputil.WriteJSON(w, http.StatusOK, q)
}

// nftOneQueryHandler returns the query loading one NFT by contract and token.
func (g *Gateway) nftOneQueryHandler(w http.ResponseWriter, r *http.Request) {
	contract := chi.URLParam(r, "contractAddress")
	token := chi.URLParam(r, "tokenId")
	if !httputil.ValidateAddress(contract) {
		httputil.WriteErr(w, mperrors.NewValidationError("contractAddress", "invalid address", contract))
		return
	}
	if !httputil.ValidateTokenID(token) {
		httputil.WriteErr(w, mperrors.NewValidationError("tokenId", "invalid token id", token))
		return
	}
	contract = catalog.NormalizeAddress(contract)

	g.metrics.RecordCompile("one")
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"id":        nfts.CombineID(contract, token),
		"query":     nfts.FetchOne(nil),
		"variables": nfts.FetchOneVariables(contract, token),
	})
}

type idsQueryRequest struct {
	IDs []string `json:"ids"`
}

// nftIDsQueryHandler returns the query loading NFTs by combined id.
func (g *Gateway) nftIDsQueryHandler(w http.ResponseWriter, r *http.Request) {
	var req idsQueryRequest
	if err := httputil.DecodeJSONStrict(r, &req); err != nil {
		httputil.WriteErr(w, mperrors.NewValidationError("body", "invalid json body", nil))
		return
	}
	if len(req.IDs) == 0 {
		httputil.WriteErr(w, mperrors.NewValidationError("ids", "at least one id is required", nil))
		return
	}
	if len(req.IDs) > nfts.MaxResults {
		httputil.WriteErr(w, mperrors.NewValidationError("ids", "at most "+strconv.Itoa(nfts.MaxResults)+" ids are allowed", len(req.IDs)))
		return
	}

	ids := make([]string, 0, len(req.IDs))
	for _, id := range req.IDs {
		normalized, err := validateNFTID(id)
		if err != nil {
			httputil.WriteErr(w, err)
			return
		}
		ids = append(ids, normalized)
	}

	g.metrics.RecordCompile("ids")
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"query":     nfts.FetchByIDs(nil),
		"variables": nfts.FetchByIDsVariables(ids),
	})
}
