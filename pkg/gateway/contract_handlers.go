package gateway

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/DeBrosOfficial/marketplace/pkg/catalog"
	mperrors "github.com/DeBrosOfficial/marketplace/pkg/errors"
	"github.com/DeBrosOfficial/marketplace/pkg/httputil"
	"github.com/DeBrosOfficial/marketplace/pkg/logging"
)

func parseChainID(field, raw string) (catalog.ChainID, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, mperrors.NewValidationError(field, "must be a positive integer", raw)
	}
	return catalog.ChainID(id), nil
}

// contractsHandler lists the registry snapshot of one chain, or of every
// known chain when chainId is omitted.
func (g *Gateway) contractsHandler(w http.ResponseWriter, r *http.Request) {
	chains := g.registry.Chains()
	if raw := r.URL.Query().Get("chainId"); raw != "" {
		id, err := parseChainID("chainId", raw)
		if err != nil {
			httputil.WriteErr(w, err)
			return
		}
		chains = []catalog.ChainID{id}
	}

	out := make([]catalog.Contract, 0)
	for _, id := range chains {
		list, err := g.registry.Contracts(r.Context(), id)
		if err != nil {
			httputil.WriteErr(w, err)
			return
		}
		out = append(out, list...)
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"contracts": out,
		"count":     len(out),
	})
}

// contractHandler returns every category registered for one address.
func (g *Gateway) contractHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseChainID("chainId", chi.URLParam(r, "chainId"))
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	address := chi.URLParam(r, "address")
	if !httputil.ValidateAddress(address) {
		httputil.WriteErr(w, mperrors.NewValidationError("address", "invalid address", address))
		return
	}

	found, err := g.registry.Find(r.Context(), id, address)
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	if len(found) == 0 {
		httputil.WriteErr(w, mperrors.NewNotFoundError("contract", catalog.NormalizeAddress(address)))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"contracts": found,
	})
}

// refreshHandler runs a registry refresh synchronously.
func (g *Gateway) refreshHandler(w http.ResponseWriter, r *http.Request) {
	res, err := g.registry.Refresh(r.Context())
	if err != nil {
		g.logger.ComponentError(logging.ComponentGateway, "Registry refresh failed",
			zap.String("code", mperrors.CodeOf(err)),
			zap.Bool("retryable", mperrors.Retryable(err)),
			zap.Error(err),
		)
		httputil.WriteErr(w, err)
		return
	}
	g.logger.ComponentDebug(logging.ComponentGateway, "Registry refresh requested",
		zap.String("run_id", res.RunID),
		zap.Duration("duration", res.Duration),
	)

	httputil.WriteSuccessWithData(w, map[string]any{
		"runId":    res.RunID,
		"chains":   res.Chains,
		"duration": res.Duration.String(),
	})
}
