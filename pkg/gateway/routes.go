package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mperrors "github.com/DeBrosOfficial/marketplace/pkg/errors"
	"github.com/DeBrosOfficial/marketplace/pkg/httputil"
)

// Routes returns the http.Handler with all routes and middleware configured
func (g *Gateway) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestIDHeader)
	r.Use(g.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(g.cfg.RequestTimeout))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteErr(w, mperrors.NewNotFoundError("route", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// health/status
	r.Get("/health", g.healthHandler)
	r.Get("/v1/health", g.healthHandler)
	r.Get("/v1/version", g.versionHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(g.gatherer, promhttp.HandlerOpts{}))

	// query compilation
	r.Route("/v1/nfts", func(r chi.Router) {
		r.Get("/query", g.nftQueryHandler)
		r.Post("/ids/query", g.nftIDsQueryHandler)
		r.Get("/{contractAddress}/{tokenId}/query", g.nftOneQueryHandler)
	})

	// contract registry
	r.Route("/v1/contracts", func(r chi.Router) {
		r.Get("/", g.contractsHandler)
		r.Post("/refresh", g.refreshHandler)
		r.Get("/{chainId}/{address}", g.contractHandler)
	})

	return r
}
