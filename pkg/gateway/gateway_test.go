package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/DeBrosOfficial/marketplace/pkg/catalog"
	"github.com/DeBrosOfficial/marketplace/pkg/contracts"
	mperrors "github.com/DeBrosOfficial/marketplace/pkg/errors"
	"github.com/DeBrosOfficial/marketplace/pkg/logging"
	"github.com/DeBrosOfficial/marketplace/pkg/metrics"
	"github.com/DeBrosOfficial/marketplace/pkg/registry"
)

const collectionAddress = "0x0000000000000000000000000000000000000abc"

// collectionsSubgraph serves one page with a single wearable collection.
func collectionsSubgraph(err error) contracts.Subgraph {
	return contracts.SubgraphFunc(func(_ context.Context, query string, _ map[string]any, out any) error {
		if err != nil {
			return err
		}
		page := catalog.CollectionPage{}
		if strings.Contains(query, "skip: 0,") {
			page.Collections = []catalog.Collection{{
				ID:    collectionAddress,
				Name:  "Hats",
				Items: []catalog.Item{{ItemType: catalog.ItemTypeWearableV2}},
			}}
		}
		data, _ := json.Marshal(page)
		return json.Unmarshal(data, out)
	})
}

type testGateway struct {
	server *httptest.Server
	reg    *prometheus.Registry
}

func newTestGateway(t *testing.T, subgraphErr error) *testGateway {
	t.Helper()

	promReg := prometheus.NewRegistry()
	m := metrics.New(promReg)
	logger := logging.NewWriterLogger(io.Discard, zapcore.DebugLevel)

	reg := registry.New(registry.NewMemoryStore(), []registry.Source{{
		Name:     "collections-matic",
		Network:  catalog.NetworkMatic,
		ChainID:  catalog.ChainMaticMainnet,
		Subgraph: collectionsSubgraph(subgraphErr),
		Discover: true,
	}}, registry.WithMetrics(m))

	gw := New(logger, Config{Version: "1.2.3"}, reg, m, promReg)
	srv := httptest.NewServer(gw.Routes())
	t.Cleanup(srv.Close)
	return &testGateway{server: srv, reg: promReg}
}

func (tg *testGateway) do(t *testing.T, method, path, body string) (int, map[string]any, http.Header) {
	t.Helper()
	req, err := http.NewRequest(method, tg.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out, resp.Header
}

func TestNFTQuery(t *testing.T) {
	tg := newTestGateway(t, nil)

	code, body, hdr := tg.do(t, http.MethodGet, "/v1/nfts/query?category=wearable&first=10&skip=5&sortBy=name", "")
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, hdr.Get("X-Request-Id"))

	query, _ := body["query"].(string)
	assert.Contains(t, query, "nftFragment")
	assert.EqualValues(t, 15, body["window"])

	vars, _ := body["variables"].(map[string]any)
	assert.Equal(t, "wearable", vars["category"])
	assert.Equal(t, "name", vars["orderBy"])
	assert.Equal(t, "asc", vars["orderDirection"])
	assert.EqualValues(t, 10, vars["first"])
}

func TestNFTQueryCount(t *testing.T) {
	tg := newTestGateway(t, nil)

	code, body, _ := tg.do(t, http.MethodGet, "/v1/nfts/query?count=true&first=10", "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1000, body["window"])
	assert.NotContains(t, body["query"], "nftFragment")
}

func TestNFTQueryValidation(t *testing.T) {
	tg := newTestGateway(t, nil)

	code, body, hdr := tg.do(t, http.MethodGet, "/v1/nfts/query?owner=0xnope", "")
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Equal(t, hdr.Get("X-Request-Id"), body["trace_id"])

	details, _ := body["details"].(map[string]any)
	assert.Equal(t, "owner", details["field"])
}

func TestNFTQueryRejectsOverflowingWindow(t *testing.T) {
	tg := newTestGateway(t, nil)

	code, body, _ := tg.do(t, http.MethodGet, "/v1/nfts/query?first=10&skip=9223372036854775800", "")
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	details, _ := body["details"].(map[string]any)
	assert.Equal(t, "skip", details["field"])

	code, body, _ = tg.do(t, http.MethodGet, "/v1/nfts/query?first=10&skip=1000000", "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1000010, body["window"])
}

func TestNFTOneQuery(t *testing.T) {
	tg := newTestGateway(t, nil)

	code, body, _ := tg.do(t, http.MethodGet, "/v1/nfts/"+landAddress+"/42/query", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "0xf87e31492faf9a91b02ee0deaad50d51d56d5d4d-42", body["id"])
	assert.Contains(t, body["query"], "NFTByTokenId")

	vars, _ := body["variables"].(map[string]any)
	assert.Equal(t, "42", vars["tokenId"])

	code, _, _ = tg.do(t, http.MethodGet, "/v1/nfts/"+landAddress+"/x1/query", "")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _, _ = tg.do(t, http.MethodGet, "/v1/nfts/0x1/1/query", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestNFTIDsQuery(t *testing.T) {
	tg := newTestGateway(t, nil)

	code, body, _ := tg.do(t, http.MethodPost, "/v1/nfts/ids/query", `{"ids":["`+landAddress+`-1","`+landAddress+`-2"]}`)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body["query"], "NFTsByIds")

	vars, _ := body["variables"].(map[string]any)
	ids, _ := vars["tokenIds"].([]any)
	require.Len(t, ids, 2)
	assert.Equal(t, "0xf87e31492faf9a91b02ee0deaad50d51d56d5d4d-1", ids[0])

	tests := []struct {
		name string
		body string
	}{
		{"empty list", `{"ids":[]}`},
		{"unknown field", `{"ids":["` + landAddress + `-1"],"extra":1}`},
		{"malformed id", `{"ids":["nope"]}`},
		{"not json", `ids=1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := tg.do(t, http.MethodPost, "/v1/nfts/ids/query", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
		})
	}
}

func TestNFTIDsQueryTooMany(t *testing.T) {
	tg := newTestGateway(t, nil)

	ids := make([]string, 1001)
	for i := range ids {
		ids[i] = landAddress + "-1"
	}
	data, err := json.Marshal(map[string]any{"ids": ids})
	require.NoError(t, err)

	code, _, _ := tg.do(t, http.MethodPost, "/v1/nfts/ids/query", string(data))
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestContracts(t *testing.T) {
	tg := newTestGateway(t, nil)

	// Before the first refresh the seed is served.
	code, body, _ := tg.do(t, http.MethodGet, "/v1/contracts?chainId=1", "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 45, body["count"])

	code, body, _ = tg.do(t, http.MethodGet, "/v1/contracts?chainId=137", "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, body["count"])

	code, body, _ = tg.do(t, http.MethodPost, "/v1/contracts/refresh", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["runId"])
	chains, _ := body["chains"].(map[string]any)
	assert.EqualValues(t, 1, chains["137"])

	code, body, _ = tg.do(t, http.MethodGet, "/v1/contracts?chainId=137", "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["count"])

	code, body, _ = tg.do(t, http.MethodGet, "/v1/contracts", "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 45+4+1, body["count"])

	code, _, _ = tg.do(t, http.MethodGet, "/v1/contracts?chainId=abc", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestContractLookup(t *testing.T) {
	tg := newTestGateway(t, nil)

	code, body, _ := tg.do(t, http.MethodGet, "/v1/contracts/1/"+landAddress, "")
	require.Equal(t, http.StatusOK, code)
	list, _ := body["contracts"].([]any)
	require.Len(t, list, 1)
	land, _ := list[0].(map[string]any)
	assert.Equal(t, "LAND", land["name"])
	assert.Equal(t, "parcel", land["category"])

	code, body, _ = tg.do(t, http.MethodGet, "/v1/contracts/1/"+collectionAddress, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", body["code"])

	code, _, _ = tg.do(t, http.MethodGet, "/v1/contracts/1/0x12", "")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _, _ = tg.do(t, http.MethodGet, "/v1/contracts/0/"+landAddress, "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRefreshFailure(t *testing.T) {
	tg := newTestGateway(t, errors.New("connection refused"))

	code, body, _ := tg.do(t, http.MethodPost, "/v1/contracts/refresh", "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "INTERNAL", body["code"])
	assert.Equal(t, "internal error", body["error"])
}

func TestRefreshSubgraphOutage(t *testing.T) {
	tg := newTestGateway(t, mperrors.NewSubgraphError("http://indexer/matic", http.StatusServiceUnavailable, "subgraph returned status 503", nil))

	code, body, _ := tg.do(t, http.MethodPost, "/v1/contracts/refresh", "")
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, "SUBGRAPH_UNAVAILABLE", body["code"])
	details, _ := body["details"].(map[string]any)
	assert.Equal(t, "503", details["upstream_status"])
	assert.Equal(t, "true", details["retryable"])
}

func TestHealthAndVersion(t *testing.T) {
	tg := newTestGateway(t, nil)

	code, body, _ := tg.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["started_at"])

	code, body, _ = tg.do(t, http.MethodGet, "/v1/version", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "1.2.3", body["version"])
}

func TestMetricsEndpoint(t *testing.T) {
	tg := newTestGateway(t, nil)

	code, _, _ := tg.do(t, http.MethodGet, "/v1/nfts/query", "")
	require.Equal(t, http.StatusOK, code)

	resp, err := http.Get(tg.server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `marketplace_compiled_queries_total{kind="fetch"} 1`)
}

func TestUnknownRoute(t *testing.T) {
	tg := newTestGateway(t, nil)

	code, body, _ := tg.do(t, http.MethodGet, "/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", body["code"])
	assert.Equal(t, "route not found", body["error"])

	code, _, _ = tg.do(t, http.MethodDelete, "/v1/contracts/refresh", "")
	assert.Equal(t, http.StatusMethodNotAllowed, code)
}
