package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeBrosOfficial/marketplace/pkg/catalog"
	"github.com/DeBrosOfficial/marketplace/pkg/contracts"
	"github.com/DeBrosOfficial/marketplace/pkg/metrics"
	"github.com/DeBrosOfficial/marketplace/pkg/nfts"
)

// pagedSubgraph answers the first call with collections and every later call
// with an empty page.
func pagedSubgraph(calls *int32, collections ...catalog.Collection) contracts.Subgraph {
	return contracts.SubgraphFunc(func(ctx context.Context, query string, _ map[string]any, out any) error {
		n := atomic.AddInt32(calls, 1)
		page := collections
		if n > 1 {
			page = nil
		}
		data, err := json.Marshal(catalog.CollectionPage{Collections: page})
		if err != nil {
			return err
		}
		return json.Unmarshal(data, out)
	})
}

func failingSubgraph(err error) contracts.Subgraph {
	return contracts.SubgraphFunc(func(ctx context.Context, _ string, _ map[string]any, _ any) error {
		return err
	})
}

func collection(id, name string, types ...catalog.ItemType) catalog.Collection {
	c := catalog.Collection{ID: id, Name: name}
	for _, t := range types {
		c.Items = append(c.Items, catalog.Item{ItemType: t})
	}
	return c
}

func TestRefreshMergesSeedAndDiscovered(t *testing.T) {
	var calls int32
	sources := []Source{
		{
			Name:    "collections-matic",
			Network: catalog.NetworkMatic,
			ChainID: catalog.ChainMaticMainnet,
			Subgraph: pagedSubgraph(&calls,
				collection("0x00000000000000000000000000000000000000aa", "Hats", catalog.ItemTypeWearableV2),
				collection("0x00000000000000000000000000000000000000bb", "Dances", catalog.ItemTypeEmoteV1, catalog.ItemTypeWearableV1),
			),
			Discover: true,
		},
	}

	m := metrics.New(prometheus.NewRegistry())
	store := NewMemoryStore()
	r := New(store, sources, WithMetrics(m))

	res, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 3, res.Chains[catalog.ChainMaticMainnet])
	assert.Equal(t, 45, res.Chains[catalog.ChainEthereumMainnet])
	assert.Equal(t, 4, res.Chains[catalog.ChainEthereumGoerli])
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	matic, err := r.Contracts(context.Background(), catalog.ChainMaticMainnet)
	require.NoError(t, err)
	require.Len(t, matic, 3)
	assert.Equal(t, nfts.CategoryWearable, matic[0].Category)
	assert.Equal(t, "Dances", matic[1].Name)
	assert.Equal(t, nfts.CategoryWearable, matic[1].Category)
	assert.Equal(t, nfts.CategoryEmote, matic[2].Category)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.RegistryContracts.WithLabelValues("137")))
}

func TestRefreshDeduplicatesAcrossSources(t *testing.T) {
	var a, b int32
	upper := collection("0x00000000000000000000000000000000000000AA", "First", catalog.ItemTypeWearableV1)
	lower := collection("0x00000000000000000000000000000000000000aa", "Second", catalog.ItemTypeWearableV1)

	r := New(NewMemoryStore(), []Source{
		{Name: "a", Network: catalog.NetworkMatic, ChainID: catalog.ChainMaticMumbai, Subgraph: pagedSubgraph(&a, upper), Discover: true},
		{Name: "b", Network: catalog.NetworkMatic, ChainID: catalog.ChainMaticMumbai, Subgraph: pagedSubgraph(&b, lower), Discover: true},
	}, WithSeed(false))

	_, err := r.Refresh(context.Background())
	require.NoError(t, err)

	list, err := r.Contracts(context.Background(), catalog.ChainMaticMumbai)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "First", list[0].Name)
}

func TestRefreshSkipsNonDiscoveringSources(t *testing.T) {
	var calls int32
	r := New(NewMemoryStore(), []Source{
		{Name: "marketplace", Network: catalog.NetworkEthereum, ChainID: catalog.ChainEthereumSepolia, Subgraph: pagedSubgraph(&calls)},
	})

	res, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.Equal(t, 0, res.Chains[catalog.ChainEthereumSepolia])

	list, err := r.Contracts(context.Background(), catalog.ChainEthereumSepolia)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	boom := errors.New("indexer down")
	var calls int32
	store := NewMemoryStore()
	previous := []catalog.Contract{{Name: "Old", Address: "0x01", Category: nfts.CategoryWearable, Network: catalog.NetworkMatic, ChainID: catalog.ChainMaticMainnet}}
	require.NoError(t, store.Put(context.Background(), catalog.ChainMaticMainnet, previous))

	r := New(store, []Source{
		{Name: "broken", Network: catalog.NetworkMatic, ChainID: catalog.ChainMaticMainnet, Subgraph: failingSubgraph(boom), Discover: true},
		{Name: "fine", Network: catalog.NetworkMatic, ChainID: catalog.ChainMaticAmoy, Subgraph: pagedSubgraph(&calls), Discover: true},
	}, WithSeed(false))

	res, err := r.Refresh(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	_, stored := res.Chains[catalog.ChainMaticMainnet]
	assert.False(t, stored)

	list, err := r.Contracts(context.Background(), catalog.ChainMaticMainnet)
	require.NoError(t, err)
	assert.Equal(t, previous, list)
}

func TestContractsFallsBackToSeed(t *testing.T) {
	r := New(NewMemoryStore(), nil)
	list, err := r.Contracts(context.Background(), catalog.ChainEthereumMainnet)
	require.NoError(t, err)
	assert.Len(t, list, 45)

	r = New(NewMemoryStore(), nil, WithSeed(false))
	list, err = r.Contracts(context.Background(), catalog.ChainEthereumMainnet)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestFind(t *testing.T) {
	r := New(NewMemoryStore(), nil)
	got, err := r.Find(context.Background(), catalog.ChainEthereumMainnet, "0xF87E31492Faf9A91B02Ee0dEAAd50d51d56D5d4d")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "LAND", got[0].Name)

	got, err = r.Find(context.Background(), catalog.ChainEthereumMainnet, "0x0000000000000000000000000000000000000001")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestChains(t *testing.T) {
	r := New(NewMemoryStore(), []Source{
		{Name: "matic", ChainID: catalog.ChainMaticMainnet},
		{Name: "eth", ChainID: catalog.ChainEthereumMainnet},
	})
	assert.Equal(t, []catalog.ChainID{1, 5, 137}, r.Chains())

	r = New(NewMemoryStore(), []Source{{Name: "matic", ChainID: catalog.ChainMaticMainnet}}, WithSeed(false))
	assert.Equal(t, []catalog.ChainID{137}, r.Chains())
}

func TestMerge(t *testing.T) {
	a := catalog.Contract{Name: "a", Address: "0xAB", Category: nfts.CategoryWearable}
	b := catalog.Contract{Name: "b", Address: "0xab", Category: nfts.CategoryWearable}
	c := catalog.Contract{Name: "c", Address: "0xab", Category: nfts.CategoryEmote}

	got := Merge([]catalog.Contract{a}, []catalog.Contract{b, c})
	assert.Equal(t, []catalog.Contract{a, c}, got)
	assert.NotNil(t, Merge())
}

func TestStartStop(t *testing.T) {
	var calls int32
	r := New(NewMemoryStore(), []Source{
		{Name: "matic", Network: catalog.NetworkMatic, ChainID: catalog.ChainMaticMainnet, Discover: true,
			Subgraph: contracts.SubgraphFunc(func(ctx context.Context, _ string, _ map[string]any, out any) error {
				atomic.AddInt32(&calls, 1)
				return json.Unmarshal([]byte(`{"collections":[]}`), out)
			}),
		},
	}, WithRefreshInterval(10*time.Millisecond))

	r.Start(context.Background())
	r.Start(context.Background())
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) >= 2 }, time.Second, 5*time.Millisecond)
	r.Stop()

	after := atomic.LoadInt32(&calls)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&calls), "loop kept running after Stop")
	r.Stop()
}

func TestStartWithoutInterval(t *testing.T) {
	r := New(NewMemoryStore(), nil)
	r.Start(context.Background())
	r.Stop()
	require.NoError(t, r.Close(context.Background()))
}

func ExampleMerge() {
	seed := []catalog.Contract{{Name: "LAND", Address: "0xF87E31492Faf9A91B02Ee0dEAAd50d51d56D5d4d", Category: nfts.CategoryParcel}}
	found := []catalog.Contract{{Name: "land again", Address: "0xf87e31492faf9a91b02ee0deaad50d51d56d5d4d", Category: nfts.CategoryParcel}}
	for _, c := range Merge(seed, found) {
		fmt.Println(c.Name)
	}
	// Output: LAND
}
