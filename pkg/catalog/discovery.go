package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DeBrosOfficial/marketplace/pkg/contracts"
	"github.com/DeBrosOfficial/marketplace/pkg/metrics"
	"github.com/DeBrosOfficial/marketplace/pkg/nfts"
)

// PageSize is the number of collections requested per page.
const PageSize = 1000

// CollectionsQuery returns the query for the given page of approved collections.
func CollectionsQuery(page int) string {
	return fmt.Sprintf(`query getCollections {
  collections(first: %d, skip: %d, where: { isApproved: true }) {
    name
    id
    items {
      itemType
    }
  }
}
`, PageSize, page*PageSize)
}

// Classify returns the contracts a collection contributes: a wearable contract if
// it holds any wearable item, then an emote contract if it holds any emote.
func Classify(c Collection, network Network, chainID ChainID) []Contract {
	var hasWearables, hasEmotes bool
	for _, item := range c.Items {
		hasWearables = hasWearables || item.ItemType.IsWearable()
		hasEmotes = hasEmotes || item.ItemType.IsEmote()
	}

	var out []Contract
	if hasWearables {
		out = append(out, Contract{
			Name:     c.Name,
			Address:  c.ID,
			Category: nfts.CategoryWearable,
			Network:  network,
			ChainID:  chainID,
		})
	}
	if hasEmotes {
		out = append(out, Contract{
			Name:     c.Name,
			Address:  c.ID,
			Category: nfts.CategoryEmote,
			Network:  network,
			ChainID:  chainID,
		})
	}
	return out
}

// Discoverer builds the list of collection contracts of a chain by scanning every
// approved collection of its subgraph.
type Discoverer struct {
	subgraph contracts.Subgraph
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewDiscoverer creates a Discoverer. logger and m may be nil.
func NewDiscoverer(subgraph contracts.Subgraph, logger *zap.Logger, m *metrics.Metrics) *Discoverer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Discoverer{
		subgraph: subgraph,
		logger:   logger,
		metrics:  m,
	}
}

// Discover fetches pages one after the other until a page comes back with fewer
// than PageSize collections. Any query error is returned unchanged and no partial
// result is produced.
func (d *Discoverer) Discover(ctx context.Context, network Network, chainID ChainID) ([]Contract, error) {
	runID := uuid.NewString()
	start := time.Now()
	logger := d.logger.With(
		zap.String("run_id", runID),
		zap.String("network", string(network)),
		zap.Int64("chain_id", int64(chainID)),
	)

	var found []Contract
	page := 0
	for {
		var result CollectionPage
		if err := d.subgraph.Query(ctx, CollectionsQuery(page), nil, &result); err != nil {
			logger.Warn("Collection page query failed", zap.Int("page", page), zap.Error(err))
			d.metrics.RecordDiscoveryRun(int64(chainID), err)
			return nil, err
		}
		d.metrics.RecordDiscoveryPage(int64(chainID))
		logger.Debug("Fetched collection page",
			zap.Int("page", page),
			zap.Int("collections", len(result.Collections)),
		)

		for _, c := range result.Collections {
			found = append(found, Classify(c, network, chainID)...)
		}

		page++
		if len(result.Collections) < PageSize {
			break
		}
	}

	d.metrics.RecordDiscoveryRun(int64(chainID), nil)
	logger.Info("Discovered collection contracts",
		zap.Int("contracts", len(found)),
		zap.Int("pages", page),
		zap.Duration("duration", time.Since(start)),
	)
	return found, nil
}

// Discover is a shorthand for NewDiscoverer(subgraph, nil, nil).Discover.
func Discover(ctx context.Context, subgraph contracts.Subgraph, network Network, chainID ChainID) ([]Contract, error) {
	return NewDiscoverer(subgraph, nil, nil).Discover(ctx, network, chainID)
}
