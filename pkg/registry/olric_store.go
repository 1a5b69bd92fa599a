package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	olriclib "github.com/olric-data/olric"
	"go.uber.org/zap"

	"github.com/DeBrosOfficial/marketplace/pkg/catalog"
	"github.com/DeBrosOfficial/marketplace/pkg/contracts"
	mperrors "github.com/DeBrosOfficial/marketplace/pkg/errors"
)

const olricBackend = "olric"

var (
	_ Store                   = (*OlricStore)(nil)
	_ contracts.CacheProvider = (*OlricStore)(nil)
)

// OlricConfig holds configuration for the Olric store
type OlricConfig struct {
	// Servers is a list of Olric server addresses (e.g., ["localhost:3320"])
	// If empty, defaults to ["localhost:3320"]
	Servers []string

	// DMap is the distributed map holding one entry per chain
	// If empty, defaults to "contracts"
	DMap string

	// Timeout is the timeout for store operations
	// If zero, defaults to 10 seconds
	Timeout time.Duration
}

// snapshotMap is the part of an Olric DMap the store uses.
type snapshotMap interface {
	put(ctx context.Context, key, value string) error
	get(ctx context.Context, key string) (string, bool, error)
	delete(ctx context.Context, key string) error
}

type olricDMap struct {
	dm olriclib.DMap
}

func (m olricDMap) put(ctx context.Context, key, value string) error {
	return m.dm.Put(ctx, key, value)
}

func (m olricDMap) get(ctx context.Context, key string) (string, bool, error) {
	gr, err := m.dm.Get(ctx, key)
	if err != nil {
		if errors.Is(err, olriclib.ErrKeyNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	val, err := gr.String()
	if err != nil {
		return "", false, fmt.Errorf("failed to decode value: %w", err)
	}
	return val, true, nil
}

func (m olricDMap) delete(ctx context.Context, key string) error {
	_, err := m.dm.Delete(ctx, key)
	return err
}

// OlricStore keeps chain snapshots as JSON documents in an Olric DMap, so every
// gateway of a cluster serves the same registry.
type OlricStore struct {
	client  olriclib.Client
	dmap    snapshotMap
	timeout time.Duration
	logger  *zap.Logger
}

// NewOlricStore connects to an Olric cluster and opens the snapshot DMap.
func NewOlricStore(cfg OlricConfig, logger *zap.Logger) (*OlricStore, error) {
	servers := cfg.Servers
	if len(servers) == 0 {
		servers = []string{"localhost:3320"}
	}
	name := cfg.DMap
	if name == "" {
		name = "contracts"
	}

	client, err := olriclib.NewClusterClient(servers)
	if err != nil {
		return nil, fmt.Errorf("failed to create Olric cluster client: %w", err)
	}

	dm, err := client.NewDMap(name)
	if err != nil {
		_ = client.Close(context.Background())
		return nil, fmt.Errorf("failed to open DMap %s: %w", name, err)
	}

	store := newOlricStore(olricDMap{dm: dm}, cfg.Timeout, logger)
	store.client = client
	return store, nil
}

func newOlricStore(dm snapshotMap, timeout time.Duration, logger *zap.Logger) *OlricStore {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OlricStore{
		dmap:    dm,
		timeout: timeout,
		logger:  logger,
	}
}

func snapshotKey(chainID catalog.ChainID) string {
	return "chain:" + strconv.FormatInt(int64(chainID), 10)
}

// Put implements Store.
func (s *OlricStore) Put(ctx context.Context, chainID catalog.ChainID, list []catalog.Contract) error {
	if list == nil {
		list = []catalog.Contract{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.dmap.put(ctx, snapshotKey(chainID), string(data)); err != nil {
		return mperrors.NewStoreError(olricBackend, "put", err)
	}
	s.logger.Debug("Stored snapshot in Olric",
		zap.Int64("chain_id", int64(chainID)),
		zap.Int("contracts", len(list)),
	)
	return nil
}

// Get implements Store.
func (s *OlricStore) Get(ctx context.Context, chainID catalog.ChainID) ([]catalog.Contract, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	val, ok, err := s.dmap.get(ctx, snapshotKey(chainID))
	if err != nil {
		return nil, false, mperrors.NewStoreError(olricBackend, "get", err)
	}
	if !ok {
		return nil, false, nil
	}

	var list []catalog.Contract
	if err := json.Unmarshal([]byte(val), &list); err != nil {
		return nil, false, fmt.Errorf("corrupt snapshot for chain %d: %w", chainID, err)
	}
	return list, true, nil
}

// Health writes and reads back a probe key.
func (s *OlricStore) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	key := fmt.Sprintf("_health_%d", time.Now().UnixNano())
	if err := s.dmap.put(ctx, key, "ok"); err != nil {
		return mperrors.NewStoreError(olricBackend, "health", fmt.Errorf("put probe: %w", err))
	}
	val, ok, err := s.dmap.get(ctx, key)
	if err != nil {
		return mperrors.NewStoreError(olricBackend, "health", fmt.Errorf("get probe: %w", err))
	}
	if !ok || val != "ok" {
		return mperrors.NewStoreError(olricBackend, "health", fmt.Errorf("probe value mismatch: expected %q, got %q", "ok", val))
	}
	_ = s.dmap.delete(ctx, key)
	return nil
}

// Close closes the Olric client connection.
func (s *OlricStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Close(ctx)
}
