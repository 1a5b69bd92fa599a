package registry

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"       // sqlite3 database/sql driver
	_ "github.com/rqlite/gorqlite/stdlib" // rqlite database/sql driver
	"go.uber.org/zap"

	"github.com/DeBrosOfficial/marketplace/pkg/catalog"
	mperrors "github.com/DeBrosOfficial/marketplace/pkg/errors"
	"github.com/DeBrosOfficial/marketplace/pkg/nfts"
)

// SQL drivers accepted by NewSQLStore.
const (
	DriverSQLite = "sqlite3"
	DriverRQLite = "rqlite"
)

var _ Store = (*SQLStore)(nil)

// schema is applied in order; applied versions are recorded in schema_migrations.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS contracts (
		chain_id  INTEGER NOT NULL,
		position  INTEGER NOT NULL,
		address   TEXT NOT NULL,
		category  TEXT NOT NULL,
		name      TEXT NOT NULL,
		network   TEXT NOT NULL,
		PRIMARY KEY (chain_id, address, category)
	)`,
	`CREATE TABLE IF NOT EXISTS snapshots (
		chain_id     INTEGER PRIMARY KEY,
		refreshed_at INTEGER NOT NULL
	)`,
}

// SQLStore keeps snapshots in a SQL database: a local SQLite file or an rqlite
// cluster reached over HTTP.
type SQLStore struct {
	db     *sql.DB
	driver string
	logger *zap.Logger
}

// NewSQLStore opens dsn with driver (DriverSQLite or DriverRQLite) and applies
// the schema.
func NewSQLStore(ctx context.Context, driver, dsn string, logger *zap.Logger) (*SQLStore, error) {
	switch driver {
	case DriverSQLite, DriverRQLite:
	default:
		return nil, fmt.Errorf("unsupported SQL driver %q", driver)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", driver, err)
	}

	if driver == DriverSQLite {
		// One writer at a time.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Second)
		db.SetConnMaxIdleTime(10 * time.Second)
	}

	s := &SQLStore{db: db, driver: driver, logger: logger}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY)`); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	for i, stmt := range schema {
		version := i + 1
		var n int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version).Scan(&n); err != nil {
			return fmt.Errorf("load applied versions: %w", err)
		}
		if n > 0 {
			continue
		}

		s.logger.Info("Applying migration", zap.Int("version", version), zap.String("driver", s.driver))
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration %d: %w", version, err)
		}
		if _, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO schema_migrations(version) VALUES (?)`, version); err != nil {
			return fmt.Errorf("record migration %d: %w", version, err)
		}
	}
	return nil
}

// Put implements Store. The previous snapshot of the chain is replaced in one
// transaction.
func (s *SQLStore) Put(ctx context.Context, chainID catalog.ChainID, list []catalog.Contract) error {
	if err := s.put(ctx, chainID, list); err != nil {
		return mperrors.NewStoreError(s.driver, "put", err)
	}
	return nil
}

func (s *SQLStore) put(ctx context.Context, chainID catalog.ChainID, list []catalog.Contract) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM contracts WHERE chain_id = ?`, int64(chainID)); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	for i, c := range list {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO contracts (chain_id, position, address, category, name, network) VALUES (?, ?, ?, ?, ?, ?)`,
			int64(chainID), i, c.Address, string(c.Category), c.Name, string(c.Network),
		); err != nil {
			return fmt.Errorf("insert contract %s: %w", c.Address, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO snapshots (chain_id, refreshed_at) VALUES (?, ?)`,
		int64(chainID), time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("record snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Get implements Store.
func (s *SQLStore) Get(ctx context.Context, chainID catalog.ChainID) ([]catalog.Contract, bool, error) {
	list, ok, err := s.get(ctx, chainID)
	if err != nil {
		return nil, false, mperrors.NewStoreError(s.driver, "get", err)
	}
	return list, ok, nil
}

func (s *SQLStore) get(ctx context.Context, chainID catalog.ChainID) ([]catalog.Contract, bool, error) {
	var refreshedAt int64
	err := s.db.QueryRowContext(ctx, `SELECT refreshed_at FROM snapshots WHERE chain_id = ?`, int64(chainID)).Scan(&refreshedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT address, category, name, network FROM contracts WHERE chain_id = ? ORDER BY position`,
		int64(chainID),
	)
	if err != nil {
		return nil, false, fmt.Errorf("read contracts: %w", err)
	}
	defer rows.Close()

	list := []catalog.Contract{}
	for rows.Next() {
		var address, category, name, network string
		if err := rows.Scan(&address, &category, &name, &network); err != nil {
			return nil, false, fmt.Errorf("scan contract: %w", err)
		}
		list = append(list, catalog.Contract{
			Name:     name,
			Address:  address,
			Category: nfts.Category(category),
			Network:  catalog.Network(network),
			ChainID:  chainID,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("read contracts: %w", err)
	}
	return list, true, nil
}

// Health pings the database.
func (s *SQLStore) Health(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return mperrors.NewStoreError(s.driver, "health", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLStore) Close(context.Context) error {
	return s.db.Close()
}
