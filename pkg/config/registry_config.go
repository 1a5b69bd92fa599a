package config

import "time"

// Registry store backends
const (
	StoreMemory = "memory"
	StoreOlric  = "olric"
	StoreSQLite = "sqlite"
	StoreRQLite = "rqlite"
)

// RegistryConfig contains contract registry configuration
type RegistryConfig struct {
	Store           string        `yaml:"store"`            // memory, olric, sqlite, rqlite
	RefreshInterval time.Duration `yaml:"refresh_interval"` // 0 disables the background loop
	IncludeSeed     bool          `yaml:"include_seed"`     // Merge the marketplace seed contracts

	SQLitePath string `yaml:"sqlite_path"` // sqlite store database file
	RQLiteDSN  string `yaml:"rqlite_dsn"`  // rqlite store DSN

	OlricServers []string      `yaml:"olric_servers"` // Olric server addresses
	OlricDMap    string        `yaml:"olric_dmap"`    // DMap holding chain snapshots
	OlricTimeout time.Duration `yaml:"olric_timeout"` // Timeout for Olric operations
}
