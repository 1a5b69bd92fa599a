package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/DeBrosOfficial/marketplace/pkg/config"
)

const envPrefix = "MARKETPLACE_"

type lookupEnv func(key string) (string, bool)

func getEnvDefault(lookup lookupEnv, key, def string) string {
	if v, ok := lookup(envPrefix + key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func getEnvBoolDefault(lookup lookupEnv, key string, def bool) bool {
	v, ok := lookup(envPrefix + key)
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getEnvDurationDefault(lookup lookupEnv, key string, def time.Duration) (time.Duration, error) {
	v := getEnvDefault(lookup, key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	return d, nil
}

// parseGatewayConfig builds the gateway configuration.
// Priority: flags > env (MARKETPLACE_*) > YAML file > defaults.
func parseGatewayConfig(args []string, lookup lookupEnv) (*config.Config, string, error) {
	fs := flag.NewFlagSet("gateway", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML config file (default: ./gateway.yaml or ~/.marketplace/gateway.yaml when present)")
	addr := fs.String("addr", "", "HTTP listen address (e.g., :6010)")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")
	logFormat := fs.String("log-format", "", "Log format: console, json")
	store := fs.String("store", "", "Registry store: memory, olric, sqlite, rqlite")
	refresh := fs.Duration("refresh-interval", 0, "Registry refresh interval (0 disables the background loop)")
	if err := fs.Parse(args); err != nil {
		return nil, "", err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	path := *configPath
	if path == "" {
		path = getEnvDefault(lookup, "CONFIG", "")
	}
	explicit := path != ""
	if !explicit {
		p, err := config.DefaultPath("gateway.yaml")
		if err == nil {
			path = p
		}
	}

	cfg := config.DefaultConfig()
	source := "defaults"
	if path != "" {
		loaded, err := config.Load(path)
		switch {
		case err == nil:
			cfg = loaded
			source = path
		case explicit || !errors.Is(err, os.ErrNotExist):
			return nil, "", err
		}
	}

	// env overrides the file
	cfg.Server.ListenAddr = getEnvDefault(lookup, "ADDR", cfg.Server.ListenAddr)
	cfg.Logging.Level = getEnvDefault(lookup, "LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnvDefault(lookup, "LOG_FORMAT", cfg.Logging.Format)
	cfg.Logging.Colors = getEnvBoolDefault(lookup, "LOG_COLORS", cfg.Logging.Colors)
	cfg.Registry.Store = getEnvDefault(lookup, "STORE", cfg.Registry.Store)
	cfg.Registry.IncludeSeed = getEnvBoolDefault(lookup, "INCLUDE_SEED", cfg.Registry.IncludeSeed)
	cfg.Registry.SQLitePath = getEnvDefault(lookup, "SQLITE_PATH", cfg.Registry.SQLitePath)
	cfg.Registry.RQLiteDSN = getEnvDefault(lookup, "RQLITE_DSN", cfg.Registry.RQLiteDSN)
	if servers := getEnvDefault(lookup, "OLRIC_SERVERS", ""); servers != "" {
		cfg.Registry.OlricServers = splitList(servers)
	}
	d, err := getEnvDurationDefault(lookup, "REFRESH_INTERVAL", cfg.Registry.RefreshInterval)
	if err != nil {
		return nil, "", err
	}
	cfg.Registry.RefreshInterval = d

	// flags override everything
	if set["addr"] {
		cfg.Server.ListenAddr = *addr
	}
	if set["log-level"] {
		cfg.Logging.Level = *logLevel
	}
	if set["log-format"] {
		cfg.Logging.Format = *logFormat
	}
	if set["store"] {
		cfg.Registry.Store = *store
	}
	if set["refresh-interval"] {
		cfg.Registry.RefreshInterval = *refresh
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, "", errors.Join(errs...)
	}
	return cfg, source, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
