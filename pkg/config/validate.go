package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/DeBrosOfficial/marketplace/pkg/catalog"
)

// ValidationError represents a single validation error with context.
type ValidationError struct {
	Path    string // e.g., "subgraphs[0].url"
	Message string // e.g., "invalid URL"
	Hint    string // e.g., "expected http(s)://host/path"
}

func (e ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s; %s", e.Path, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Validate performs comprehensive validation of the entire config.
// It aggregates all errors and returns them, allowing the caller to print all issues at once.
func (c *Config) Validate() []error {
	var errs []error

	errs = append(errs, c.validateServer()...)
	errs = append(errs, c.validateLogging()...)
	errs = append(errs, c.validateSubgraphs()...)
	errs = append(errs, c.validateRegistry()...)

	return errs
}

func (c *Config) validateServer() []error {
	var errs []error
	sc := c.Server

	if _, port, err := net.SplitHostPort(sc.ListenAddr); err != nil || port == "" {
		errs = append(errs, ValidationError{
			Path:    "server.listen_addr",
			Message: fmt.Sprintf("invalid listen address %q", sc.ListenAddr),
			Hint:    "expected host:port or :port",
		})
	}

	errs = append(errs, nonNegative("server.read_timeout", sc.ReadTimeout)...)
	errs = append(errs, nonNegative("server.write_timeout", sc.WriteTimeout)...)
	errs = append(errs, nonNegative("server.request_timeout", sc.RequestTimeout)...)
	return errs
}

func (c *Config) validateLogging() []error {
	var errs []error
	lc := c.Logging

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[lc.Level] {
		errs = append(errs, ValidationError{
			Path:    "logging.level",
			Message: fmt.Sprintf("invalid value %q", lc.Level),
			Hint:    "allowed values: debug, info, warn, error",
		})
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[lc.Format] {
		errs = append(errs, ValidationError{
			Path:    "logging.format",
			Message: fmt.Sprintf("invalid value %q", lc.Format),
			Hint:    "allowed values: json, console",
		})
	}

	if lc.OutputFile != "" {
		if dir := filepath.Dir(lc.OutputFile); dir != "" && dir != "." {
			if err := validateDirWritable(dir); err != nil {
				errs = append(errs, ValidationError{
					Path:    "logging.output_file",
					Message: fmt.Sprintf("parent directory not writable: %v", err),
				})
			}
		}
	}

	return errs
}

func (c *Config) validateSubgraphs() []error {
	var errs []error
	seen := make(map[string]bool)

	for i, sg := range c.Subgraphs {
		path := fmt.Sprintf("subgraphs[%d]", i)

		if strings.TrimSpace(sg.Name) == "" {
			errs = append(errs, ValidationError{Path: path + ".name", Message: "must not be empty"})
		} else if seen[sg.Name] {
			errs = append(errs, ValidationError{
				Path:    path + ".name",
				Message: fmt.Sprintf("duplicate source name %q", sg.Name),
			})
		}
		seen[sg.Name] = true

		if err := validateHTTPURL(sg.URL); err != nil {
			errs = append(errs, ValidationError{
				Path:    path + ".url",
				Message: err.Error(),
				Hint:    "expected http(s)://host/path",
			})
		}

		if _, ok := catalog.ParseNetwork(sg.Network); !ok {
			errs = append(errs, ValidationError{
				Path:    path + ".network",
				Message: fmt.Sprintf("invalid value %q", sg.Network),
				Hint:    "allowed values: ETHEREUM, MATIC",
			})
		}

		if sg.ChainID <= 0 {
			errs = append(errs, ValidationError{
				Path:    path + ".chain_id",
				Message: "must be positive",
			})
		}

		errs = append(errs, nonNegative(path+".timeout", sg.Timeout)...)
	}

	return errs
}

func (c *Config) validateRegistry() []error {
	var errs []error
	rc := c.Registry

	errs = append(errs, nonNegative("registry.refresh_interval", rc.RefreshInterval)...)

	switch rc.Store {
	case StoreMemory:
	case StoreSQLite:
		if strings.TrimSpace(rc.SQLitePath) == "" {
			errs = append(errs, ValidationError{
				Path:    "registry.sqlite_path",
				Message: "must not be empty when store is sqlite",
			})
		}
	case StoreRQLite:
		if err := validateHTTPURL(rc.RQLiteDSN); err != nil {
			errs = append(errs, ValidationError{
				Path:    "registry.rqlite_dsn",
				Message: err.Error(),
				Hint:    "expected http://host:port",
			})
		}
	case StoreOlric:
		if len(rc.OlricServers) == 0 {
			errs = append(errs, ValidationError{
				Path:    "registry.olric_servers",
				Message: "must not be empty when store is olric",
			})
		}
		for i, addr := range rc.OlricServers {
			if _, _, err := net.SplitHostPort(addr); err != nil {
				errs = append(errs, ValidationError{
					Path:    fmt.Sprintf("registry.olric_servers[%d]", i),
					Message: fmt.Sprintf("invalid address %q", addr),
					Hint:    "expected host:port",
				})
			}
		}
		if strings.TrimSpace(rc.OlricDMap) == "" {
			errs = append(errs, ValidationError{
				Path:    "registry.olric_dmap",
				Message: "must not be empty when store is olric",
			})
		}
		errs = append(errs, nonNegative("registry.olric_timeout", rc.OlricTimeout)...)
	default:
		errs = append(errs, ValidationError{
			Path:    "registry.store",
			Message: fmt.Sprintf("invalid value %q", rc.Store),
			Hint:    "allowed values: memory, olric, sqlite, rqlite",
		})
	}

	return errs
}

func nonNegative(path string, d time.Duration) []error {
	if d < 0 {
		return []error{ValidationError{Path: path, Message: "must not be negative"}}
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || raw == "" {
		return fmt.Errorf("invalid URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}

// validateDirWritable validates that a directory exists and is writable.
func validateDirWritable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access directory: %v", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory")
	}

	testFile := filepath.Join(path, ".write_test")
	if err := os.WriteFile(testFile, []byte(""), 0644); err != nil {
		return fmt.Errorf("directory not writable: %v", err)
	}
	os.Remove(testFile)

	return nil
}
