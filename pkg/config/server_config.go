package config

import "time"

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	ListenAddr     string        `yaml:"listen_addr"`     // Address to listen on (e.g., ":6010")
	ReadTimeout    time.Duration `yaml:"read_timeout"`    // http.Server read timeout
	WriteTimeout   time.Duration `yaml:"write_timeout"`   // http.Server write timeout
	RequestTimeout time.Duration `yaml:"request_timeout"` // Per-request handler deadline
}
