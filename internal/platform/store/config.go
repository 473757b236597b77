package store

import "time"

// Config aggregates backend configuration for the store facade
type Config struct {
	AppName string

	PG PGConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// boot guard knobs; zero values fall back to openPG's defaults
	ConnectRetries int
	PingTimeout    time.Duration
}
