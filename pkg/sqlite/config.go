package sqlite

import "time"

// ClientOption configures Client.
type ClientOption func(*ClientConfig)

// ClientConfig holds SQLite connection settings.
type ClientConfig struct {
	Path            string
	BusyTimeout     time.Duration
	JournalMode     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	CreateDir       bool
}

// WithPath sets the database file path.
func WithPath(path string) ClientOption {
	return func(c *ClientConfig) {
		c.Path = path
	}
}

// WithBusyTimeout sets how long a writer waits on a locked database.
func WithBusyTimeout(d time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.BusyTimeout = d
	}
}

// WithJournalMode sets the journal mode (WAL, DELETE, ...).
func WithJournalMode(mode string) ClientOption {
	return func(c *ClientConfig) {
		c.JournalMode = mode
	}
}

// WithMaxConnections sets max open and idle connections.
func WithMaxConnections(maxOpen, maxIdle int) ClientOption {
	return func(c *ClientConfig) {
		c.MaxOpenConns = maxOpen
		c.MaxIdleConns = maxIdle
	}
}

// WithCreateDir creates the parent directory of Path when missing.
func WithCreateDir(create bool) ClientOption {
	return func(c *ClientConfig) {
		c.CreateDir = create
	}
}
