package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN(ClientConfig{Path: "data/prices.db", BusyTimeout: 5 * time.Second, JournalMode: "WAL"})
	require.Equal(t, "file:data/prices.db?_busy_timeout=5000&_journal_mode=WAL", dsn)

	require.Equal(t, "file:x.db", buildDSN(ClientConfig{Path: "x.db"}))
}

func TestNewClientRequiresPath(t *testing.T) {
	_, err := NewClient()
	require.Error(t, err)
}

func TestNewClientCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prices.db")

	c, err := NewClient(WithPath(path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Health(t.Context()))
}
