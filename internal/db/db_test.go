package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every pooled connection must carry the connection-scoped pragmas, not
// just the one that happened to open first. Holding two connections at
// once forces the pool to hand out distinct ones.
func TestOpenDB_PragmasReachEveryConnection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pragma_test.db")
	database, err := OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	ctx := context.Background()
	conns := make([]*sql.Conn, 2)
	for i := range conns {
		conn, err := database.Conn(ctx)
		require.NoError(t, err)
		defer conn.Close()
		conns[i] = conn
	}

	for i, conn := range conns {
		var busyTimeout int
		require.NoError(t,
			conn.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&busyTimeout))
		assert.Equal(t, 5000, busyTimeout, "connection %d", i)

		var foreignKeys int
		require.NoError(t,
			conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&foreignKeys))
		assert.Equal(t, 1, foreignKeys, "connection %d", i)

		var journalMode string
		require.NoError(t,
			conn.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode))
		assert.Equal(t, "wal", journalMode, "connection %d", i)
	}
}

func TestOpenDB_InMemorySharesOneDatabase(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	// Data written through one pooled handle must be visible through the
	// next; a fresh in-memory connection would come up empty.
	_, err = database.Exec(`INSERT INTO employees (id, name, created_at) VALUES ('e1', 'Ana', '2026-01-01T00:00:00.000000000Z')`)
	require.NoError(t, err)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM employees`).Scan(&count))
	assert.Equal(t, 1, count)
}
