package model

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/username/propledger/backend/src/database"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestCompany(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()
	c, err := CreateCompany(db, name)
	require.NoError(t, err)
	return c.ID
}
