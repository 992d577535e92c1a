package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rukmini-chat/backend/internal/repository"
)

func TestInitDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "chat.db")

	db, err := InitDB(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, db.Close()) }()

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'client_storage'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "client_storage", name)
}

func TestInitDB_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.db")

	db, err := InitDB(path)
	require.NoError(t, err)

	store := repository.NewSQLiteStore(db)
	require.NoError(t, store.Save(context.Background(), "chatIsOpen", "true"))
	require.NoError(t, db.Close())

	// Reopening must not re-run the migration or lose data.
	db, err = InitDB(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, db.Close()) }()

	value, err := repository.NewSQLiteStore(db).Load(context.Background(), "chatIsOpen")
	require.NoError(t, err)
	assert.Equal(t, "true", value)
}
