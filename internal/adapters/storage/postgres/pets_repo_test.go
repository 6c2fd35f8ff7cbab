package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weijenchou/dogdietlinebot/internal/adapters/storage/storagetest"
	"github.com/weijenchou/dogdietlinebot/internal/domain/pets"
)

// Requiere TEST_DB_DSN apuntando a una base desechable.
func TestPetsRepo_Contract(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	db, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(context.Background(), db))

	storagetest.Run(t, func(t *testing.T) pets.Repository {
		_, err := db.ExecContext(context.Background(), `TRUNCATE daily_records, pets`)
		require.NoError(t, err)
		return NewPetsRepo(db)
	})
}
