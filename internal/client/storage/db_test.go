package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aditwb/storysync/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDatabase_CreatesBothTables(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "client.db")

	repos, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	// both tables usable right away
	require.NoError(t, repos.Stories.CreateOrUpdate(ctx, &models.Story{ID: "s1", Name: "n"}))
	_, err = repos.Pending.Add(ctx, &models.PendingStory{Description: "queued", Photo: []byte{1}})
	require.NoError(t, err)
}

func TestInitDatabase_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "client.db")

	repos, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, repos.Stories.CreateOrUpdate(ctx, &models.Story{ID: "keep", Name: "n"}))
	require.NoError(t, repos.Close())

	// migrations run again on open; existing rows must survive
	repos, err = InitDatabase(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	got, err := repos.Stories.GetByID(ctx, "keep")
	require.NoError(t, err)
	assert.Equal(t, "n", got.Name)
}

func TestClearAll_EmptiesBothTables(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "client.db")

	repos, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	require.NoError(t, repos.Stories.CreateOrUpdate(ctx, &models.Story{ID: "s1"}))
	_, err = repos.Pending.Add(ctx, &models.PendingStory{Description: "queued", Photo: []byte{1}})
	require.NoError(t, err)

	require.NoError(t, repos.ClearAll(ctx))

	saved, err := repos.Stories.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, saved)

	n, err := repos.Pending.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
