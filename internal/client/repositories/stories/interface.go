package stories

import (
	"context"

	"github.com/aditwb/storysync/internal/client/models"
)

// Repository describes CRUD operations over the confirmed-story table: the
// durable copies of remote-origin stories the user explicitly saved.
// Implementations are typically backed by a local SQLite database.
type Repository interface {
	// GetAll returns all saved stories in no defined order; callers sort
	// explicitly.
	GetAll(ctx context.Context) ([]models.Story, error)

	// GetByID returns a saved story, or common.ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.Story, error)

	// CreateOrUpdate upserts a story by its remote id. Re-saving an already
	// saved story overwrites the row wholly and is idempotent.
	CreateOrUpdate(ctx context.Context, story *models.Story) error

	// PutMany upserts a batch of stories as a single all-or-nothing unit.
	// Partial application on failure is not an acceptable outcome.
	PutMany(ctx context.Context, batch []models.Story) error

	// Delete removes the local copy of a story. Deleting an absent id is a
	// no-op; server-side data is never touched.
	Delete(ctx context.Context, id string) error

	// Clear removes every saved story.
	Clear(ctx context.Context) error
}
