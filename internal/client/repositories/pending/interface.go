package pending

import (
	"context"

	"github.com/aditwb/storysync/internal/client/models"
)

// Repository describes operations over the pending-story table: locally
// authored stories queued for upload. The store assigns TempID; keys are
// never reused, even after a delete.
type Repository interface {
	// Add inserts a new pending story and returns the assigned TempID.
	// The record's TempID field is populated as well.
	Add(ctx context.Context, story *models.PendingStory) (int64, error)

	// GetAll returns pending stories in arrival order (ascending TempID).
	GetAll(ctx context.Context) ([]models.PendingStory, error)

	// GetByID returns one pending story, or common.ErrNotFound when absent.
	GetByID(ctx context.Context, tempID int64) (*models.PendingStory, error)

	// GetByClientKey finds a pending story by its idempotency key, or
	// common.ErrNotFound. Used to detect a double-submitted story.
	GetByClientKey(ctx context.Context, key string) (*models.PendingStory, error)

	// Delete removes one pending story. Deleting an already-absent key is a
	// no-op: the sync engine and a user delete may race on the same record.
	Delete(ctx context.Context, tempID int64) error

	// Clear removes every pending story.
	Clear(ctx context.Context) error

	// Count returns the number of queued stories.
	Count(ctx context.Context) (int, error)
}
