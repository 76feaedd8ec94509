// Package gateway implements the client of the remote story service's REST
// API. Ordinary network failure never escapes this boundary as a Go error:
// fetch and create calls resolve to a result with Err set and a
// human-readable message, so callers treat transport failures and server
// rejections through one path.
package gateway

import (
	"context"

	"github.com/aditwb/storysync/internal/client/models"
)

// FetchResult is the outcome of listing stories.
type FetchResult struct {
	Err            bool
	NetworkFailure bool
	Message        string
	Stories        []models.Story
}

// StoryResult is the outcome of fetching one story by id.
type StoryResult struct {
	Err            bool
	NetworkFailure bool
	Message        string
	Story          *models.Story
}

// CreateResult is the outcome of submitting a story.
type CreateResult struct {
	Err            bool
	NetworkFailure bool
	Message        string
	Story          *models.Story
}

// NewStoryPayload is the multipart upload body for a story submission.
// Lat/Lon are sent only when both are present.
type NewStoryPayload struct {
	Description string
	Photo       []byte
	PhotoName   string
	Lat         *float64
	Lon         *float64
}

// Gateway is the remote story service as seen by the sync engine and the
// query layer.
type Gateway interface {
	// FetchStories lists the stories visible to the logged-in user.
	FetchStories(ctx context.Context) FetchResult

	// FetchStory loads a single story by its remote id.
	FetchStory(ctx context.Context, id string) StoryResult

	// CreateStory uploads one story. NetworkFailure distinguishes transport
	// problems (retryable, queue the story) from server rejections.
	CreateStory(ctx context.Context, payload NewStoryPayload) CreateResult

	// Ping probes reachability of the service. Any HTTP response counts as
	// reachable; only transport failures return an error.
	Ping(ctx context.Context) error
}
