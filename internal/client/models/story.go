// Package models defines client-side data models for the story app core:
// confirmed stories, pending (unsynced) stories and the derived display
// records produced by the view aggregator.
package models

import (
	"fmt"
	"strings"

	"github.com/aditwb/storysync/internal/common"
)

// Story is a confirmed story: a record known to (or previously fetched from)
// the remote story service. Id is assigned by the service and is stable
// across sessions.
type Story struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`
	PhotoURL    string   `json:"photoUrl,omitempty"`
	CreatedAt   string   `json:"createdAt"`
}

// HasLocation reports whether both coordinates are present.
func (s *Story) HasLocation() bool {
	return s.Lat != nil && s.Lon != nil
}

// NewStoryInput is the user-provided payload for a story submission.
type NewStoryInput struct {
	Description string
	Photo       []byte
	Lat         *float64
	Lon         *float64

	// ClientKey is an optional caller-supplied idempotency key. When the UI
	// generates one key per form, a double-clicked submit queues the story
	// once instead of twice. Left empty, every submission is queued anew.
	ClientKey string
}

// MinDescriptionLen is the minimum accepted description length, in runes.
const MinDescriptionLen = 10

// Validate checks the submission locally. It is called before any storage or
// network operation; failures wrap common.ErrValidation.
func (in *NewStoryInput) Validate() error {
	if len([]rune(strings.TrimSpace(in.Description))) < MinDescriptionLen {
		return fmt.Errorf("%w: description must be at least %d characters", common.ErrValidation, MinDescriptionLen)
	}
	if len(in.Photo) == 0 {
		return fmt.Errorf("%w: photo is required", common.ErrValidation)
	}
	if in.Lat == nil || in.Lon == nil {
		return fmt.Errorf("%w: location is required", common.ErrValidation)
	}
	return nil
}
