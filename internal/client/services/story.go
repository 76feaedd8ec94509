// Package services exposes the story client's facade to the UI layer: the
// merged display list, local save/delete, submissions with offline fallback
// and manual sync triggering.
package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	gosync "sync"
	"time"

	"github.com/aditwb/storysync/internal/client/auth"
	"github.com/aditwb/storysync/internal/client/display"
	"github.com/aditwb/storysync/internal/client/gateway"
	"github.com/aditwb/storysync/internal/client/models"
	"github.com/aditwb/storysync/internal/client/repositories/pending"
	"github.com/aditwb/storysync/internal/client/repositories/stories"
	syncengine "github.com/aditwb/storysync/internal/client/sync"
	"github.com/aditwb/storysync/internal/common"
	"github.com/aditwb/storysync/internal/logging"
	"github.com/google/uuid"
)

// DefaultFreshness is how long a successful remote fetch is reused before a
// new one is attempted.
const DefaultFreshness = 5 * time.Minute

// Wiper clears both durable tables in one transaction.
// storage.Repositories implements it.
type Wiper interface {
	ClearAll(ctx context.Context) error
}

// StoryService is the facade consumed by the UI layer. The only state it
// holds beyond its collaborators is the session cache of the last successful
// remote fetch; everything durable lives in the repositories.
type StoryService struct {
	saved  stories.Repository
	queue  pending.Repository
	wiper  Wiper
	gw     gateway.Gateway
	engine *syncengine.Engine
	tokens auth.TokenStore
	log    logging.Logger

	freshness time.Duration
	now       func() time.Time

	mu          gosync.Mutex
	lastFetch   []models.Story
	lastFetchAt time.Time
}

// NewStoryService wires the facade. freshness <= 0 falls back to
// DefaultFreshness.
func NewStoryService(
	saved stories.Repository,
	queue pending.Repository,
	wiper Wiper,
	gw gateway.Gateway,
	engine *syncengine.Engine,
	tokens auth.TokenStore,
	log logging.Logger,
	freshness time.Duration,
) *StoryService {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	return &StoryService{
		saved:     saved,
		queue:     queue,
		wiper:     wiper,
		gw:        gw,
		engine:    engine,
		tokens:    tokens,
		log:       log.With("component", "stories"),
		freshness: freshness,
		now:       time.Now,
	}
}

// ListDisplayRecords assembles the merged, de-duplicated display list.
// Local reads surface storage failures; a remote fetch failure silently
// falls back to the session cache. No data anywhere yields an empty list.
func (s *StoryService) ListDisplayRecords(ctx context.Context, opts models.ListOptions) ([]models.DisplayRecord, error) {
	opts = opts.Normalize()

	queued, err := s.queue.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	savedList, err := s.saved.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	remote := s.remoteStories(ctx, opts.ForceRefresh)

	merged := display.Merge(queued, savedList, remote)
	return display.List(merged, opts), nil
}

// remoteStories returns the freshest remote list available without ever
// failing: the session cache when offline or fresh enough, otherwise a new
// fetch with the cache as fallback.
func (s *StoryService) remoteStories(ctx context.Context, force bool) []models.Story {
	s.mu.Lock()
	cached := s.lastFetch
	fresh := !s.lastFetchAt.IsZero() && s.now().Sub(s.lastFetchAt) < s.freshness
	s.mu.Unlock()

	if !s.engine.Online() {
		return cached
	}
	if fresh && !force {
		return cached
	}

	res := s.gw.FetchStories(ctx)
	if res.Err {
		s.log.Warn(ctx, "remote fetch failed, using cached data", "message", res.Message)
		return cached
	}

	s.mu.Lock()
	s.lastFetch = res.Stories
	s.lastFetchAt = s.now()
	s.mu.Unlock()

	return res.Stories
}

// Refresh drops the freshness marker so the next listing re-fetches from the
// remote service. The cached data itself is kept as the offline fallback.
func (s *StoryService) Refresh() {
	s.mu.Lock()
	s.lastFetchAt = time.Time{}
	s.mu.Unlock()
}

// SaveRecord copies a remote-origin story into the durable saved table.
// Re-saving is an idempotent upsert. The story content comes from the
// session cache when possible, otherwise from a fetch by id.
func (s *StoryService) SaveRecord(ctx context.Context, id string) error {
	if st := s.cachedStory(id); st != nil {
		return s.saved.CreateOrUpdate(ctx, st)
	}

	res := s.gw.FetchStory(ctx, id)
	if res.NetworkFailure {
		return fmt.Errorf("cannot save story %q: %w", id, common.ErrNetwork)
	}
	if res.Err || res.Story == nil {
		return fmt.Errorf("story %q: %s: %w", id, res.Message, common.ErrNotFound)
	}
	return s.saved.CreateOrUpdate(ctx, res.Story)
}

// SaveAllFetched pins the whole current fetched set into the saved table as
// one atomic batch.
func (s *StoryService) SaveAllFetched(ctx context.Context) (int, error) {
	batch := s.remoteStories(ctx, false)
	if len(batch) == 0 {
		return 0, nil
	}
	if err := s.saved.PutMany(ctx, batch); err != nil {
		return 0, err
	}
	return len(batch), nil
}

// DeleteRecord removes a local record. A pending key removes the upload
// intent entirely; a saved key only removes the local cache entry and never
// touches server-side data.
func (s *StoryService) DeleteRecord(ctx context.Context, key string, kind models.RecordKind) error {
	switch kind {
	case models.KindPending:
		tempID, err := parsePendingKey(key)
		if err != nil {
			return err
		}
		return s.queue.Delete(ctx, tempID)
	case models.KindSaved:
		return s.saved.Delete(ctx, key)
	default:
		return fmt.Errorf("%w: unknown record kind %q", common.ErrValidation, kind)
	}
}

// ClearLocalData empties both local tables. The caller must have confirmed
// the action with the user: this is irreversible.
func (s *StoryService) ClearLocalData(ctx context.Context) error {
	return s.wiper.ClearAll(ctx)
}

// SubmitNewStory validates the input, then either uploads directly (online)
// or queues a pending story (offline, or the upload failed with a
// network-class error). Queued submissions are reported as success-with-
// queued semantics, never as an error; only server-side rejections and
// storage failures surface.
func (s *StoryService) SubmitNewStory(ctx context.Context, in models.NewStoryInput) (models.SubmitOutcome, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}

	if in.ClientKey != "" {
		if _, err := s.queue.GetByClientKey(ctx, in.ClientKey); err == nil {
			s.log.Info(ctx, "duplicate submission ignored", "clientKey", in.ClientKey)
			return models.OutcomeQueued, nil
		} else if !errors.Is(err, common.ErrNotFound) {
			return "", err
		}
	}

	if s.engine.Online() {
		res := s.gw.CreateStory(ctx, gateway.NewStoryPayload{
			Description: in.Description,
			Photo:       in.Photo,
			Lat:         in.Lat,
			Lon:         in.Lon,
		})
		if !res.Err {
			s.Refresh()
			return models.OutcomeUploaded, nil
		}
		if !res.NetworkFailure {
			return "", fmt.Errorf("story rejected: %s", res.Message)
		}
		s.log.Warn(ctx, "upload failed, queueing story", "message", res.Message)
	}

	if err := s.queueStory(ctx, in); err != nil {
		return "", err
	}
	return models.OutcomeQueued, nil
}

func (s *StoryService) queueStory(ctx context.Context, in models.NewStoryInput) error {
	name := s.tokens.UserName()
	if name == "" {
		name = models.DefaultAuthorName
	}
	key := in.ClientKey
	if key == "" {
		key = uuid.NewString()
	}

	p := &models.PendingStory{
		Name:        name,
		Description: in.Description,
		Lat:         in.Lat,
		Lon:         in.Lon,
		Photo:       in.Photo,
		PhotoBase64: dataURI(in.Photo),
		CreatedAt:   s.now().UTC().Format(time.RFC3339),
		ClientKey:   key,
	}

	tempID, err := s.queue.Add(ctx, p)
	if err != nil {
		return err
	}
	s.log.Info(ctx, "story queued for sync", "tempId", tempID)
	return nil
}

// TriggerSync runs one manual drain of the pending queue. A drain already in
// flight reports zero counts instead of an error.
func (s *StoryService) TriggerSync(ctx context.Context) (models.SyncResult, error) {
	res, err := s.engine.TriggerSync(ctx)
	if errors.Is(err, common.ErrSyncInProgress) {
		return models.SyncResult{}, nil
	}
	return res, err
}

// PendingCount reports how many stories are queued for upload.
func (s *StoryService) PendingCount(ctx context.Context) (int, error) {
	return s.queue.Count(ctx)
}

func (s *StoryService) cachedStory(id string) *models.Story {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lastFetch {
		if s.lastFetch[i].ID == id {
			st := s.lastFetch[i]
			return &st
		}
	}
	return nil
}

// parsePendingKey accepts both a bare temp id ("7") and the display form
// ("pending-7").
func parsePendingKey(key string) (int64, error) {
	key = strings.TrimPrefix(key, "pending-")
	tempID, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid pending key %q", common.ErrValidation, key)
	}
	return tempID, nil
}

// dataURI encodes the photo once at queue time so rendering a pending story
// never re-encodes the binary payload.
func dataURI(photo []byte) string {
	mime := http.DetectContentType(photo)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(photo)
}
