// Package sync owns the background synchronization of pending stories:
// connectivity transitions, the periodic retry timer and the drain loop that
// pushes queued uploads through the remote gateway one record at a time.
package sync

import (
	"context"
	gosync "sync"
	"time"

	"github.com/aditwb/storysync/internal/client/gateway"
	"github.com/aditwb/storysync/internal/client/models"
	"github.com/aditwb/storysync/internal/client/repositories/pending"
	"github.com/aditwb/storysync/internal/common"
	"github.com/aditwb/storysync/internal/logging"
)

// DefaultInterval is how often a drain is re-attempted while online.
const DefaultInterval = 30 * time.Second

// Engine drives the pending-story queue. It is constructed once by the
// composition root and passed by reference to whatever needs to trigger or
// observe synchronization.
type Engine struct {
	pendingRepo pending.Repository
	gw          gateway.Gateway
	log         logging.Logger
	hub         *Hub
	interval    time.Duration

	mu      gosync.Mutex
	syncing bool
	online  bool
	stop    chan struct{}
}

// NewEngine returns an engine that starts in the online state; the
// connectivity monitor corrects it on its first probe. interval <= 0 falls
// back to DefaultInterval.
func NewEngine(pendingRepo pending.Repository, gw gateway.Gateway, log logging.Logger, interval time.Duration) *Engine {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Engine{
		pendingRepo: pendingRepo,
		gw:          gw,
		log:         log.With("component", "sync"),
		hub:         NewHub(),
		interval:    interval,
		online:      true,
	}
}

// Subscribe registers a listener for completed drains with at least one
// successful upload.
func (e *Engine) Subscribe(buffer int) (int, <-chan models.SyncResult) {
	return e.hub.Subscribe(buffer)
}

// Unsubscribe removes a listener.
func (e *Engine) Unsubscribe(id int) {
	e.hub.Unsubscribe(id)
}

// Online reports the last known connectivity state.
func (e *Engine) Online() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.online
}

// SetOnline records a connectivity transition. Regaining connectivity kicks
// an immediate drain attempt and restarts the periodic timer; losing it
// cancels the timer so no attempts are wasted while offline.
func (e *Engine) SetOnline(ctx context.Context, online bool) {
	e.mu.Lock()
	changed := e.online != online
	e.online = online
	e.mu.Unlock()

	if !changed {
		return
	}

	if online {
		e.log.Info(ctx, "connectivity regained")
		go e.CheckAndSync(ctx)
		e.StartPeriodic(ctx)
	} else {
		e.log.Info(ctx, "connectivity lost")
		e.StopPeriodic()
	}
}

// StartPeriodic starts the retry timer. Starting an already-running timer is
// a no-op; there is never more than one.
func (e *Engine) StartPeriodic(ctx context.Context) {
	e.mu.Lock()
	if e.stop != nil {
		e.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	e.stop = stop
	e.mu.Unlock()

	go func() {
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				e.CheckAndSync(ctx)
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// StopPeriodic cancels the retry timer. Stopping a stopped timer is a no-op.
func (e *Engine) StopPeriodic() {
	e.mu.Lock()
	stop := e.stop
	e.stop = nil
	e.mu.Unlock()

	if stop != nil {
		close(stop)
	}
}

// CheckAndSync drains the queue if there is anything queued and we are
// online. Errors are logged, not returned: this is the fire-and-forget path
// used by timers and connectivity transitions.
func (e *Engine) CheckAndSync(ctx context.Context) {
	n, err := e.pendingRepo.Count(ctx)
	if err != nil {
		e.log.Error(ctx, "failed to check pending queue", "err", err)
		return
	}
	if n == 0 || !e.Online() {
		return
	}
	if _, err := e.TriggerSync(ctx); err != nil {
		e.log.Debug(ctx, "sync skipped", "err", err)
	}
}

// TriggerSync drains the pending queue once: every queued story is uploaded
// in arrival order, one in-flight request at a time. A failing upload leaves
// its record queued and the loop continues with the next one. Re-entrant
// triggers return common.ErrSyncInProgress and do nothing.
func (e *Engine) TriggerSync(ctx context.Context) (models.SyncResult, error) {
	e.mu.Lock()
	if e.syncing {
		e.mu.Unlock()
		return models.SyncResult{}, common.ErrSyncInProgress
	}
	online := e.online
	e.syncing = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.syncing = false
		e.mu.Unlock()
	}()

	if !online {
		e.log.Debug(ctx, "sync attempt while offline, nothing uploaded")
		return models.SyncResult{}, nil
	}

	queued, err := e.pendingRepo.GetAll(ctx)
	if err != nil {
		return models.SyncResult{}, err
	}
	if len(queued) == 0 {
		return models.SyncResult{}, nil
	}

	result := models.SyncResult{Total: len(queued)}
	e.log.Info(ctx, "sync started", "queued", len(queued))

	for i := range queued {
		p := &queued[i]
		res := e.gw.CreateStory(ctx, gateway.NewStoryPayload{
			Description: p.Description,
			Photo:       p.Photo,
			Lat:         p.Lat,
			Lon:         p.Lon,
		})
		if res.Err {
			result.Failed++
			e.log.Warn(ctx, "pending story upload failed", "tempId", p.TempID, "message", res.Message)
			continue
		}

		// The user may have discarded the record while the upload was in
		// flight; deleting an absent key is a no-op.
		if err := e.pendingRepo.Delete(ctx, p.TempID); err != nil {
			e.log.Error(ctx, "failed to delete synced story", "tempId", p.TempID, "err", err)
		}
		result.Succeeded++
	}

	e.log.Info(ctx, "sync finished",
		"succeeded", result.Succeeded, "failed", result.Failed, "total", result.Total)

	if result.Succeeded > 0 {
		e.hub.Publish(result)
	}
	return result, nil
}
