package sync

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	gosync "sync"
	"testing"
	"time"

	"github.com/aditwb/storysync/internal/client/gateway"
	"github.com/aditwb/storysync/internal/client/models"
	"github.com/aditwb/storysync/internal/client/repositories/pending"
	"github.com/aditwb/storysync/internal/common"
	"github.com/aditwb/storysync/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupPendingRepo(t *testing.T) pending.Repository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE pending_stories (
  temp_id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  lat REAL,
  lon REAL,
  photo BLOB NOT NULL,
  photo_base64 TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL DEFAULT '',
  synced INTEGER NOT NULL DEFAULT 0,
  client_key TEXT NOT NULL DEFAULT ''
);
`)
	require.NoError(t, err)

	return pending.NewSQLiteRepository(db)
}

type fakeGateway struct {
	gateway.Gateway

	mu      gosync.Mutex
	created []gateway.NewStoryPayload

	// failOn makes CreateStory reject matching payloads.
	failOn func(p gateway.NewStoryPayload) bool
	// block, when non-nil, makes CreateStory wait until the channel closes.
	block chan struct{}
	// notify, when non-nil, receives one signal per CreateStory call.
	notify chan struct{}

	pingErr error
}

func (f *fakeGateway) CreateStory(ctx context.Context, p gateway.NewStoryPayload) gateway.CreateResult {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	f.created = append(f.created, p)
	f.mu.Unlock()
	if f.notify != nil {
		f.notify <- struct{}{}
	}
	if f.failOn != nil && f.failOn(p) {
		return gateway.CreateResult{Err: true, NetworkFailure: true, Message: "network error"}
	}
	return gateway.CreateResult{Message: "ok", Story: &models.Story{ID: "remote-id"}}
}

func (f *fakeGateway) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeGateway) createdCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func queue(t *testing.T, repo pending.Repository, descriptions ...string) {
	t.Helper()
	for _, d := range descriptions {
		_, err := repo.Add(context.Background(), &models.PendingStory{
			Description: d,
			Photo:       []byte{1, 2, 3},
			CreatedAt:   "2024-01-01T00:00:00Z",
		})
		require.NoError(t, err)
	}
}

func TestTriggerSync_DrainsQueueInOrder(t *testing.T) {
	repo := setupPendingRepo(t)
	gw := &fakeGateway{}
	e := NewEngine(repo, gw, testLogger(), time.Minute)

	queue(t, repo, "first", "second", "third")

	res, err := e.TriggerSync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SyncResult{Succeeded: 3, Failed: 0, Total: 3}, res)

	require.Len(t, gw.created, 3)
	assert.Equal(t, "first", gw.created[0].Description)
	assert.Equal(t, "second", gw.created[1].Description)
	assert.Equal(t, "third", gw.created[2].Description)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTriggerSync_PartialFailureLeavesOnlyFailedRecord(t *testing.T) {
	repo := setupPendingRepo(t)
	gw := &fakeGateway{
		failOn: func(p gateway.NewStoryPayload) bool { return p.Description == "second" },
	}
	e := NewEngine(repo, gw, testLogger(), time.Minute)

	queue(t, repo, "first", "second", "third")

	res, err := e.TriggerSync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SyncResult{Succeeded: 2, Failed: 1, Total: 3}, res)

	left, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, left, 1, "one failing upload must not block its siblings")
	assert.Equal(t, "second", left[0].Description)
}

func TestTriggerSync_EmptyQueueIsSkipped(t *testing.T) {
	repo := setupPendingRepo(t)
	gw := &fakeGateway{}
	e := NewEngine(repo, gw, testLogger(), time.Minute)

	res, err := e.TriggerSync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SyncResult{}, res)
	assert.Equal(t, 0, gw.createdCount())
}

func TestTriggerSync_ReentrantTriggerIsNoOp(t *testing.T) {
	repo := setupPendingRepo(t)
	gw := &fakeGateway{block: make(chan struct{})}
	e := NewEngine(repo, gw, testLogger(), time.Minute)

	queue(t, repo, "slow upload")

	done := make(chan models.SyncResult, 1)
	go func() {
		res, _ := e.TriggerSync(context.Background())
		done <- res
	}()

	// wait until the first drain is inside the gateway call
	require.Eventually(t, func() bool {
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.syncing
	}, time.Second, 5*time.Millisecond)

	_, err := e.TriggerSync(context.Background())
	require.ErrorIs(t, err, common.ErrSyncInProgress)

	close(gw.block)
	res := <-done
	assert.Equal(t, 1, res.Succeeded)
}

func TestTriggerSync_OfflineUploadsNothing(t *testing.T) {
	repo := setupPendingRepo(t)
	gw := &fakeGateway{}
	e := NewEngine(repo, gw, testLogger(), time.Minute)

	queue(t, repo, "queued while offline")
	e.SetOnline(context.Background(), false)

	res, err := e.TriggerSync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SyncResult{}, res)
	assert.Equal(t, 0, gw.createdCount())

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTriggerSync_PublishesEventOnSuccess(t *testing.T) {
	repo := setupPendingRepo(t)
	gw := &fakeGateway{}
	e := NewEngine(repo, gw, testLogger(), time.Minute)

	_, events := e.Subscribe(1)
	queue(t, repo, "to publish")

	_, err := e.TriggerSync(context.Background())
	require.NoError(t, err)

	select {
	case res := <-events:
		assert.Equal(t, models.SyncResult{Succeeded: 1, Failed: 0, Total: 1}, res)
	case <-time.After(time.Second):
		t.Fatal("expected a sync event")
	}
}

func TestTriggerSync_NoEventWhenNothingSucceeded(t *testing.T) {
	repo := setupPendingRepo(t)
	gw := &fakeGateway{failOn: func(gateway.NewStoryPayload) bool { return true }}
	e := NewEngine(repo, gw, testLogger(), time.Minute)

	_, events := e.Subscribe(1)
	queue(t, repo, "doomed")

	_, err := e.TriggerSync(context.Background())
	require.NoError(t, err)

	select {
	case res := <-events:
		t.Fatalf("expected no event, got %+v", res)
	default:
	}
}

func TestPeriodicTimer_IdempotentStartStop(t *testing.T) {
	repo := setupPendingRepo(t)
	gw := &fakeGateway{}
	e := NewEngine(repo, gw, testLogger(), time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e.StartPeriodic(ctx)
	e.StartPeriodic(ctx) // second start must not spawn a second timer

	e.mu.Lock()
	stop := e.stop
	e.mu.Unlock()
	require.NotNil(t, stop)

	e.StopPeriodic()
	e.StopPeriodic() // stopping a stopped timer is a no-op

	e.mu.Lock()
	assert.Nil(t, e.stop)
	e.mu.Unlock()
}

func TestSetOnline_TransitionsDriveSyncAndTimer(t *testing.T) {
	repo := setupPendingRepo(t)
	gw := &fakeGateway{notify: make(chan struct{}, 1)}
	e := NewEngine(repo, gw, testLogger(), time.Minute)

	queue(t, repo, "waiting for connectivity")

	ctx := context.Background()
	e.SetOnline(ctx, false)
	assert.False(t, e.Online())

	e.SetOnline(ctx, true)
	select {
	case <-gw.notify:
	case <-time.After(time.Second):
		t.Fatal("regaining connectivity should trigger an immediate drain")
	}

	// the transition also started the periodic timer
	e.mu.Lock()
	assert.NotNil(t, e.stop)
	e.mu.Unlock()

	e.SetOnline(ctx, false)
	e.mu.Lock()
	assert.Nil(t, e.stop, "going offline cancels the timer")
	e.mu.Unlock()
}

func TestMonitor_ReportsTransitions(t *testing.T) {
	repo := setupPendingRepo(t)
	gw := &fakeGateway{pingErr: errors.New("unreachable")}
	e := NewEngine(repo, gw, testLogger(), time.Minute)
	m := NewMonitor(gw, e, testLogger(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	require.Eventually(t, func() bool { return !e.Online() }, 5*time.Second, 10*time.Millisecond)

	gw.mu.Lock()
	gw.pingErr = nil
	gw.mu.Unlock()

	require.Eventually(t, func() bool { return e.Online() }, 5*time.Second, 10*time.Millisecond)
}
