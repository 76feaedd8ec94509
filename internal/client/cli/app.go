package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aditwb/storysync/internal/client/auth"
	"github.com/aditwb/storysync/internal/client/config"
	"github.com/aditwb/storysync/internal/client/gateway"
	"github.com/aditwb/storysync/internal/client/services"
	"github.com/aditwb/storysync/internal/client/storage"
	syncengine "github.com/aditwb/storysync/internal/client/sync"
	"github.com/aditwb/storysync/internal/filex"
	"github.com/aditwb/storysync/internal/logging"
)

// App is the composition root of the story client. It owns the wiring of
// storage, gateway, sync engine and service, and drives the REPL.
type App struct {
	config *config.Config
	svc    *services.StoryService
	engine *syncengine.Engine
	mon    *syncengine.Monitor
	gw     *gateway.HTTPGateway
	tokens auth.TokenStore
	repos  *storage.Repositories
	log    logging.Logger

	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds the full client from configuration. The local database is
// opened (and created if missing) immediately so storage problems surface
// before the REPL starts.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if err := filex.EnsureParentDir(c.DatabaseDSN); err != nil {
		return nil, err
	}

	repos, err := storage.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}

	tokens := auth.NewMemoryTokenStore()
	gw := gateway.NewHTTPGateway(c.APIBaseURL, tokens, log)
	engine := syncengine.NewEngine(repos.Pending, gw, log, c.SyncInterval)
	mon := syncengine.NewMonitor(gw, engine, log, c.OnlineCheckInterval)
	svc := services.NewStoryService(repos.Stories, repos.Pending, repos, gw, engine, tokens, log, c.FetchFreshness)

	return &App{
		config: c,
		svc:    svc,
		engine: engine,
		mon:    mon,
		gw:     gw,
		tokens: tokens,
		repos:  repos,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run starts the connectivity monitor and the sync-event listener, then
// blocks in the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.repos.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.mon.Run(ctx)
	go a.watchSyncEvents(ctx)

	a.Root(ctx)
}

// watchSyncEvents invalidates the fetch cache after every drain that
// uploaded something, so the next list shows the stories under their
// confirmed identity instead of the stale pending records.
func (a *App) watchSyncEvents(ctx context.Context) {
	id, events := a.engine.Subscribe(1)
	defer a.engine.Unsubscribe(id)

	for {
		select {
		case res, ok := <-events:
			if !ok {
				return
			}
			a.svc.Refresh()
			fmt.Fprintf(a.out, "\n%d queued stories synced\n", res.Succeeded)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.tokens.Token() != ""
}
