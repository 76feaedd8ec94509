package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/aditwb/storysync/internal/client/auth"
)

func (a *App) status(ctx context.Context) {
	if a.engine.Online() {
		fmt.Fprintln(a.out, "Connectivity: online")
	} else {
		fmt.Fprintln(a.out, "Connectivity: offline")
	}

	switch {
	case !a.isLoggedIn():
		fmt.Fprintln(a.out, "Not logged in")
	case auth.TokenExpired(a.tokens.Token(), time.Now()):
		fmt.Fprintf(a.out, "Session for %s expired; log in again\n", a.tokens.UserName())
	default:
		fmt.Fprintf(a.out, "Logged in as: %s\n", a.tokens.UserName())
	}

	if n, err := a.svc.PendingCount(ctx); err == nil {
		fmt.Fprintf(a.out, "Queued for upload: %d\n", n)
	}
}
