package cli

import (
	"context"
	"fmt"
)

func (a *App) syncNow(ctx context.Context) {
	res, err := a.svc.TriggerSync(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	if res.Total == 0 {
		fmt.Fprintln(a.out, "Nothing to sync.")
		return
	}
	fmt.Fprintf(a.out, "Synced %d of %d queued stories (%d failed).\n",
		res.Succeeded, res.Total, res.Failed)
}

func (a *App) pendingCount(ctx context.Context) {
	n, err := a.svc.PendingCount(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintf(a.out, "%d stories queued for upload.\n", n)
}
