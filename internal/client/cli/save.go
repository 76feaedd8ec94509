package cli

import (
	"context"
	"fmt"
)

func (a *App) save(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: save <story id>")
		return
	}
	if err := a.svc.SaveRecord(ctx, args[0]); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintln(a.out, "Story saved locally.")
}

func (a *App) saveAll(ctx context.Context) {
	n, err := a.svc.SaveAllFetched(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	if n == 0 {
		fmt.Fprintln(a.out, "Nothing fetched yet; run 'list' first.")
		return
	}
	fmt.Fprintf(a.out, "%d stories saved locally.\n", n)
}
