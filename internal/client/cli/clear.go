package cli

import (
	"context"
	"fmt"
)

// clear wipes both local tables after an explicit confirmation. Queued
// stories that were never uploaded are lost too, so the prompt spells that
// out.
func (a *App) clear(ctx context.Context) {
	ok, err := Confirm(a.reader,
		"Delete ALL local data, including stories queued for upload?", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return
	}

	if err := a.svc.ClearLocalData(ctx); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	a.svc.Refresh()
	fmt.Fprintln(a.out, "Local data cleared.")
}
