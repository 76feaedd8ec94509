package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/aditwb/storysync/internal/client/models"
)

// delete removes a local record. The kind is inferred from the key: a
// "pending-" prefix addresses the upload queue, anything else the saved
// table.
func (a *App) delete(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: delete <story id | pending-N>")
		return
	}

	key := args[0]
	kind := models.KindSaved
	if strings.HasPrefix(key, "pending-") {
		kind = models.KindPending
	}

	if err := a.svc.DeleteRecord(ctx, key, kind); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintln(a.out, "Deleted.")
}
