package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/aditwb/storysync/internal/client/models"
)

// parseListArgs classifies the free-form arguments of the list command.
// Known tokens select filter, sort key, order or a forced refresh; anything
// else becomes part of the search keyword.
func parseListArgs(args []string) models.ListOptions {
	var opts models.ListOptions
	var search []string

	for _, arg := range args {
		switch strings.ToLower(arg) {
		case "all", "online", "saved", "pending":
			opts.Filter = models.Filter(strings.ToLower(arg))
		case "name":
			opts.SortBy = models.SortByName
		case "created", "createdat":
			opts.SortBy = models.SortByCreatedAt
		case "asc", "desc":
			opts.Order = models.Order(strings.ToLower(arg))
		case "refresh":
			opts.ForceRefresh = true
		default:
			search = append(search, arg)
		}
	}

	opts.Search = strings.Join(search, " ")
	return opts.Normalize()
}

func (a *App) list(ctx context.Context, args []string) {
	records, err := a.svc.ListDisplayRecords(ctx, parseListArgs(args))
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	if len(records) == 0 {
		fmt.Fprintln(a.out, "No stories to show.")
		return
	}

	for _, r := range records {
		fmt.Fprintln(a.out, formatRecord(r))
	}
}

func formatRecord(r models.DisplayRecord) string {
	tags := make([]string, 0, 2)
	if r.IsPending {
		tags = append(tags, "pending")
	}
	if r.IsSaved {
		tags = append(tags, "saved")
	}
	if r.IsOnline {
		tags = append(tags, "online")
	}

	desc := r.Description
	if len(desc) > 60 {
		desc = desc[:57] + "..."
	}
	return fmt.Sprintf("%-14s  %-20s  %-20s  [%s]  %s",
		r.DisplayID, r.Name, r.CreatedAt, strings.Join(tags, ","), desc)
}
