// Package display builds the merged, de-duplicated view over the three
// record sources: pending uploads, locally saved stories and the latest
// remote fetch. All functions are pure; the service layer feeds them and
// owns the caches.
package display

import (
	"sort"
	"strings"
	"time"

	"github.com/aditwb/storysync/internal/client/models"
)

// Merge produces one display record per story. A story present both in the
// saved table and in the remote fetch collapses to a single entry sourced
// from the local copy, with IsSaved and IsOnline both set. Pending records
// come first, then saved ones, then remote-only ones, each group keeping its
// input order so later stable sorting cannot shuffle equals.
func Merge(pendingStories []models.PendingStory, saved []models.Story, remote []models.Story) []models.DisplayRecord {
	records := make([]models.DisplayRecord, 0, len(pendingStories)+len(saved)+len(remote))

	remoteIDs := make(map[string]struct{}, len(remote))
	for i := range remote {
		remoteIDs[remote[i].ID] = struct{}{}
	}

	for i := range pendingStories {
		p := &pendingStories[i]
		name := p.Name
		if name == "" {
			name = models.DefaultAuthorName
		}
		records = append(records, models.DisplayRecord{
			DisplayID:   models.PendingDisplayID(p.TempID),
			TempID:      p.TempID,
			Name:        name,
			Description: p.Description,
			Lat:         p.Lat,
			Lon:         p.Lon,
			PhotoBase64: p.PhotoBase64,
			CreatedAt:   p.CreatedAt,
			IsPending:   true,
		})
	}

	savedIDs := make(map[string]struct{}, len(saved))
	for i := range saved {
		s := &saved[i]
		savedIDs[s.ID] = struct{}{}
		_, online := remoteIDs[s.ID]
		records = append(records, fromStory(s, true, online))
	}

	for i := range remote {
		s := &remote[i]
		if _, dup := savedIDs[s.ID]; dup {
			continue // local copy already emitted
		}
		records = append(records, fromStory(s, false, true))
	}

	return records
}

func fromStory(s *models.Story, isSaved, isOnline bool) models.DisplayRecord {
	return models.DisplayRecord{
		DisplayID:   s.ID,
		Name:        s.Name,
		Description: s.Description,
		Lat:         s.Lat,
		Lon:         s.Lon,
		PhotoURL:    s.PhotoURL,
		CreatedAt:   s.CreatedAt,
		IsSaved:     isSaved,
		IsOnline:    isOnline,
	}
}

// Filter keeps the records matching exactly one provenance class.
func Filter(records []models.DisplayRecord, f models.Filter) []models.DisplayRecord {
	if f == models.FilterAll || f == "" {
		return records
	}
	out := make([]models.DisplayRecord, 0, len(records))
	for _, r := range records {
		switch f {
		case models.FilterPending:
			if r.IsPending {
				out = append(out, r)
			}
		case models.FilterSaved:
			if r.IsSaved && !r.IsPending {
				out = append(out, r)
			}
		case models.FilterOnline:
			if !r.IsPending && !r.IsSaved {
				out = append(out, r)
			}
		}
	}
	return out
}

// Search keeps records whose name or description contains the query,
// case-insensitively. An empty query keeps everything.
func Search(records []models.DisplayRecord, query string) []models.DisplayRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}
	out := make([]models.DisplayRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), q) ||
			strings.Contains(strings.ToLower(r.Description), q) {
			out = append(out, r)
		}
	}
	return out
}

// Sort orders records by the given key and direction. The sort is stable:
// records with equal keys keep their input order.
func Sort(records []models.DisplayRecord, by models.SortBy, order models.Order) {
	desc := order == models.OrderDesc
	sort.SliceStable(records, func(i, j int) bool {
		var c int
		switch by {
		case models.SortByName:
			c = strings.Compare(records[i].Name, records[j].Name)
		default:
			c = compareCreatedAt(records[i].CreatedAt, records[j].CreatedAt)
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}

// compareCreatedAt compares ISO-8601 timestamps. Records with unparseable
// timestamps fall back to lexicographic comparison, which matches
// chronological order for well-formed values anyway.
func compareCreatedAt(a, b string) int {
	ta, errA := time.Parse(time.RFC3339, a)
	tb, errB := time.Parse(time.RFC3339, b)
	if errA == nil && errB == nil {
		switch {
		case ta.Before(tb):
			return -1
		case ta.After(tb):
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// List applies filter, then search, then sort, in that order.
func List(records []models.DisplayRecord, opts models.ListOptions) []models.DisplayRecord {
	opts = opts.Normalize()
	out := Filter(records, opts.Filter)
	out = Search(out, opts.Search)
	Sort(out, opts.SortBy, opts.Order)
	return out
}
