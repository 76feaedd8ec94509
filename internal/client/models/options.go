package models

// Filter selects which provenance class of records to show.
// Exactly one filter is active at a time.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterOnline  Filter = "online"  // neither pending nor locally saved
	FilterSaved   Filter = "saved"   // locally saved, not pending
	FilterPending Filter = "pending" // pending only
)

// SortBy names the sort key for display lists.
type SortBy string

const (
	SortByCreatedAt SortBy = "createdAt"
	SortByName      SortBy = "name"
)

// Order is the sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ListOptions carries the ephemeral query parameters for a display list.
// The zero value is normalized to filter=all, sort by createdAt descending.
type ListOptions struct {
	Filter       Filter
	SortBy       SortBy
	Order        Order
	Search       string
	ForceRefresh bool
}

// Normalize fills unset fields with defaults.
func (o ListOptions) Normalize() ListOptions {
	if o.Filter == "" {
		o.Filter = FilterAll
	}
	if o.SortBy == "" {
		o.SortBy = SortByCreatedAt
	}
	if o.Order == "" {
		o.Order = OrderDesc
	}
	return o
}

// RecordKind distinguishes the two locally deletable record classes.
type RecordKind string

const (
	KindSaved   RecordKind = "saved"
	KindPending RecordKind = "pending"
)

// SyncResult summarizes one drain of the pending queue.
type SyncResult struct {
	Succeeded int
	Failed    int
	Total     int
}

// SubmitOutcome tells the caller how a submission was resolved.
type SubmitOutcome string

const (
	// OutcomeUploaded means the story was accepted by the remote service.
	OutcomeUploaded SubmitOutcome = "uploaded"
	// OutcomeQueued means the story was stored locally and will be synced
	// when connectivity allows.
	OutcomeQueued SubmitOutcome = "queued"
)
