package models

import "fmt"

// DisplayRecord is the union type the view aggregator produces for rendering.
// Exactly one entry exists per story: a record present both in the local
// saved table and in the latest remote fetch is collapsed to the local copy
// with both provenance flags set.
type DisplayRecord struct {
	// DisplayID is the remote id for confirmed stories and
	// "pending-<tempId>" for pending ones.
	DisplayID   string
	TempID      int64
	Name        string
	Description string
	Lat         *float64
	Lon         *float64
	PhotoURL    string
	PhotoBase64 string
	CreatedAt   string

	// Provenance flags.
	IsPending bool // exists only as a PendingStory
	IsSaved   bool // exists in the local saved table
	IsOnline  bool // present in the latest remote fetch
}

// PendingDisplayID formats the display id used for a pending record.
func PendingDisplayID(tempID int64) string {
	return fmt.Sprintf("pending-%d", tempID)
}
