package models

// PendingStory is a locally authored story that has not yet been accepted by
// the remote service. TempId is assigned by the local store (auto-increment,
// never reused). A successful sync deletes the record instead of flipping
// Synced, so Synced stays false for the record's whole lifetime.
//
// The photo payload is stored twice on purpose: Photo keeps the raw bytes
// needed to retry the upload, PhotoBase64 keeps a data-URI duplicate so the
// record can be rendered without re-encoding the binary every time. The
// extra space buys render latency.
type PendingStory struct {
	TempID      int64
	Name        string
	Description string
	Lat         *float64
	Lon         *float64
	Photo       []byte
	PhotoBase64 string
	CreatedAt   string
	Synced      bool

	// ClientKey is a client-generated idempotency key stamped at submission
	// time, so a double-submitted story can be detected before queueing.
	ClientKey string
}

// DefaultAuthorName is used when the acting user's display name is unknown.
const DefaultAuthorName = "Anonymous"
