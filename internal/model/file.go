package model

import "io"

// UploadStatus describes how far an upload made it through the pipeline.
type UploadStatus string

const (
	// UploadStatusFullySynced means the file is on local disk and in the
	// remote bucket.
	UploadStatusFullySynced UploadStatus = "fully_synced"
	// UploadStatusLocalOnly means the file is on local disk but the remote
	// put failed; the upload is still considered successful.
	UploadStatusLocalOnly UploadStatus = "local_only"
)

// UploadResult is the unified outcome of one upload. RemoteKey is empty
// unless the remote put succeeded.
type UploadResult struct {
	Status    UploadStatus
	Filename  string
	RemoteKey string
}

// UploadEvent announces a newly available file. Events are ephemeral and
// never persisted; a client that connects late must re-list the registry.
type UploadEvent struct {
	Filename string `json:"filename"`
}

// Broadcaster fans upload events out to currently connected subscribers.
// Delivery is best-effort, at-most-once, in publish order per subscriber.
type Broadcaster interface {
	Publish(event UploadEvent)
	Subscribe() (<-chan UploadEvent, func())
}

// LocalStore persists uploaded files on local disk and enumerates them on
// demand. It is the file registry: a filename is registered iff a fully
// written file exists under the store root.
type LocalStore interface {
	Save(filename string, r io.Reader) (path string, err error)
	List() ([]string, error)
	Open(filename string) (io.ReadCloser, error)
}
