package interfaces

import "context"

// StoredUpload identifies a file kept by the upload store. PublicID is what
// Destroy needs later; URL is what a presentation layer can serve directly.
type StoredUpload struct {
	PublicID string
	URL      string
}

type Uploader interface {
	UploadBytes(ctx context.Context, folder string, filename string, b []byte) (*StoredUpload, error)
	Destroy(ctx context.Context, publicID string) error
}
