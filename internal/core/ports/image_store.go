package ports

import "io"

// ImageUpload is the transport-agnostic handle for an uploaded image.
// A zero value (empty Filename) means no image was sent.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// ImageStore persists uploaded post images and returns the store-relative
// path under which the image is later served.
type ImageStore interface {
	Save(upload ImageUpload) (string, error)
	Remove(path string) error
}
