// Package storage is the blob-store boundary for evidence files and the
// advertisement image. Blobs are addressed by a relative path such as
// "evidence/<report-id>/<file-id>.png".
package storage

import "io"

type BlobStore interface {
	Upload(path string, r io.Reader) error
	// Remove deletes the given blobs. Missing blobs are not an error.
	Remove(paths []string) error
	// PublicURL returns the URL a browser can fetch the blob from.
	PublicURL(path string) string
	// List returns all stored blob paths under the given prefix.
	List(prefix string) ([]string, error)
}
