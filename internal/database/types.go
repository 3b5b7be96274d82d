package database

import (
	"strings"
	"time"
)

// FaceRecord represents a registered face stored in the database.
// ImagePath uniquely identifies the record; upserting an existing path
// replaces the blob URL and embedding in place.
type FaceRecord struct {
	ImagePath string
	BlobURL   string
	Embedding []float32
	CreatedAt time.Time
}

// FolderPattern returns the substring used to scope records to a folder.
// Folder membership is derived from the blob URL, not stored explicitly,
// so a folder name that prefixes another folder's name will over-match.
// That is long-standing behavior callers depend on; do not tighten it here.
func FolderPattern(folder string) string {
	return "/" + strings.Trim(folder, "/") + "/"
}

// BlobKey derives the object-storage key from a blob URL: everything after
// the storage host segment. The key doubles as the handle passed to the
// blob store's bulk delete. Returns empty string if the URL has no path.
func BlobKey(blobURL string) string {
	rest := blobURL
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}
	if i := strings.Index(rest, "/"); i >= 0 {
		return rest[i+1:]
	}
	return ""
}
