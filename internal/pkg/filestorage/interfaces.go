package filestorage

import (
	"mime/multipart"
)

// PhotoStorage defines the interface for photo storage operations. The
// production implementation writes to local disk; the original deployment
// target for student photos is any object store with the same two verbs.
type PhotoStorage interface {
	// SaveFileWithPath stores a file under a subdirectory and returns the
	// accessible URL for it.
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)

	// DeleteFile removes a previously stored file given its URL or path.
	DeleteFile(filePath string) error
}
