package storage

import "io"

// MediaStore is the narrow contract the API needs from image storage: save a
// blob under a key, check a key, delete a key. Row mutations never depend on
// these calls succeeding; callers treat delete failures as best-effort.
type MediaStore interface {
	Save(key string, body io.Reader) (string, error)
	Exists(key string) (bool, error)
	Delete(key string) error
}
