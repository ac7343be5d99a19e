package photo

import (
	"errors"
	"fmt"
)

var (
	// ErrPhotoNotFound signals that no record matches the given id.
	ErrPhotoNotFound = errors.New("photo not found")
	// ErrMissingActor is returned when a mutating call carries no verified identity.
	ErrMissingActor = errors.New("actor identity required")
	// ErrEmptyFile is returned for uploads without content.
	ErrEmptyFile = errors.New("file must have positive size")
	// ErrFileTooLarge signals that the upload exceeds configured limits.
	ErrFileTooLarge = errors.New("file too large")
	// ErrEmptyPatch is returned when an update changes nothing.
	ErrEmptyPatch = errors.New("patch contains no mutable fields")
	// ErrBlobExists signals a storage-key collision at the blob store.
	ErrBlobExists = errors.New("object already exists at storage key")
	// ErrStorageKeyConflict signals a storage-key collision at the metadata store.
	ErrStorageKeyConflict = errors.New("storage key already in use")
)

// OrphanedBlobError reports an upload whose metadata insert failed and whose
// compensating blob deletion also failed. The blob at StorageKey survives
// with no referencing record and needs out-of-band cleanup.
type OrphanedBlobError struct {
	StorageKey string
	InsertErr  error
	CleanupErr error
}

func (e *OrphanedBlobError) Error() string {
	return fmt.Sprintf("orphaned blob at %q: insert failed (%v), cleanup failed (%v)",
		e.StorageKey, e.InsertErr, e.CleanupErr)
}

func (e *OrphanedBlobError) Unwrap() error {
	return e.InsertErr
}
