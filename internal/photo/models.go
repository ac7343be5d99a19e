package photo

import (
	"time"

	"github.com/google/uuid"
)

// Photo is the persisted metadata record for one stored image.
type Photo struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	StorageKey  string    `json:"storage_key"`
	FileSize    int64     `json:"file_size"`
	MimeType    string    `json:"mime_type"`
	Width       *int      `json:"width,omitempty"`
	Height      *int      `json:"height,omitempty"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	IsFeatured  bool      `json:"is_featured"`
	IsVisible   bool      `json:"is_visible"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PhotoWithURL is a read-time view of a Photo enriched with its public URL.
// The URL is never persisted; it is derived from current configuration on
// every read.
type PhotoWithURL struct {
	Photo
	URL string `json:"url"`
}

// UploadMeta carries the optional display metadata accepted at upload time.
type UploadMeta struct {
	Title       *string
	Description *string
	Category    *string
	IsFeatured  *bool
	IsVisible   *bool
}

// UpdatePhoto is a partial update of the mutable fields. Identity, storage
// addressing and audit fields deliberately have no representation here, so
// a patch cannot touch them.
type UpdatePhoto struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	IsFeatured  *bool   `json:"is_featured"`
	IsVisible   *bool   `json:"is_visible"`
}

// IsEmpty reports whether the patch changes nothing.
func (p UpdatePhoto) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil &&
		p.IsFeatured == nil && p.IsVisible == nil
}

// ObjectInfo describes one blob in the object store.
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// ListOptions narrows a blob listing. Zero values mean no paging and the
// default key ordering.
type ListOptions struct {
	Limit  int
	Offset int
	SortBy string // "key" (default) or "last_modified"
}
