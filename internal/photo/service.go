package photo

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/adilbek/photogallery/internal/auth"
	"github.com/adilbek/photogallery/internal/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultMaxFileSize = 50 * 1024 * 1024

type metadataStore interface {
	Insert(ctx context.Context, p Photo) (Photo, error)
	Update(ctx context.Context, id uuid.UUID, patch UpdatePhoto) (Photo, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (Photo, error)
	List(ctx context.Context, visibleOnly bool) ([]Photo, error)
	AllStorageKeys(ctx context.Context) ([]string, error)
}

type blobStore interface {
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
	Stat(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string, opts ListOptions) ([]ObjectInfo, error)
}

// Service is the photo lifecycle manager. It owns the two-phase sequencing
// that keeps the blob store and the metadata table coherent.
type Service struct {
	repo        metadataStore
	blobs       blobStore
	urls        *URLResolver
	log         *zap.Logger
	maxFileSize int64

	// generateKey is swappable so tests can pin keys.
	generateKey func(fileName string) string
}

// NewService constructs a photo service.
func NewService(repo metadataStore, blobs blobStore, urls *URLResolver, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:        repo,
		blobs:       blobs,
		urls:        urls,
		log:         log,
		maxFileSize: defaultMaxFileSize,
		generateKey: GenerateStorageKey,
	}
}

// SetMaxFileSize overrides the default upload size limit. Zero disables it.
func (s *Service) SetMaxFileSize(limit int64) {
	s.maxFileSize = limit
}

// Upload carries one incoming file and its optional metadata.
type Upload struct {
	FileName string
	MimeType string
	Size     int64
	Content  io.Reader
	Meta     UploadMeta
}

// Upload stores the binary, extracts dimensions best-effort, and inserts
// the metadata record. A failed insert triggers a compensating blob delete;
// if that also fails the caller gets an OrphanedBlobError.
func (s *Service) Upload(ctx context.Context, up Upload, actor auth.Actor) (Photo, error) {
	if actor.ID == "" {
		return Photo{}, ErrMissingActor
	}
	if up.Content == nil || up.Size <= 0 {
		return Photo{}, ErrEmptyFile
	}
	if s.maxFileSize > 0 && up.Size > s.maxFileSize {
		return Photo{}, ErrFileTooLarge
	}

	key := s.generateKey(up.FileName)
	mimeType := up.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	probe := newProbeBuffer(dimensionProbeLimit)
	reader := io.TeeReader(up.Content, probe)

	if err := s.blobs.Put(ctx, key, reader, up.Size, mimeType); err != nil {
		return Photo{}, fmt.Errorf("store object %q: %w", key, err)
	}

	width, height := detectDimensions(probe.Bytes(), mimeType)

	record := Photo{
		FileName:    sanitizeFileName(up.FileName),
		StorageKey:  key,
		FileSize:    up.Size,
		MimeType:    mimeType,
		Width:       width,
		Height:      height,
		Title:       up.Meta.Title,
		Description: up.Meta.Description,
		Category:    up.Meta.Category,
		IsFeatured:  boolOrDefault(up.Meta.IsFeatured, false),
		IsVisible:   boolOrDefault(up.Meta.IsVisible, true),
		UploadedBy:  actor.ID,
	}

	stored, err := s.repo.Insert(ctx, record)
	if err != nil {
		if cleanupErr := s.blobs.Remove(ctx, key); cleanupErr != nil {
			metrics.ObserveBlobCleanupFailure()
			s.log.Error("orphaned blob after failed insert",
				zap.String("storage_key", key),
				zap.NamedError("insert_error", err),
				zap.NamedError("cleanup_error", cleanupErr),
			)
			return Photo{}, &OrphanedBlobError{StorageKey: key, InsertErr: err, CleanupErr: cleanupErr}
		}
		return Photo{}, fmt.Errorf("insert photo record for %q: %w", key, err)
	}

	metrics.ObservePhotoUploaded()
	return stored, nil
}

// Update patches the mutable metadata fields. The blob is never touched.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch UpdatePhoto, actor auth.Actor) (Photo, error) {
	if actor.ID == "" {
		return Photo{}, ErrMissingActor
	}
	if patch.IsEmpty() {
		return Photo{}, ErrEmptyPatch
	}
	return s.repo.Update(ctx, id, patch)
}

// Delete removes the blob and then the record. A failed blob delete is
// logged and does not abort: a retry can always re-attempt the idempotent
// blob delete, while a record that cannot be removed would be stuck forever.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor auth.Actor) error {
	if actor.ID == "" {
		return ErrMissingActor
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.blobs.Remove(ctx, record.StorageKey); err != nil {
		metrics.ObserveBlobCleanupFailure()
		s.log.Warn("blob delete failed, removing record anyway",
			zap.String("photo_id", id.String()),
			zap.String("storage_key", record.StorageKey),
			zap.Error(err),
		)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.ObservePhotoDeleted()
	return nil
}

// List returns photos newest first, each with its resolved public URL.
// With visibleOnly set, hidden photos are excluded.
func (s *Service) List(ctx context.Context, visibleOnly bool) ([]PhotoWithURL, error) {
	records, err := s.repo.List(ctx, visibleOnly)
	if err != nil {
		return nil, err
	}

	result := make([]PhotoWithURL, 0, len(records))
	for _, record := range records {
		result = append(result, s.withURL(record))
	}
	return result, nil
}

// GetByID returns one photo with its resolved public URL.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (PhotoWithURL, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return PhotoWithURL{}, err
	}
	return s.withURL(record), nil
}

// AuditOrphans reports blobs that no metadata record references. It is
// read-only; remediation of orphans stays an operator decision.
func (s *Service) AuditOrphans(ctx context.Context) ([]ObjectInfo, error) {
	keys, err := s.repo.AllStorageKeys(ctx)
	if err != nil {
		return nil, err
	}
	referenced := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		referenced[key] = struct{}{}
	}

	objects, err := s.blobs.List(ctx, "", ListOptions{})
	if err != nil {
		return nil, err
	}

	orphans := make([]ObjectInfo, 0)
	for _, obj := range objects {
		if _, ok := referenced[obj.Key]; !ok {
			orphans = append(orphans, obj)
		}
	}
	return orphans, nil
}

func (s *Service) withURL(record Photo) PhotoWithURL {
	return PhotoWithURL{
		Photo: record,
		URL:   s.urls.Resolve(record.StorageKey),
	}
}

func sanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "upload"
	}
	return name
}

func boolOrDefault(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
