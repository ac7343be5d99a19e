package photo

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/minio/minio-go/v7"
)

// MinIOStore adapts minio.Client to the blobStore interface, scoped to the
// single configured bucket.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

// NewMinIOStore constructs an adapter.
func NewMinIOStore(client *minio.Client, bucket string) *MinIOStore {
	return &MinIOStore{client: client, bucket: bucket}
}

// Put stores the object with non-overwriting semantics: an existing object
// at the key fails with ErrBlobExists. Generated keys should never collide,
// so the pre-check is a guard, not a coordination mechanism.
func (s *MinIOStore) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	exists, err := s.Stat(ctx, key)
	if err != nil {
		return err
	}
	if exists {
		return ErrBlobExists
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "max-age=3600",
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

// Remove deletes the object at key. Removing a missing key is success.
func (s *MinIOStore) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("remove object %q: %w", key, err)
	}
	return nil
}

// Stat reports whether an object exists at key.
func (s *MinIOStore) Stat(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("stat object %q: %w", key, err)
	}
	return true, nil
}

// List returns the objects under the given key prefix. Sorting and paging
// happen client-side; MinIO listings are key-ordered and unpaged.
func (s *MinIOStore) List(ctx context.Context, prefix string, opts ListOptions) ([]ObjectInfo, error) {
	var objects []ObjectInfo
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects with prefix %q: %w", prefix, obj.Err)
		}
		objects = append(objects, ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	return applyListOptions(objects, opts), nil
}

func applyListOptions(objects []ObjectInfo, opts ListOptions) []ObjectInfo {
	if opts.SortBy == "last_modified" {
		sort.Slice(objects, func(i, j int) bool {
			return objects[i].LastModified.Before(objects[j].LastModified)
		})
	}

	if opts.Offset > 0 {
		if opts.Offset >= len(objects) {
			return nil
		}
		objects = objects[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(objects) {
		objects = objects[:opts.Limit]
	}
	return objects
}
