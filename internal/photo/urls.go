package photo

import (
	"fmt"
	"net/url"
	"strings"
)

// URLResolver derives the public URL for a stored object from the configured
// base endpoint and bucket. Resolution itself is pure; misconfiguration is
// caught at construction time so callers can treat it as fatal at startup.
type URLResolver struct {
	base string
}

// NewURLResolver validates the public base URL and bucket name.
func NewURLResolver(publicBase, bucket string) (*URLResolver, error) {
	publicBase = strings.TrimSpace(publicBase)
	bucket = strings.TrimSpace(bucket)
	if publicBase == "" {
		return nil, fmt.Errorf("public base URL required")
	}
	if bucket == "" {
		return nil, fmt.Errorf("bucket name required")
	}

	parsed, err := url.Parse(publicBase)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid public base URL %q", publicBase)
	}

	return &URLResolver{
		base: strings.TrimRight(publicBase, "/") + "/" + bucket,
	}, nil
}

// Resolve returns the browser-accessible URL for the given storage key.
func (r *URLResolver) Resolve(storageKey string) string {
	return r.base + "/" + storageKey
}
