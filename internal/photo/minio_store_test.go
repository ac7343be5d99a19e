package photo

import (
	"testing"
	"time"
)

func TestApplyListOptionsPagesAndSorts(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	objects := []ObjectInfo{
		{Key: "a.jpg", LastModified: base.Add(3 * time.Hour)},
		{Key: "b.jpg", LastModified: base.Add(1 * time.Hour)},
		{Key: "c.jpg", LastModified: base.Add(2 * time.Hour)},
	}

	sorted := applyListOptions(objects, ListOptions{SortBy: "last_modified"})
	if sorted[0].Key != "b.jpg" || sorted[2].Key != "a.jpg" {
		t.Fatalf("expected last_modified ordering, got %v", sorted)
	}

	paged := applyListOptions(objects, ListOptions{Offset: 1, Limit: 1})
	if len(paged) != 1 {
		t.Fatalf("expected one object after paging, got %d", len(paged))
	}

	if got := applyListOptions(objects, ListOptions{Offset: 10}); got != nil {
		t.Fatalf("expected nil when offset exceeds listing, got %v", got)
	}
}
