package photo

import "testing"

func TestURLResolverResolvesKey(t *testing.T) {
	resolver, err := NewURLResolver("http://cdn.example.com/", "photos")
	if err != nil {
		t.Fatalf("NewURLResolver returned error: %v", err)
	}

	got := resolver.Resolve("1700000000000-ab12cd3.jpg")
	want := "http://cdn.example.com/photos/1700000000000-ab12cd3.jpg"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestURLResolverRejectsMisconfiguration(t *testing.T) {
	cases := []struct {
		name   string
		base   string
		bucket string
	}{
		{"empty base", "", "photos"},
		{"empty bucket", "http://cdn.example.com", ""},
		{"no scheme", "cdn.example.com", "photos"},
		{"whitespace base", "   ", "photos"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewURLResolver(tc.base, tc.bucket); err == nil {
				t.Fatalf("expected constructor error for base=%q bucket=%q", tc.base, tc.bucket)
			}
		})
	}
}
