package photo

import (
	"strings"
	"testing"
)

func TestGenerateStorageKeyKeepsExtension(t *testing.T) {
	key := GenerateStorageKey("Sunset Over Water.JPG")
	if !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("expected lowercased .jpg suffix, got %q", key)
	}
}

func TestGenerateStorageKeyWithoutExtension(t *testing.T) {
	key := GenerateStorageKey("noext")
	if strings.Contains(key, ".") {
		t.Fatalf("expected no extension in key, got %q", key)
	}
}

func TestGenerateStorageKeyIsFresh(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key := GenerateStorageKey("same.jpg")
		if seen[key] {
			t.Fatalf("duplicate key generated: %q", key)
		}
		seen[key] = true
	}
}

func TestRandomSuffixUsesExpectedAlphabet(t *testing.T) {
	suffix := randomSuffix(32)
	if len(suffix) != 32 {
		t.Fatalf("expected 32 characters, got %d", len(suffix))
	}
	for _, r := range suffix {
		if !strings.ContainsRune(keySuffixAlphabet, r) {
			t.Fatalf("unexpected character %q in suffix %q", r, suffix)
		}
	}
}
