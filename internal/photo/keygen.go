package photo

import (
	"crypto/rand"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	keySuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	keySuffixLength   = 7
)

// GenerateStorageKey produces a fresh storage key for an upload: millisecond
// timestamp, random base36 suffix, and the lowercased extension of the
// client-supplied name. Keys are practically unique, not provably so; the
// repository's unique constraint on storage_key backs this up.
func GenerateStorageKey(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), randomSuffix(keySuffixLength), ext)
}

func randomSuffix(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand is not expected to fail; a uuid keeps the key unique anyway
		return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
	}
	for i, b := range buf {
		buf[i] = keySuffixAlphabet[int(b)%len(keySuffixAlphabet)]
	}
	return string(buf)
}
