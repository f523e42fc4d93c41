package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache defines the interface for caching model completions
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// keyPrefix versions the key scheme so stale entries are never misread
const keyPrefix = "casebench:v1:"

// CompletionKey derives a cache key from everything that shapes a completion
func CompletionKey(provider, model string, temperature float32, maxTokens int, system, prompt string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%g\x00%d\x00", provider, model, temperature, maxTokens)
	h.Write([]byte(system))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}
