package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the read-through cache used in front of the free weather APIs so
// repeated conditions lookups inside one window don't hammer the providers.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a request URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "shredders:v1:" + hex.EncodeToString(hash[:])
}
