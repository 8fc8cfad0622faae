package ai

import (
	"errors"
	"sync"
)

// KeyRotator cycles through a fixed pool of upstream API keys. Rotation
// is plain round-robin: keys are handed out in list order and the
// rotator never skips or retries a key, even after an upstream failure
// with it.
type KeyRotator struct {
	mu   sync.Mutex
	keys []string
	next int
}

func NewKeyRotator(keys []string) (*KeyRotator, error) {
	if len(keys) == 0 {
		return nil, errors.New("key pool is empty")
	}
	return &KeyRotator{keys: keys}, nil
}

// Next returns the key at the cursor and advances it modulo the pool
// size, so over any N consecutive calls every key is returned exactly
// once.
func (r *KeyRotator) Next() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.keys[r.next]
	r.next = (r.next + 1) % len(r.keys)
	return key
}
