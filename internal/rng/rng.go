// Package rng supplies the randomness sources the bignum engine draws from:
// the operating system CSPRNG and a reproducible ChaCha20 stream for tests
// and the CLI's --seed flag.
package rng

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/chacha20"
)

// seedContext separates rng keys from every other BLAKE3 use of the same seed.
const seedContext = "bignum rng 2025-01 chacha20 stream key"

// Reader is the system CSPRNG.
var Reader io.Reader = rand.Reader

// Seeded is a deterministic keystream. Equal seeds give equal streams.
// It is not safe for concurrent use; wrap it with Locked.
type Seeded struct {
	c *chacha20.Cipher
}

// NewSeeded keys ChaCha20 with BLAKE3-derived material from seed. Any seed,
// including an empty one, is accepted.
func NewSeeded(seed []byte) *Seeded {
	var key [chacha20.KeySize + chacha20.NonceSize]byte
	blake3.DeriveKey(seedContext, seed, key[:])
	c, err := chacha20.NewUnauthenticatedCipher(key[:chacha20.KeySize], key[chacha20.KeySize:])
	if err != nil {
		// Key and nonce sizes are fixed above.
		panic(fmt.Sprintf("rng: chacha20 setup: %v", err))
	}
	return &Seeded{c: c}
}

// Read fills p with keystream bytes. It never fails.
func (s *Seeded) Read(p []byte) (int, error) {
	clear(p)
	s.c.XORKeyStream(p, p)
	return len(p), nil
}

type locked struct {
	mu sync.Mutex
	r  io.Reader
}

// Locked serialises reads from r so several goroutines can share it.
func Locked(r io.Reader) io.Reader {
	if l, ok := r.(*locked); ok {
		return l
	}
	return &locked{r: r}
}

func (l *locked) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Read(p)
}

// ForSeed returns Reader for an empty seed and a Locked seeded stream otherwise.
func ForSeed(seed string) io.Reader {
	if seed == "" {
		return Reader
	}
	return Locked(NewSeeded([]byte(seed)))
}
