// Package primecache keeps generated primes on disk so that slow searches
// (large safe primes in particular) can be reused by later runs. Entries
// are meant for public parameters such as Diffie-Hellman moduli; do not
// store secret primes here.
package primecache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/blake3"

	"bignum/internal/bignum"
)

// Bump when the payload layout changes; older files are then ignored.
const schemaVersion uint16 = 1

// ErrCorrupt reports an entry whose digest or size does not match.
var ErrCorrupt = errors.New("primecache: corrupt entry")

// Cache stores primes grouped by (bits, safe). A nil *Cache is a valid
// empty cache that stores nothing. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type payload struct {
	Schema  uint16
	Bits    int
	Safe    bool
	Entries []entry
}

type entry struct {
	Prime  []byte
	Digest [32]byte
}

// Open returns the cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDir(filepath.Join(base, app))
}

// OpenDir returns a cache rooted at dir, creating it if needed.
func OpenDir(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) pathFor(bits int, safe bool) string {
	kind := "plain"
	if safe {
		kind = "safe"
	}
	return filepath.Join(c.dir, "primes", fmt.Sprintf("%d-%s.mp", bits, kind))
}

// Load returns every cached prime of the given kind, oldest first.
func (c *Cache) Load(bits int, safe bool) ([]bignum.BigInt, error) {
	if c == nil {
		return nil, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, err := c.read(bits, safe)
	if err != nil {
		return nil, err
	}
	return decodeEntries(p)
}

// Append adds primes to the (bits, safe) group. Values whose bit length is
// not bits are rejected before anything is written.
func (c *Cache) Append(bits int, safe bool, primes ...bignum.BigInt) error {
	if c == nil || len(primes) == 0 {
		return nil
	}
	for _, x := range primes {
		if x.Sign() <= 0 || x.BitLen() != bits {
			return fmt.Errorf("primecache: %s is not a %d-bit value", x, bits)
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	p, err := c.read(bits, safe)
	if err != nil {
		return err
	}
	for _, x := range primes {
		mag := x.Bytes()
		p.Entries = append(p.Entries, entry{Prime: mag, Digest: blake3.Sum256(mag)})
	}
	return c.write(p)
}

// Take removes and returns up to n primes of the given kind.
func (c *Cache) Take(bits int, safe bool, n int) ([]bignum.BigInt, error) {
	if c == nil || n <= 0 {
		return nil, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	p, err := c.read(bits, safe)
	if err != nil {
		return nil, err
	}
	n = min(n, len(p.Entries))
	taken := payload{Schema: p.Schema, Bits: bits, Safe: safe, Entries: p.Entries[:n]}
	out, err := decodeEntries(taken)
	if err != nil {
		return nil, err
	}
	p.Entries = p.Entries[n:]
	if err := c.write(p); err != nil {
		return nil, err
	}
	return out, nil
}

// Clear removes every cached prime.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "primes"))
}

// read returns the stored payload, or an empty one when the file is
// missing or was written with another schema.
func (c *Cache) read(bits int, safe bool) (payload, error) {
	empty := payload{Schema: schemaVersion, Bits: bits, Safe: safe}
	data, err := os.ReadFile(c.pathFor(bits, safe))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return empty, nil
		}
		return empty, err
	}
	var p payload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return empty, fmt.Errorf("primecache: decoding %d-bit entries: %w", bits, err)
	}
	if p.Schema != schemaVersion || p.Bits != bits || p.Safe != safe {
		return empty, nil
	}
	return p, nil
}

// write replaces the payload file atomically.
func (c *Cache) write(p payload) error {
	path := c.pathFor(p.Bits, p.Safe)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := msgpack.Marshal(&p)
	if err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name()) //nolint:errcheck // gone after a successful rename
	if _, err := f.Write(data); err != nil {
		f.Close() //nolint:errcheck,gosec // the write error wins
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

func decodeEntries(p payload) ([]bignum.BigInt, error) {
	out := make([]bignum.BigInt, 0, len(p.Entries))
	for i, e := range p.Entries {
		if blake3.Sum256(e.Prime) != e.Digest {
			return nil, fmt.Errorf("%w: %d-bit entry %d digest mismatch", ErrCorrupt, p.Bits, i)
		}
		x := bignum.FromBytes(e.Prime)
		if x.BitLen() != p.Bits {
			return nil, fmt.Errorf("%w: %d-bit entry %d has %d bits", ErrCorrupt, p.Bits, i, x.BitLen())
		}
		out = append(out, x)
	}
	return out, nil
}
