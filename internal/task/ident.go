package task

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	identAlphabet   = "abcdefghijklmnopqrstuvwxyz0123456789"
	identMinLen     = 3
	identMaxLen     = 10
	identTriesPerLn = 24
)

type randReader struct{}

func (randReader) Read(p []byte) (int, error) { return rand.Read(p) }

// Allocator hands out workspace-unique task identifiers. Identifiers
// are compared case-insensitively; the reservation set must be seeded
// with every identifier found in the document being normalized so two
// tasks in one pass cannot collide.
type Allocator struct {
	used map[string]bool
}

// NewAllocator builds an allocator with the given identifiers already
// reserved.
func NewAllocator(used []string) *Allocator {
	a := &Allocator{used: make(map[string]bool, len(used))}
	for _, id := range used {
		a.Reserve(id)
	}
	return a
}

// Reserve marks an identifier as taken.
func (a *Allocator) Reserve(id string) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id != "" {
		a.used[id] = true
	}
}

// InUse reports whether an identifier is already reserved.
func (a *Allocator) InUse(id string) bool {
	return a.used[strings.ToLower(strings.TrimSpace(id))]
}

// Next returns a fresh identifier and reserves it. It tries short
// random strings first, growing the length as collisions pile up, and
// falls back to a ULID, which cannot collide with anything 26 chars
// shorter. Generation cannot fail.
func (a *Allocator) Next() string {
	for length := identMinLen; length <= identMaxLen; length++ {
		for try := 0; try < identTriesPerLn; try++ {
			id := randomIdent(length)
			if !a.used[id] {
				a.used[id] = true
				return id
			}
		}
	}
	id := strings.ToLower(newULID())
	a.used[id] = true
	return id
}

func randomIdent(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand.Read does not fail on supported platforms; keep
		// the zero bytes and map them through the alphabet anyway.
		_ = err
	}
	for i, b := range buf {
		buf[i] = identAlphabet[int(b)%len(identAlphabet)]
	}
	return string(buf)
}

func newULID() string {
	t := ulid.Timestamp(time.Now().UTC())
	entropy := ulid.Monotonic(randReader{}, 0)
	id, err := ulid.New(t, entropy)
	if err != nil {
		// fallback
		return fmt.Sprintf("%d", time.Now().UTC().UnixNano())
	}
	return id.String()
}
