package ids

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// New returns a ULID string for the given timestamp. IDs generated within the
// same millisecond remain strictly ordered thanks to the monotonic entropy
// source.
func New(now time.Time) (string, error) {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	id, err := ulid.New(ulid.Timestamp(now.UTC()), entropy)
	if err != nil {
		if err == io.EOF {
			return "", fmt.Errorf("generate id: insufficient entropy")
		}
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}

// MustNew is New for call sites where id generation failure is unrecoverable
// anyway (crypto/rand exhaustion).
func MustNew(now time.Time) string {
	id, err := New(now)
	if err != nil {
		panic(err)
	}
	return id
}

// Valid reports whether s parses as a ULID.
func Valid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
