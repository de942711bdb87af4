package idgen

import (
	cryptorand "crypto/rand"
	mathrand "math/rand/v2"
	"sync"

	"github.com/dilipkumar2k6/uuid-generation/internal/core/uuid"
	"github.com/dilipkumar2k6/uuid-generation/internal/idserrors"
)

// UUIDv7 draws from a per-instance ChaCha8 stream seeded from crypto/rand
// (§9 "Random source"). The stream itself has no internal synchronization,
// so draws are serialized by mu since the generator is shared across
// goroutines for its whole lifetime (§3 Lifecycle). No uniqueness guarantee
// across processes beyond the collision probability of its random bits.
type UUIDv7 struct {
	mu      sync.Mutex
	entropy *mathrand.ChaCha8
}

// NewUUIDv7 constructs a UUIDv7 generator with a securely seeded entropy
// stream.
func NewUUIDv7() (*UUIDv7, error) {
	var seed [32]byte
	if _, err := cryptorand.Read(seed[:]); err != nil {
		return nil, err
	}
	return &UUIDv7{entropy: mathrand.NewChaCha8(seed)}, nil
}

// NextID is not meaningful for a 128-bit identifier; UUIDv7 only emits
// textual ids via NextIDString.
func (g *UUIDv7) NextID() (uint64, error) {
	return 0, idserrors.ErrTextualOnly
}

// NextIDString emits the next UUIDv7 in canonical 8-4-4-4-12 hex form.
func (g *UUIDv7) NextIDString() string {
	g.mu.Lock()
	u, err := uuid.NewV7(g.entropy)
	g.mu.Unlock()
	if err != nil {
		return ""
	}
	recordEmission("uuidv7")
	return u.String()
}
