package idgen

import (
	"sync"

	"github.com/dilipkumar2k6/uuid-generation/internal/core/uuid"
	"github.com/dilipkumar2k6/uuid-generation/internal/idserrors"
)

// UUIDv4 draws from crypto/rand under a mutex; the PRNG underlying
// crypto/rand is process-global but the mutex keeps the 16-byte draw in
// core/uuid.NewV4 from interleaving with itself if the stdlib source is ever
// swapped for one that isn't safe for concurrent use (§4.11).
type UUIDv4 struct {
	mu sync.Mutex
}

// NewUUIDv4 constructs a UUIDv4 generator.
func NewUUIDv4() *UUIDv4 {
	return &UUIDv4{}
}

// NextID is not meaningful for a 128-bit identifier; UUIDv4 only emits
// textual ids via NextIDString.
func (g *UUIDv4) NextID() (uint64, error) {
	return 0, idserrors.ErrTextualOnly
}

// NextIDString emits the next UUIDv4 in canonical 8-4-4-4-12 hex form.
func (g *UUIDv4) NextIDString() string {
	g.mu.Lock()
	u, err := uuid.NewV4()
	g.mu.Unlock()
	if err != nil {
		return ""
	}
	recordEmission("uuidv4")
	return u.String()
}
