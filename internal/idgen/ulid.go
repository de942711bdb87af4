package idgen

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	mathrand "math/rand/v2"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/dilipkumar2k6/uuid-generation/internal/idserrors"
)

// ULID is a 128-bit, lexicographically sortable identifier: a millisecond
// timestamp plus 80 bits of entropy, rendered as 26-character Crockford
// base32 (§4.12, a supplement carried from the teacher's
// core/uuid/google_uuid/ulid.go).
type ULID struct {
	mu      sync.Mutex
	entropy *mathrand.ChaCha8
}

// entropyReader adapts a math/rand/v2 ChaCha8 stream to the io.Reader shape
// oklog/ulid/v2 expects for its entropy source.
type entropyReader struct {
	rng *mathrand.ChaCha8
}

func (r *entropyReader) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		var word [8]byte
		binary.LittleEndian.PutUint64(word[:], r.rng.Uint64())
		copy(p[i:], word[:])
	}
	return len(p), nil
}

// NewULID constructs a ULID generator with a securely seeded entropy stream.
func NewULID() (*ULID, error) {
	var seed [32]byte
	if _, err := cryptorand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("idgen: ulid seed generation failed: %w", err)
	}
	return &ULID{entropy: mathrand.NewChaCha8(seed)}, nil
}

// NextID is not meaningful for a 128-bit identifier; ULID only emits
// textual ids via NextIDString.
func (g *ULID) NextID() (uint64, error) {
	return 0, idserrors.ErrTextualOnly
}

// NextIDString emits the next ULID as 26-character Crockford base32.
func (g *ULID) NextIDString() string {
	g.mu.Lock()
	reader := &entropyReader{rng: g.entropy}
	id, err := ulid.New(ulid.Now(), reader)
	g.mu.Unlock()
	if err != nil {
		return ""
	}
	recordEmission("ulid")
	return id.String()
}
