// Package uuid provides general-purpose UUID generation and handling.
package uuid

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	mathrand "math/rand/v2"
	"time"
)

// UUID represents a 128-bit UUID (RFC 4122 and draft UUIDv7).
type UUID [16]byte

// NewV4 generates a RFC-compliant UUIDv4.
func NewV4() (UUID, error) {
	var u UUID
	if _, err := cryptorand.Read(u[:]); err != nil {
		return UUID{}, fmt.Errorf("uuid: v4 generation failed: %w", err)
	}
	u[6] = (u[6] & 0x0f) | 0x40 // Version 4
	u[8] = (u[8] & 0x3f) | 0x80 // Variant 10xx
	return u, nil
}

// NewV7 generates a time-ordered UUIDv7 with configurable source.
func NewV7(r *mathrand.ChaCha8) (UUID, error) {
	var u UUID
	now := uint64(time.Now().UnixMilli())
	u[0] = byte(now >> 40)
	u[1] = byte(now >> 32)
	u[2] = byte(now >> 24)
	u[3] = byte(now >> 16)
	u[4] = byte(now >> 8)
	u[5] = byte(now)

	if r == nil {
		var seed [32]byte
		if _, err := cryptorand.Read(seed[:]); err != nil {
			panic(err)
		}
		r = mathrand.NewChaCha8(seed)
	}

	var tail [10]byte
	binary.BigEndian.PutUint64(tail[0:8], r.Uint64())
	binary.BigEndian.PutUint16(tail[8:10], uint16(r.Uint64()))
	copy(u[6:16], tail[:])

	u[6] = (u[6] & 0x0f) | 0x70 // Version 7
	u[8] = (u[8] & 0x3f) | 0x80 // Variant 10xx

	return u, nil
}

// String renders the UUID in canonical 8-4-4-4-12 hex form.
func (u UUID) String() string {
	var buf [36]byte
	hex.Encode(buf[0:8], u[0:4])
	buf[8] = '-'
	hex.Encode(buf[9:13], u[4:6])
	buf[13] = '-'
	hex.Encode(buf[14:18], u[6:8])
	buf[18] = '-'
	hex.Encode(buf[19:23], u[8:10])
	buf[23] = '-'
	hex.Encode(buf[24:36], u[10:16])
	return string(buf[:])
}
