package idgen

import (
	"sync/atomic"

	"github.com/dilipkumar2k6/uuid-generation/internal/core/clock"
	"github.com/dilipkumar2k6/uuid-generation/internal/idlayout"
	"github.com/dilipkumar2k6/uuid-generation/internal/idserrors"
)

// Snowflake is the baseline 64-bit time-sharded generator: 41b
// milliseconds-since-epoch, 10b node id, 12b sequence.
//
// last_timestamp and sequence are independent atomics, not a single packed
// word. Two threads can race between the sequence update and the
// last_timestamp store; this is intentional (§4.1, §9) and matches the
// original implementation's own split-atomic form.
type Snowflake struct {
	lastTimestamp int64 // atomic, ms delta from idlayout.Epoch
	sequence      uint32
	nodeID        uint32
	clock         clock.Clock
}

// NewSnowflake constructs a Snowflake generator bound to nodeID and clock.
func NewSnowflake(nodeID uint32, c clock.Clock) *Snowflake {
	return &Snowflake{
		lastTimestamp: -1,
		nodeID:        nodeID & idlayout.MaxNodeID,
		clock:         c,
	}
}

// NextID emits the next 64-bit Snowflake identifier.
func (s *Snowflake) NextID() (uint64, error) {
	t := s.clock.Now().UnixMilli() - idlayout.Epoch
	tLast := atomic.LoadInt64(&s.lastTimestamp)

	if t < tLast {
		return 0, idserrors.ErrClockRegressed
	}

	var seq uint32
	if t == tLast {
		seq = atomic.AddUint32(&s.sequence, 1) & idlayout.MaxSequence
		if seq == 0 {
			t = s.spinToNextTick(tLast)
		}
	} else {
		atomic.StoreUint32(&s.sequence, 0)
	}

	atomic.StoreInt64(&s.lastTimestamp, t)
	recordEmission("snowflake")
	return idlayout.Pack(t, s.nodeID, seq), nil
}

// spinToNextTick busy-waits on the clock until it advances past tLast,
// matching the original's spin-wait-not-sleep semantics (§5).
func (s *Snowflake) spinToNextTick(tLast int64) int64 {
	for {
		t := s.clock.Now().UnixMilli() - idlayout.Epoch
		if t > tLast {
			return t
		}
	}
}

// NextIDString renders NextID as decimal text; a clock regression renders
// as the sentinel "0".
func (s *Snowflake) NextIDString() string {
	id, err := s.NextID()
	if err != nil {
		return "0"
	}
	return uint64ToString(id)
}
