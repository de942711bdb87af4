package idgen

import (
	"sync/atomic"

	"github.com/dilipkumar2k6/uuid-generation/internal/core/clock"
	"github.com/dilipkumar2k6/uuid-generation/internal/idlayout"
)

// HLCSnowflake tolerates bounded clock regressions without emitting
// duplicates and without spinning, by packing (logical_ts, sequence) into a
// single atomic word and advancing it with a CAS loop (§4.4). This is the
// one snowflake variant the original implementation itself builds on a
// packed atomic rather than split atomics (§9).
type HLCSnowflake struct {
	word   uint64 // atomic, packed via idlayout.PackHLC
	nodeID uint32
	clock  clock.Clock
}

// NewHLCSnowflake constructs an HLC-Snowflake generator bound to nodeID and
// clock.
func NewHLCSnowflake(nodeID uint32, c clock.Clock) *HLCSnowflake {
	return &HLCSnowflake{
		nodeID: nodeID & idlayout.MaxNodeID,
		clock:  c,
	}
}

// NextID emits the next identifier. The logical timestamp is strictly
// monotonic even when the wall clock regresses.
func (g *HLCSnowflake) NextID() (uint64, error) {
	for {
		cur := atomic.LoadUint64(&g.word)
		lTS, lSeq := idlayout.UnpackHLC(cur)

		pt := g.clock.Now().UnixMilli() - idlayout.Epoch

		var nTS int64
		var nSeq uint32
		if pt > lTS {
			nTS, nSeq = pt, 0
		} else {
			nTS, nSeq = lTS, lSeq+1
			if nSeq > idlayout.MaxSequence {
				nTS, nSeq = lTS+1, 0
			}
		}

		next := idlayout.PackHLC(nTS, nSeq)
		if atomic.CompareAndSwapUint64(&g.word, cur, next) {
			recordEmission("hlc_snowflake")
			return idlayout.Pack(nTS, g.nodeID, nSeq), nil
		}
	}
}

// NextIDString renders NextID as decimal text.
func (g *HLCSnowflake) NextIDString() string {
	id, _ := g.NextID()
	return uint64ToString(id)
}
