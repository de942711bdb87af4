package idgen

import (
	"sync/atomic"

	"github.com/dilipkumar2k6/uuid-generation/internal/core/clock"
	"github.com/dilipkumar2k6/uuid-generation/internal/idlayout"
	"github.com/dilipkumar2k6/uuid-generation/internal/idserrors"
)

// sonyflakeEpochTicks is the shared epoch expressed in 10ms ticks, matching
// Sonyflake's coarser time resolution (§4.3).
const sonyflakeEpochTicks = idlayout.Epoch / 10

// Sonyflake packs time | sequence | machine, with the machine id in the low
// bits (not the sequence, as in every other variant here). Time advances in
// 10ms ticks.
type Sonyflake struct {
	lastTick  int64
	sequence  uint32
	machineID uint32
	clock     clock.Clock
}

// NewSonyflake constructs a Sonyflake generator bound to machineID and clock.
func NewSonyflake(machineID uint32, c clock.Clock) *Sonyflake {
	return &Sonyflake{
		lastTick:  -1,
		machineID: machineID,
		clock:     c,
	}
}

const sonyflakeSeqMax = 1<<idlayout.SonyflakeSequenceBits - 1

// NextID emits the next identifier, or ErrClockRegressed on a backwards tick.
func (g *Sonyflake) NextID() (uint64, error) {
	tick := g.currentTick()
	tLast := atomic.LoadInt64(&g.lastTick)

	if tick < tLast {
		return 0, idserrors.ErrClockRegressed
	}

	var seq uint32
	if tick == tLast {
		seq = atomic.AddUint32(&g.sequence, 1) & sonyflakeSeqMax
		if seq == 0 {
			tick = g.spinToNextTick(tLast)
		}
	} else {
		atomic.StoreUint32(&g.sequence, 0)
	}

	atomic.StoreInt64(&g.lastTick, tick)
	recordEmission("sonyflake")
	return idlayout.PackSonyflake(tick-sonyflakeEpochTicks, seq, g.machineID), nil
}

func (g *Sonyflake) currentTick() int64 {
	return g.clock.Now().UnixMilli() / 10
}

func (g *Sonyflake) spinToNextTick(tLast int64) int64 {
	for {
		tick := g.currentTick()
		if tick > tLast {
			return tick
		}
	}
}

// NextIDString renders NextID as decimal text, or "0" on a hard error.
func (g *Sonyflake) NextIDString() string {
	id, err := g.NextID()
	if err != nil {
		return "0"
	}
	return uint64ToString(id)
}
