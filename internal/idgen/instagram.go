package idgen

import (
	"sync/atomic"

	"github.com/dilipkumar2k6/uuid-generation/internal/core/clock"
	"github.com/dilipkumar2k6/uuid-generation/internal/idlayout"
	"github.com/dilipkumar2k6/uuid-generation/internal/idserrors"
)

// Instagram mirrors Snowflake's control flow with Instagram's field widths
// (41b timestamp, 13b shard, 10b sequence). Unlike Snowflake, a clock
// regression is a hard error, not a silently-returned sentinel (§4.2).
type Instagram struct {
	lastTimestamp int64
	sequence      uint32
	shardID       uint32
	clock         clock.Clock
}

// NewInstagram constructs an Instagram-variant generator.
func NewInstagram(shardID uint32, c clock.Clock) *Instagram {
	return &Instagram{
		lastTimestamp: -1,
		shardID:       shardID,
		clock:         c,
	}
}

const instagramShardMax = 1<<idlayout.InstagramShardBits - 1

// NextID emits the next identifier, or ErrClockRegressed if wall-clock time
// has gone backwards.
func (g *Instagram) NextID() (uint64, error) {
	t := g.clock.Now().UnixMilli() - idlayout.Epoch
	tLast := atomic.LoadInt64(&g.lastTimestamp)

	if t < tLast {
		return 0, idserrors.ErrClockRegressed
	}

	var seq uint32
	if t == tLast {
		seq = atomic.AddUint32(&g.sequence, 1) & (1<<idlayout.InstagramSequenceBits - 1)
		if seq == 0 {
			t = g.spinToNextTick(tLast)
		}
	} else {
		atomic.StoreUint32(&g.sequence, 0)
	}

	atomic.StoreInt64(&g.lastTimestamp, t)
	recordEmission("insta_snowflake")
	return idlayout.PackInstagram(t, g.shardID&instagramShardMax, seq), nil
}

func (g *Instagram) spinToNextTick(tLast int64) int64 {
	for {
		t := g.clock.Now().UnixMilli() - idlayout.Epoch
		if t > tLast {
			return t
		}
	}
}

// NextIDString renders NextID as decimal text, or "0" on a hard error.
func (g *Instagram) NextIDString() string {
	id, err := g.NextID()
	if err != nil {
		return "0"
	}
	return uint64ToString(id)
}
