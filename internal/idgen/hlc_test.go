package idgen

import (
	"testing"

	"github.com/dilipkumar2k6/uuid-generation/internal/idlayout"
)

func TestHLCSnowflakeToleratesClockRegression(t *testing.T) {
	c := newFakeClock(idlayout.Epoch + 1000)
	g := NewHLCSnowflake(5, c)

	first, err := g.NextID()
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}

	c.set(idlayout.Epoch) // wall clock jumps backwards
	second, err := g.NextID()
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}

	if second <= first {
		t.Errorf("second id %d is not greater than first %d despite clock regression", second, first)
	}
}

func TestHLCSnowflakeSameMillisecondIncrementsSequence(t *testing.T) {
	c := newFakeClock(idlayout.Epoch)
	g := NewHLCSnowflake(2, c)

	ids := make(map[uint64]bool)
	for i := 0; i < 100; i++ {
		id, err := g.NextID()
		if err != nil {
			t.Fatalf("NextID at %d: %v", i, err)
		}
		if ids[id] {
			t.Fatalf("duplicate id %d at iteration %d", id, i)
		}
		ids[id] = true
	}
}
