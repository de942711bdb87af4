package idgen

import (
	"testing"

	"github.com/dilipkumar2k6/uuid-generation/internal/idlayout"
	"github.com/dilipkumar2k6/uuid-generation/internal/idserrors"
)

func TestInstagramMonotonicWithinTick(t *testing.T) {
	c := newFakeClock(idlayout.Epoch)
	g := NewInstagram(7, c)

	first, err := g.NextID()
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}
	second, err := g.NextID()
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}

	_, shard1, seq1 := idlayout.UnpackInstagram(first)
	_, shard2, seq2 := idlayout.UnpackInstagram(second)
	if shard1 != 7 || shard2 != 7 {
		t.Errorf("shard ids = %d, %d, want 7, 7", shard1, shard2)
	}
	if seq2 != seq1+1 {
		t.Errorf("sequence did not increment: %d -> %d", seq1, seq2)
	}
}

func TestInstagramClockRegressionIsHardError(t *testing.T) {
	c := newFakeClock(idlayout.Epoch + 1000)
	g := NewInstagram(1, c)

	if _, err := g.NextID(); err != nil {
		t.Fatalf("NextID: %v", err)
	}

	c.set(idlayout.Epoch)
	if _, err := g.NextID(); err != idserrors.ErrClockRegressed {
		t.Errorf("NextID error = %v, want ErrClockRegressed", err)
	}
	if s := g.NextIDString(); s != "0" {
		t.Errorf("NextIDString = %q, want \"0\"", s)
	}
}
