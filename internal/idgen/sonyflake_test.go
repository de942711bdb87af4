package idgen

import (
	"testing"
	"time"

	"github.com/dilipkumar2k6/uuid-generation/internal/idlayout"
)

func TestSonyflakeTicksAdvanceOn10ms(t *testing.T) {
	c := newFakeClock(idlayout.Epoch)
	g := NewSonyflake(3, c)

	first, err := g.NextID()
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}

	c.advance(10 * time.Millisecond)
	second, err := g.NextID()
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}

	tick1, seq1, machine1 := idlayout.UnpackSonyflake(first)
	tick2, seq2, machine2 := idlayout.UnpackSonyflake(second)

	if machine1 != 3 || machine2 != 3 {
		t.Errorf("machine ids = %d, %d, want 3, 3", machine1, machine2)
	}
	if tick2 != tick1+1 {
		t.Errorf("tick did not advance by one: %d -> %d", tick1, tick2)
	}
	if seq1 != 0 || seq2 != 0 {
		t.Errorf("sequence should reset on new tick: %d, %d", seq1, seq2)
	}
}

func TestSonyflakeSameTickIncrementsSequence(t *testing.T) {
	c := newFakeClock(idlayout.Epoch)
	g := NewSonyflake(1, c)

	first, err := g.NextID()
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}
	second, err := g.NextID()
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}

	_, seq1, _ := idlayout.UnpackSonyflake(first)
	_, seq2, _ := idlayout.UnpackSonyflake(second)
	if seq2 != seq1+1 {
		t.Errorf("sequence did not increment: %d -> %d", seq1, seq2)
	}
}
