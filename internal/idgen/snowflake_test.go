package idgen

import (
	"testing"
	"time"

	"github.com/dilipkumar2k6/uuid-generation/internal/idlayout"
	"github.com/dilipkumar2k6/uuid-generation/internal/idserrors"
)

func TestSnowflakeDeterminism(t *testing.T) {
	c := newFakeClock(idlayout.Epoch + 123)
	g := NewSnowflake(42, c)

	first, err := g.NextID()
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}
	second, err := g.NextID()
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}

	wantFirst := idlayout.Pack(123, 42, 0)
	wantSecond := idlayout.Pack(123, 42, 1)
	if first != wantFirst {
		t.Errorf("first = %d, want %d", first, wantFirst)
	}
	if second != wantSecond {
		t.Errorf("second = %d, want %d", second, wantSecond)
	}
}

func TestSnowflakeClockRegression(t *testing.T) {
	c := newFakeClock(idlayout.Epoch + 1000)
	g := NewSnowflake(1, c)

	if _, err := g.NextID(); err != nil {
		t.Fatalf("NextID: %v", err)
	}

	c.set(idlayout.Epoch + 500)
	if _, err := g.NextID(); err != idserrors.ErrClockRegressed {
		t.Errorf("NextID error = %v, want ErrClockRegressed", err)
	}
}

func TestSnowflakeSequenceRollover(t *testing.T) {
	c := newFakeClock(idlayout.Epoch)
	g := NewSnowflake(0, c)

	for i := 0; i <= idlayout.MaxSequence; i++ {
		if _, err := g.NextID(); err != nil {
			t.Fatalf("NextID at %d: %v", i, err)
		}
	}

	c.advance(time.Millisecond)
	id, err := g.NextID()
	if err != nil {
		t.Fatalf("NextID after rollover: %v", err)
	}
	ts, _, seq := idlayout.Unpack(id)
	if ts != 1 {
		t.Errorf("timestamp after rollover = %d, want 1", ts)
	}
	if seq != 0 {
		t.Errorf("sequence after rollover = %d, want 0", seq)
	}
}

func TestSnowflakeNextIDStringSentinelOnRegression(t *testing.T) {
	c := newFakeClock(idlayout.Epoch + 1000)
	g := NewSnowflake(1, c)
	g.NextIDString()

	c.set(idlayout.Epoch)
	if s := g.NextIDString(); s != "0" {
		t.Errorf("NextIDString = %q, want \"0\"", s)
	}
}
