package netid

import "testing"

func TestDiscoverMasksToWidth(t *testing.T) {
	const width = 10
	id := Discover(width)
	if id > (1<<width - 1) {
		t.Fatalf("discovered id %d exceeds %d-bit width", id, width)
	}
}

func TestDiscoverDeterministic(t *testing.T) {
	a := Discover(10)
	b := Discover(10)
	if a != b {
		t.Fatalf("expected deterministic result, got %d then %d", a, b)
	}
}
