package idlayout

import "testing"

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := []struct {
		name           string
		timestampDelta int64
		node           uint32
		seq            uint32
	}{
		{"zero", 0, 0, 0},
		{"max fields", 123456789, MaxNodeID, MaxSequence},
		{"mid", 123, 42, 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := Pack(tc.timestampDelta, tc.node, tc.seq)
			ts, node, seq := Unpack(id)
			if ts != tc.timestampDelta || node != tc.node&MaxNodeID || seq != tc.seq&MaxSequence {
				t.Fatalf("round trip mismatch: got (%d,%d,%d), want (%d,%d,%d)",
					ts, node, seq, tc.timestampDelta, tc.node&MaxNodeID, tc.seq&MaxSequence)
			}
		})
	}
}

func TestPackInstagramRoundTrip(t *testing.T) {
	id := PackInstagram(42, 100, 5)
	ts, shard, seq := UnpackInstagram(id)
	if ts != 42 || shard != 100 || seq != 5 {
		t.Fatalf("got (%d,%d,%d)", ts, shard, seq)
	}
}

func TestPackSonyflakeRoundTrip(t *testing.T) {
	id := PackSonyflake(99, 3, 777)
	tick, seq, machine := UnpackSonyflake(id)
	if tick != 99 || seq != 3 || machine != 777 {
		t.Fatalf("got (%d,%d,%d)", tick, seq, machine)
	}
}

func TestPackHLCRoundTrip(t *testing.T) {
	word := PackHLC(1000, 10)
	ts, seq := UnpackHLC(word)
	if ts != 1000 || seq != 10 {
		t.Fatalf("got (%d,%d)", ts, seq)
	}
}

func TestSnowflakeDeterminism(t *testing.T) {
	const nodeID = 42
	const frozenMs = int64(1767225600123)
	delta := frozenMs - Epoch

	first := Pack(delta, nodeID, 0)
	second := Pack(delta, nodeID, 1)

	wantFirst := uint64(delta)<<22 | uint64(nodeID)<<12 | 0
	wantSecond := wantFirst + 1

	if first != wantFirst {
		t.Fatalf("first id = %d, want %d", first, wantFirst)
	}
	if second != wantSecond {
		t.Fatalf("second id = %d, want %d", second, wantSecond)
	}
}
