package idgen

import (
	"regexp"
	"testing"

	googleuuid "github.com/google/uuid"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func TestUUIDv4Shape(t *testing.T) {
	g := NewUUIDv4()
	id := g.NextIDString()

	if !uuidPattern.MatchString(id) {
		t.Fatalf("NextIDString = %q, does not match canonical UUID shape", id)
	}
	if id[14] != '4' {
		t.Errorf("version nibble = %q, want '4'", id[14])
	}
	if variant := id[19]; variant != '8' && variant != '9' && variant != 'a' && variant != 'b' {
		t.Errorf("variant nibble = %q, want one of 8,9,a,b", variant)
	}
}

func TestUUIDv4Uniqueness(t *testing.T) {
	g := NewUUIDv4()
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		id := g.NextIDString()
		if seen[id] {
			t.Fatalf("duplicate UUID %q at iteration %d", id, i)
		}
		seen[id] = true
	}
}

func TestUUIDv7Shape(t *testing.T) {
	g, err := NewUUIDv7()
	if err != nil {
		t.Fatalf("NewUUIDv7: %v", err)
	}
	id := g.NextIDString()

	if !uuidPattern.MatchString(id) {
		t.Fatalf("NextIDString = %q, does not match canonical UUID shape", id)
	}
	if id[14] != '7' {
		t.Errorf("version nibble = %q, want '7'", id[14])
	}
	if variant := id[19]; variant != '8' && variant != '9' && variant != 'a' && variant != 'b' {
		t.Errorf("variant nibble = %q, want one of 8,9,a,b", variant)
	}
}

// TestUUIDv4ParsesWithReferenceImplementation cross-checks the hand-rolled
// bit-twiddling in core/uuid against an independent parser.
func TestUUIDv4ParsesWithReferenceImplementation(t *testing.T) {
	g := NewUUIDv4()
	id := g.NextIDString()

	parsed, err := googleuuid.Parse(id)
	if err != nil {
		t.Fatalf("google/uuid failed to parse %q: %v", id, err)
	}
	if parsed.Version() != 4 {
		t.Errorf("parsed version = %d, want 4", parsed.Version())
	}
}

func TestUUIDv7Monotonic(t *testing.T) {
	g, err := NewUUIDv7()
	if err != nil {
		t.Fatalf("NewUUIDv7: %v", err)
	}

	prev := g.NextIDString()
	for i := 0; i < 50; i++ {
		cur := g.NextIDString()
		if cur[:13] < prev[:13] {
			t.Fatalf("timestamp prefix went backwards: %q then %q", prev, cur)
		}
		prev = cur
	}
}

var ulidPattern = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

func TestULIDShape(t *testing.T) {
	g, err := NewULID()
	if err != nil {
		t.Fatalf("NewULID: %v", err)
	}
	id := g.NextIDString()

	if !ulidPattern.MatchString(id) {
		t.Fatalf("NextIDString = %q, does not match Crockford base32 ULID shape", id)
	}
}

func TestULIDLexicographicallySortable(t *testing.T) {
	g, err := NewULID()
	if err != nil {
		t.Fatalf("NewULID: %v", err)
	}

	prev := g.NextIDString()
	for i := 0; i < 50; i++ {
		cur := g.NextIDString()
		if cur[:10] < prev[:10] {
			t.Fatalf("timestamp prefix went backwards: %q then %q", prev, cur)
		}
		prev = cur
	}
}
