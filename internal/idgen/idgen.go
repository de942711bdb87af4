// Package idgen implements the family of identifier generators: the
// algorithms, bit layouts, concurrency disciplines, and coordination
// protocols that each make one generation strategy correct.
package idgen

import "strconv"

// Generator is the polymorphic dispatch surface. The transport layer
// depends only on NextIDString and never on the concrete variant.
type Generator interface {
	NextID() (uint64, error)
	NextIDString() string
}

// uint64ToString renders a numeric generator's output the way the original
// implementation's default next_id_string() behavior does: decimal text.
func uint64ToString(id uint64) string {
	return strconv.FormatUint(id, 10)
}
