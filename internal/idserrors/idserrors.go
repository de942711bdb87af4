// Package idserrors defines the domain error taxonomy shared by every
// identifier generator.
package idserrors

import "github.com/dilipkumar2k6/uuid-generation/internal/xerrors"

var (
	// ErrClockRegressed is raised when the wall clock reports a time
	// earlier than the last observed tick.
	ErrClockRegressed = xerrors.New("idserrors: clock regressed")

	// ErrSequenceExhausted names the case where the intra-tick sequence
	// counter wraps. No generator returns it: each one waits for the next
	// tick instead.
	ErrSequenceExhausted = xerrors.New("idserrors: sequence exhausted")

	// ErrCoordinatorUnavailable is raised when an externally coordinated
	// generator cannot reach its coordinator (etcd, Redis, MySQL, Spanner).
	ErrCoordinatorUnavailable = xerrors.New("idserrors: coordinator unavailable")

	// ErrNodeIDExhausted is raised at startup when no node-id slot could
	// be claimed from the coordinator's bounded keyspace.
	ErrNodeIDExhausted = xerrors.New("idserrors: node id space exhausted")

	// ErrClaimLost marks the (currently undetected) loss of a node-id
	// lease; kept as a named sentinel for the open question in §9.
	ErrClaimLost = xerrors.New("idserrors: node id claim lost")

	// ErrMalformedResponse is raised when a coordinator's response cannot
	// be parsed into the expected shape.
	ErrMalformedResponse = xerrors.New("idserrors: malformed coordinator response")

	// ErrTextualOnly is returned by NextID on generators whose identifier
	// doesn't fit a uint64 (UUID, ULID, Spanner TrueTime composite); callers
	// must use NextIDString instead.
	ErrTextualOnly = xerrors.New("idserrors: generator only emits textual ids")
)
