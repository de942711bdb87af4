// Package idlayout holds the shared bit-field widths and epoch used by every
// snowflake-family generator, and the pack/unpack helpers built on them.
package idlayout

// Epoch is the reference instant (ms since Unix epoch, UTC) that packed
// timestamps are offsets from: 2026-01-01T00:00:00Z.
const Epoch int64 = 1767225600000

const (
	// TimestampBits is the width of the millisecond-delta-from-epoch field
	// shared by Snowflake, HLC-Snowflake, Etcd-Snowflake, Redis-Snowflake
	// and Instagram.
	TimestampBits = 41

	// NodeBits is the width of the per-process node-id field.
	NodeBits = 10

	// SequenceBits is the width of the intra-tick sequence field.
	SequenceBits = 12

	// InstagramShardBits is the width of Instagram's shard-id field.
	InstagramShardBits = 13
	// InstagramSequenceBits is the width of Instagram's sequence field.
	InstagramSequenceBits = 10

	// SonyflakeTimestampBits is the width of Sonyflake's 10ms-tick field.
	SonyflakeTimestampBits = 39
	// SonyflakeSequenceBits is the width of Sonyflake's sequence field.
	SonyflakeSequenceBits = 8
	// SonyflakeMachineBits is the width of Sonyflake's machine-id field.
	SonyflakeMachineBits = 16
)

// MaxNodeID is the largest value the node-id field can hold.
const MaxNodeID = 1<<NodeBits - 1

// MaxSequence is the largest value the sequence field can hold before it
// wraps back to zero.
const MaxSequence = 1<<SequenceBits - 1

// Pack composes a baseline Snowflake-layout id: 41b timestamp-delta | 10b
// node | 12b sequence.
func Pack(timestampDelta int64, nodeID, sequence uint32) uint64 {
	return uint64(timestampDelta)<<(NodeBits+SequenceBits) |
		uint64(nodeID&MaxNodeID)<<SequenceBits |
		uint64(sequence&MaxSequence)
}

// Unpack decomposes a baseline Snowflake-layout id into its three fields.
func Unpack(id uint64) (timestampDelta int64, nodeID, sequence uint32) {
	sequence = uint32(id & MaxSequence)
	nodeID = uint32((id >> SequenceBits) & MaxNodeID)
	timestampDelta = int64(id >> (NodeBits + SequenceBits))
	return
}

// PackInstagram composes Instagram's layout: 41b timestamp-delta | 13b shard
// | 10b sequence.
func PackInstagram(timestampDelta int64, shardID, sequence uint32) uint64 {
	const shardMax = 1<<InstagramShardBits - 1
	const seqMax = 1<<InstagramSequenceBits - 1
	return uint64(timestampDelta)<<(InstagramShardBits+InstagramSequenceBits) |
		uint64(shardID&shardMax)<<InstagramSequenceBits |
		uint64(sequence&seqMax)
}

// UnpackInstagram decomposes an Instagram-layout id.
func UnpackInstagram(id uint64) (timestampDelta int64, shardID, sequence uint32) {
	const shardMax = 1<<InstagramShardBits - 1
	const seqMax = 1<<InstagramSequenceBits - 1
	sequence = uint32(id & seqMax)
	shardID = uint32((id >> InstagramSequenceBits) & shardMax)
	timestampDelta = int64(id >> (InstagramShardBits + InstagramSequenceBits))
	return
}

// PackSonyflake composes Sonyflake's layout: 39b tick-delta | 8b sequence |
// 16b machine id. Unlike the other variants, the machine id occupies the low
// bits, not the sequence.
func PackSonyflake(tickDelta int64, sequence, machineID uint32) uint64 {
	const seqMax = 1<<SonyflakeSequenceBits - 1
	const machineMax = 1<<SonyflakeMachineBits - 1
	return uint64(tickDelta)<<(SonyflakeSequenceBits+SonyflakeMachineBits) |
		uint64(sequence&seqMax)<<SonyflakeMachineBits |
		uint64(machineID&machineMax)
}

// UnpackSonyflake decomposes a Sonyflake-layout id.
func UnpackSonyflake(id uint64) (tickDelta int64, sequence, machineID uint32) {
	const seqMax = 1<<SonyflakeSequenceBits - 1
	const machineMax = 1<<SonyflakeMachineBits - 1
	machineID = uint32(id & machineMax)
	sequence = uint32((id >> SonyflakeMachineBits) & seqMax)
	tickDelta = int64(id >> (SonyflakeSequenceBits + SonyflakeMachineBits))
	return
}

// PackHLC composes the logical-clock word used inside the HLC CAS loop:
// 41b logical-timestamp-delta | 12b sequence (upper 11 bits unused, kept at
// zero so the word stays positive as a signed int64).
func PackHLC(logicalTimestampDelta int64, sequence uint32) uint64 {
	return uint64(logicalTimestampDelta)<<SequenceBits | uint64(sequence&MaxSequence)
}

// UnpackHLC decomposes an HLC CAS word into logical timestamp delta and
// sequence.
func UnpackHLC(word uint64) (logicalTimestampDelta int64, sequence uint32) {
	sequence = uint32(word & MaxSequence)
	logicalTimestampDelta = int64(word >> SequenceBits)
	return
}
