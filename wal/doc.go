// Package wal implements a crash-safe, single-writer append-only log.
//
// The on-disk structure is a sequence of 8-byte-aligned records:
//
//	checksum uint32     // CRC-32C over length and payload, little endian
//	length   uint32     // payload byte count, little endian
//	payload  [length]byte
//	trailer  uint64     // fixed sentinel, written last
//	padding  [0-7]byte  // zeros, align the next record to 8 bytes
//
// A record exists only if all four parts are present and consistent. The
// trailer is the completion proof: recovery treats a missing or mismatched
// trailer as a torn write, and a checksum mismatch on a structurally
// complete record as corruption. Either way, everything from the failing
// record onward is discarded and the file is truncated back to the last
// known-good offset before new appends are accepted.
package wal
