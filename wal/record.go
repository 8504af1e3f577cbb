package wal

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"
)

const (
	headerSize  = 8 // checksum (4) + length (4)
	trailerSize = 8
	recordAlign = 8

	// trailerMarker proves a record was written out completely. It is the
	// last thing the writer emits for a record, so its absence at decode
	// time is the signature of a crash mid-write. Any fixed 64-bit value
	// works as long as both sides check it bit-exact.
	trailerMarker uint64 = 0xFEEDFACECAFEBEEF

	// DefaultMaxPayloadSize bounds payloads when the caller does not set
	// a limit. A torn header can decode to an enormous length; the bound
	// keeps that from turning into an unbounded allocation.
	DefaultMaxPayloadSize = 10 * 1024 * 1024
)

// crcTable is the codec's checksum table, computed once. CRC-32C.
var crcTable = crc32.MakeTable(crc32.Castagnoli)

var (
	// ErrPayloadTooLarge is returned before any I/O when a payload exceeds
	// the configured maximum.
	ErrPayloadTooLarge = errors.New("wal: payload exceeds maximum size")

	// ErrShortRead signals the end of valid data during a sequential scan.
	// It means "no more complete bytes", not corruption.
	ErrShortRead = errors.New("wal: short read")

	// ErrInvalidLength signals a length field beyond the configured
	// maximum. Treated as corruption.
	ErrInvalidLength = errors.New("wal: record length out of bounds")

	// ErrIncompleteRecord signals a missing or mismatched trailer: the
	// record was never fully written.
	ErrIncompleteRecord = errors.New("wal: incomplete record, trailer missing")

	// ErrCorrupt signals a checksum mismatch on a structurally complete
	// record: data that was once flushed no longer reads back intact.
	ErrCorrupt = errors.New("wal: checksum mismatch")

	// ErrClosed is returned by appends after Close.
	ErrClosed = errors.New("wal: closed")
)

// Record is one durably appended entry.
type Record struct {
	Offset  int64 // byte offset of the record header in the file
	Payload []byte
}

// Size returns the record's total on-disk footprint, padding included.
func (r *Record) Size() int64 {
	return encodedSize(len(r.Payload))
}

func encodedSize(payloadLen int) int64 {
	raw := int64(headerSize + payloadLen + trailerSize)
	return raw + int64(paddingLen(payloadLen))
}

func paddingLen(payloadLen int) int {
	return (recordAlign - (headerSize+payloadLen+trailerSize)%recordAlign) % recordAlign
}

// checksumOver computes the record checksum over length and payload. The
// checksum never covers itself, so the stored value can be verified
// independently of its own encoding.
func checksumOver(lengthLE []byte, payload []byte) uint32 {
	sum := crc32.Update(0, crcTable, lengthLE)
	return crc32.Update(sum, crcTable, payload)
}

// encodeRecord builds the full on-disk byte sequence for payload in one
// contiguous buffer: header, payload, trailer, zero padding.
func encodeRecord(payload []byte, maxPayloadSize int) ([]byte, error) {
	if len(payload) > maxPayloadSize {
		return nil, ErrPayloadTooLarge
	}

	buf := make([]byte, encodedSize(len(payload)))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(payload)))
	copy(buf[headerSize:], payload)
	binary.LittleEndian.PutUint32(buf[0:4], checksumOver(buf[4:8], payload))
	binary.LittleEndian.PutUint64(buf[headerSize+len(payload):], trailerMarker)
	// padding is already zeroed by make

	return buf, nil
}

// decodeRecord reads and validates one record from r. It returns the
// payload and the record's total on-disk size, or one of the codec errors:
// ErrShortRead when fewer bytes remain than a complete record needs,
// ErrInvalidLength for an out-of-bounds length field, ErrIncompleteRecord
// for a missing trailer, ErrCorrupt for a checksum mismatch. Validation
// order is significant: the trailer is checked before the checksum so a
// torn write is never misreported as corruption.
func decodeRecord(r io.Reader, maxPayloadSize int) ([]byte, int64, error) {
	var hdr [headerSize]byte
	if err := readFull(r, hdr[:]); err != nil {
		return nil, 0, err
	}

	length := binary.LittleEndian.Uint32(hdr[4:8])
	if int64(length) > int64(maxPayloadSize) {
		return nil, 0, ErrInvalidLength
	}

	payload := make([]byte, length)
	if err := readFull(r, payload); err != nil {
		return nil, 0, err
	}

	var tr [trailerSize]byte
	if err := readFull(r, tr[:]); err != nil {
		return nil, 0, err
	}
	if binary.LittleEndian.Uint64(tr[:]) != trailerMarker {
		return nil, 0, ErrIncompleteRecord
	}

	if checksumOver(hdr[4:8], payload) != binary.LittleEndian.Uint32(hdr[0:4]) {
		return nil, 0, ErrCorrupt
	}

	if pad := paddingLen(int(length)); pad > 0 {
		var padding [recordAlign]byte
		if err := readFull(r, padding[:pad]); err != nil {
			return nil, 0, err
		}
	}

	return payload, encodedSize(int(length)), nil
}

// readFull maps both flavors of end-of-data onto ErrShortRead and lets
// genuine I/O failures through untouched.
func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrShortRead
		}
		return err
	}
	return nil
}
