package wal

import (
	"bufio"
	"errors"
	"os"

	"go.uber.org/zap"
)

// Outcome says why a scan stopped.
type Outcome int

const (
	// OutcomeClean means the scanner ran off the end of the written data:
	// either a clean EOF or a torn write at the very tail. Ordinary.
	OutcomeClean Outcome = iota

	// OutcomeIncomplete means a record's trailer was missing or wrong:
	// the process died mid-write. Everything from that record on is gone.
	OutcomeIncomplete

	// OutcomeCorrupt means a structurally complete record failed its
	// checksum, or carried an out-of-bounds length. Unlike an incomplete
	// tail this says previously flushed bytes changed, and deserves an
	// alert.
	OutcomeCorrupt
)

func (o Outcome) String() string {
	switch o {
	case OutcomeClean:
		return "clean"
	case OutcomeIncomplete:
		return "incomplete"
	case OutcomeCorrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// ScanResult is the tagged outcome of a recovery scan. SafeOffset is the
// end offset of the last valid record; callers branch on Outcome when they
// need to know why the scan stopped, not just where.
type ScanResult struct {
	Records    []Record
	SafeOffset int64
	Outcome    Outcome
}

// Scan replays the log at path from offset 0 and reports every valid
// record plus the last known-good offset. It never writes; truncating the
// tail is the writer's job on open. A missing file scans as empty.
func Scan(path string, opts Options) (*ScanResult, error) {
	opts = opts.withDefaults()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ScanResult{Outcome: OutcomeClean}, nil
		}
		return nil, err
	}
	defer f.Close()

	return scanFile(f, opts)
}

// scanFile runs the decode loop against an open file positioned at 0.
// Structural failures become the result's Outcome; only raw I/O errors
// propagate.
func scanFile(f *os.File, opts Options) (*ScanResult, error) {
	res := &ScanResult{Outcome: OutcomeClean}
	br := bufio.NewReader(f)

	var offset int64
	for {
		payload, size, err := decodeRecord(br, opts.MaxPayloadSize)
		if err == nil {
			res.Records = append(res.Records, Record{Offset: offset, Payload: payload})
			offset += size
			continue
		}

		res.SafeOffset = offset

		switch {
		case errors.Is(err, ErrShortRead):
			// True end of written data.
		case errors.Is(err, ErrIncompleteRecord):
			res.Outcome = OutcomeIncomplete
			opts.Logger.Warn("wal recovery found torn record",
				zap.Int64("offset", offset),
				zap.Int("records", len(res.Records)))
		case errors.Is(err, ErrCorrupt), errors.Is(err, ErrInvalidLength):
			res.Outcome = OutcomeCorrupt
			opts.Logger.Error("wal recovery found corrupt record",
				zap.Int64("offset", offset),
				zap.Int("records", len(res.Records)),
				zap.Error(err))
		default:
			return nil, err
		}

		// Never resync past a bad record: a torn length field makes every
		// later offset meaningless.
		return res, nil
	}
}
