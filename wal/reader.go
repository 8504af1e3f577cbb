package wal

import (
	"bufio"
	"errors"
	"io"
	"os"
)

// Reader iterates records in a log file without loading them all at once.
// It stops cleanly at the end of valid data; a torn or corrupt record ends
// iteration with the codec error exposed through Err.
type Reader struct {
	file   *os.File
	br     *bufio.Reader
	opts   Options
	offset int64
	rec    *Record
	err    error
	done   bool
}

// OpenReader opens the log at path for iteration from the start.
func OpenReader(path string, opts Options) (*Reader, error) {
	return OpenReaderAt(path, 0, opts)
}

// OpenReaderAt starts iteration at a known record boundary, typically a
// durably stored cursor. Offsets must come from a previous Append, Scan or
// Reader position; the codec cannot resync from a mid-record offset.
func OpenReaderAt(path string, offset int64, opts Options) (*Reader, error) {
	opts = opts.withDefaults()

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}

	return &Reader{
		file:   f,
		br:     bufio.NewReader(f),
		opts:   opts,
		offset: offset,
	}, nil
}

// Next advances to the next record. It returns false at the end of valid
// data; check Err to distinguish a clean end from a torn or corrupt tail.
func (r *Reader) Next() bool {
	if r.done {
		return false
	}

	payload, size, err := decodeRecord(r.br, r.opts.MaxPayloadSize)
	if err != nil {
		r.done = true
		if !errors.Is(err, ErrShortRead) {
			r.err = err
		}
		return false
	}

	r.rec = &Record{Offset: r.offset, Payload: payload}
	r.offset += size
	return true
}

// Record returns the record read by the last successful Next.
func (r *Reader) Record() *Record {
	return r.rec
}

// Offset returns the end offset of the last record read, i.e. where the
// next record would begin.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Err returns the codec error that ended iteration, or nil after a clean
// end of data.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) Close() error {
	return r.file.Close()
}
