package wal

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
)

// Options configures a Writer, Reader or Scan. The zero value gets
// sensible defaults filled in.
type Options struct {
	// MaxPayloadSize bounds a single payload. Appends above it are
	// rejected and decoded lengths above it are treated as corruption.
	// Both sides of the log must agree on it.
	MaxPayloadSize int

	// Logger receives recovery telemetry. Defaults to a nop logger.
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxPayloadSize <= 0 {
		o.MaxPayloadSize = DefaultMaxPayloadSize
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Writer is the log's single appender. Exactly one Writer may have a log
// file open at a time; that exclusion is the caller's to arrange.
type Writer struct {
	mu     sync.Mutex
	file   *os.File
	path   string
	offset int64 // end of the last durable record; next append lands here
	opts   Options
	closed bool
}

// Open opens or creates the log at path, runs recovery to find the last
// known-good offset, truncates any unverified tail bytes, and positions
// for append. Running recovery first is the only safe way to resume an
// existing file: anything past the safe offset is garbage from a prior
// crash and is deliberately discarded.
func Open(path string, opts Options) (*Writer, error) {
	opts = opts.withDefaults()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}

	res, err := scanFile(f, opts)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("recover %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() > res.SafeOffset {
		opts.Logger.Warn("truncating unverified wal tail",
			zap.String("path", path),
			zap.Int64("file_size", info.Size()),
			zap.Int64("safe_offset", res.SafeOffset),
			zap.String("outcome", res.Outcome.String()))
		if err := f.Truncate(res.SafeOffset); err != nil {
			f.Close()
			return nil, fmt.Errorf("truncate %s: %w", path, err)
		}
	}

	return &Writer{
		file:   f,
		path:   path,
		offset: res.SafeOffset,
		opts:   opts,
	}, nil
}

// Append durably appends payload and returns the offset the record begins
// at. When Append returns nil the record, trailer and padding included, has
// been handed to the OS and fsynced. On any write or sync failure the error
// is returned verbatim and the tail state is undefined; the caller must
// reopen (which re-runs recovery) before appending again.
func (w *Writer) Append(payload []byte) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, ErrClosed
	}

	buf, err := encodeRecord(payload, w.opts.MaxPayloadSize)
	if err != nil {
		return 0, err
	}

	offset := w.offset
	if _, err := w.file.WriteAt(buf, offset); err != nil {
		return 0, err
	}
	if err := w.file.Sync(); err != nil {
		return 0, err
	}

	w.offset += int64(len(buf))
	return offset, nil
}

// Offset returns the current end of the log, where the next append lands.
func (w *Writer) Offset() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.offset
}

// Path returns the log file path.
func (w *Writer) Path() string {
	return w.path
}

// Close releases the file. No appends are accepted after Close returns.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.file.Sync(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
