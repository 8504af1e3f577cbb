package wal

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriter_AppendOffsets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keel.wal")
	w, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer w.Close()

	var prevEnd int64
	for _, p := range [][]byte{[]byte("one"), []byte("two-two"), {}} {
		off, err := w.Append(p)
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		if off != prevEnd {
			t.Fatalf("record starts at %d, previous ended at %d", off, prevEnd)
		}
		if off%recordAlign != 0 {
			t.Fatalf("record offset %d not 8-byte aligned", off)
		}
		prevEnd = off + encodedSize(len(p))
	}
	if w.Offset() != prevEnd {
		t.Fatalf("writer offset %d, want %d", w.Offset(), prevEnd)
	}
}

func TestWriter_OversizedPayloadLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keel.wal")
	w, err := Open(path, Options{MaxPayloadSize: 16})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer w.Close()

	if _, err := w.Append([]byte("fits")); err != nil {
		t.Fatalf("append: %v", err)
	}
	before, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := w.Append(make([]byte, 17)); !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}

	after, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if before.Size() != after.Size() {
		t.Fatalf("rejected append changed file size: %d -> %d", before.Size(), after.Size())
	}
}

func TestWriter_AppendAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keel.wal")
	w, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := w.Append([]byte("late")); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

// Crash simulation: records A and B land durably, C tears mid-payload.
// Reopening must truncate back to the end of B, and appends after that
// must produce a log reading exactly [A, B, D].
func TestWriter_ResumeAfterCrash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keel.wal")

	w, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	a, b, d := []byte("record-A"), []byte("record-B"), []byte("record-D")
	if _, err := w.Append(a); err != nil {
		t.Fatalf("append A: %v", err)
	}
	if _, err := w.Append(b); err != nil {
		t.Fatalf("append B: %v", err)
	}
	endOfB := w.Offset()
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// tear record C halfway through its payload
	cBytes, err := encodeRecord([]byte("record-C never makes it"), DefaultMaxPayloadSize)
	if err != nil {
		t.Fatal(err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write(cBytes[:headerSize+4]); err != nil {
		t.Fatal(err)
	}
	f.Close()

	w2, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if w2.Offset() != endOfB {
		t.Fatalf("reopened at %d, want end of B %d", w2.Offset(), endOfB)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != endOfB {
		t.Fatalf("torn tail not truncated: size %d, want %d", info.Size(), endOfB)
	}

	if _, err := w2.Append(d); err != nil {
		t.Fatalf("append D: %v", err)
	}
	if err := w2.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	res, err := Scan(path, Options{})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	want := [][]byte{a, b, d}
	if len(res.Records) != len(want) {
		t.Fatalf("got %d records, want %d", len(res.Records), len(want))
	}
	for i, rec := range res.Records {
		if !bytes.Equal(rec.Payload, want[i]) {
			t.Fatalf("record %d: %q, want %q", i, rec.Payload, want[i])
		}
	}
	if res.Outcome != OutcomeClean {
		t.Fatalf("outcome %s, want clean", res.Outcome)
	}
}

func TestWriter_OpenTruncatesCorruptInterior(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keel.wal")
	w, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	first := []byte("survives")
	if _, err := w.Append(first); err != nil {
		t.Fatal(err)
	}
	endOfFirst := w.Offset()
	second, err := w.Append([]byte("rots on disk"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Append([]byte("casualty of the rot")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteAt([]byte{0xFF}, second+headerSize); err != nil {
		t.Fatal(err)
	}
	f.Close()

	// even records after the corrupt one are dropped: corruption may
	// cascade, so nothing beyond it can be trusted
	w2, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer w2.Close()
	if w2.Offset() != endOfFirst {
		t.Fatalf("reopened at %d, want %d", w2.Offset(), endOfFirst)
	}
	info, _ := os.Stat(path)
	if info.Size() != endOfFirst {
		t.Fatalf("file size %d, want %d", info.Size(), endOfFirst)
	}
}

func TestReader_IteratesWithOffsets(t *testing.T) {
	payloads := [][]byte{[]byte("aa"), []byte("bbbb"), []byte("cccccc")}
	path, offsets := writeLog(t, payloads)

	r, err := OpenReader(path, Options{})
	if err != nil {
		t.Fatalf("open reader: %v", err)
	}
	defer r.Close()

	i := 0
	for r.Next() {
		rec := r.Record()
		if !bytes.Equal(rec.Payload, payloads[i]) {
			t.Fatalf("record %d: %q, want %q", i, rec.Payload, payloads[i])
		}
		if rec.Offset != offsets[i] {
			t.Fatalf("record %d: offset %d, want %d", i, rec.Offset, offsets[i])
		}
		i++
	}
	if err := r.Err(); err != nil {
		t.Fatalf("reader error: %v", err)
	}
	if i != len(payloads) {
		t.Fatalf("read %d records, want %d", i, len(payloads))
	}
}

func TestReader_ResumeFromOffset(t *testing.T) {
	payloads := [][]byte{[]byte("old"), []byte("new-1"), []byte("new-2")}
	path, offsets := writeLog(t, payloads)

	r, err := OpenReaderAt(path, offsets[1], Options{})
	if err != nil {
		t.Fatalf("open reader at %d: %v", offsets[1], err)
	}
	defer r.Close()

	var got [][]byte
	for r.Next() {
		got = append(got, r.Record().Payload)
	}
	if err := r.Err(); err != nil {
		t.Fatalf("reader error: %v", err)
	}
	if len(got) != 2 || !bytes.Equal(got[0], payloads[1]) || !bytes.Equal(got[1], payloads[2]) {
		t.Fatalf("resume read %q, want tail records", got)
	}
}

func TestReader_SurfacesCorruption(t *testing.T) {
	path, offsets := writeLog(t, [][]byte{[]byte("fine"), []byte("bad luck")})

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteAt([]byte{0x00}, offsets[1]+headerSize); err != nil {
		t.Fatal(err)
	}
	f.Close()

	r, err := OpenReader(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if !r.Next() {
		t.Fatal("first record should read")
	}
	if r.Next() {
		t.Fatal("corrupt record should stop iteration")
	}
	if !errors.Is(r.Err(), ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", r.Err())
	}
}
