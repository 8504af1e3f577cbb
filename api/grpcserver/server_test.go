package grpcserver

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"google.golang.org/grpc"

	pb "keel/api/pb"
	"keel/wal"
)

func writeLog(t *testing.T, payloads [][]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keel.wal")
	w, err := wal.Open(path, wal.Options{})
	if err != nil {
		t.Fatalf("open wal: %v", err)
	}
	for _, p := range payloads {
		if _, err := w.Append(p); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return path
}

func TestServer_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keel.wal")
	w, err := wal.Open(path, wal.Options{MaxPayloadSize: 32})
	if err != nil {
		t.Fatalf("open wal: %v", err)
	}
	defer w.Close()

	s := NewServer(w, wal.Options{MaxPayloadSize: 32}, nil)

	resp, err := s.Append(context.Background(), &pb.AppendRequest{Payload: []byte("hello")})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if resp.GetOffset() != 0 {
		t.Fatalf("first record at offset %d, want 0", resp.GetOffset())
	}

	if _, err := s.Append(context.Background(), &pb.AppendRequest{Payload: make([]byte, 33)}); err == nil {
		t.Fatal("oversized payload should be rejected")
	}

	res, err := wal.Scan(path, wal.Options{MaxPayloadSize: 32})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Records) != 1 || !bytes.Equal(res.Records[0].Payload, []byte("hello")) {
		t.Fatalf("unexpected log contents: %+v", res.Records)
	}
}

func TestServer_AppendInspectionOnly(t *testing.T) {
	s := NewServer(nil, wal.Options{}, nil)
	if _, err := s.Append(context.Background(), &pb.AppendRequest{Payload: []byte("x")}); err == nil {
		t.Fatal("append on inspection-only server should fail")
	}
}

func TestServer_Stats(t *testing.T) {
	path := writeLog(t, [][]byte{[]byte("a"), []byte("bb")})

	s := NewServer(nil, wal.Options{}, nil)
	resp, err := s.Stats(context.Background(), &pb.StatsRequest{Path: path})
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if resp.GetRecords() != 2 {
		t.Fatalf("records = %d, want 2", resp.GetRecords())
	}
	if resp.GetOutcome() != "clean" {
		t.Fatalf("outcome = %q, want clean", resp.GetOutcome())
	}
	if resp.GetSafeOffset() == 0 {
		t.Fatal("safe offset should be past the records")
	}
}

// fakeScanStream captures streamed entries without a real transport.
type fakeScanStream struct {
	grpc.ServerStream
	entries []*pb.RecordEntry
}

func (f *fakeScanStream) Send(e *pb.RecordEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

func TestServer_ScanStreamsRecords(t *testing.T) {
	payloads := [][]byte{[]byte("one"), []byte("two"), []byte("three")}
	path := writeLog(t, payloads)

	s := NewServer(nil, wal.Options{}, nil)
	stream := &fakeScanStream{}
	if err := s.Scan(&pb.ScanRequest{Path: path}, stream); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(stream.entries) != len(payloads) {
		t.Fatalf("streamed %d entries, want %d", len(stream.entries), len(payloads))
	}
	for i, e := range stream.entries {
		if !bytes.Equal(e.GetPayload(), payloads[i]) {
			t.Fatalf("entry %d: %q, want %q", i, e.GetPayload(), payloads[i])
		}
	}
}
