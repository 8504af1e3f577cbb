// Package grpcserver serves the log over gRPC: appends against the
// process's single writer, and read-only inspection of any log file by
// path. Inspection never opens a file for write, so it is safe next to a
// live appender.
package grpcserver

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "keel/api/pb"
	"keel/wal"
)

type Server struct {
	pb.UnimplementedLogServiceServer
	writer *wal.Writer // nil for inspection-only servers
	opts   wal.Options
	logger *zap.Logger
}

// NewServer builds a LogService around writer, which may be nil when the
// server should only inspect.
func NewServer(writer *wal.Writer, opts wal.Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{writer: writer, opts: opts, logger: logger}
}

// Append durably appends the payload and returns its offset. The response
// is only sent after the record is flushed.
func (s *Server) Append(ctx context.Context, req *pb.AppendRequest) (*pb.AppendResponse, error) {
	if s.writer == nil {
		return nil, status.Error(codes.FailedPrecondition, "server is inspection-only")
	}

	offset, err := s.writer.Append(req.GetPayload())
	if err != nil {
		switch {
		case errors.Is(err, wal.ErrPayloadTooLarge):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		case errors.Is(err, wal.ErrClosed):
			return nil, status.Error(codes.Unavailable, err.Error())
		default:
			return nil, err
		}
	}
	return &pb.AppendResponse{Offset: offset}, nil
}

// Stats runs a recovery scan and reports how many records are intact, the
// safe offset, and why the scan stopped.
func (s *Server) Stats(ctx context.Context, req *pb.StatsRequest) (*pb.StatsResponse, error) {
	res, err := wal.Scan(req.GetPath(), s.opts)
	if err != nil {
		return nil, err
	}

	s.logger.Info("stats request served",
		zap.String("path", req.GetPath()),
		zap.Int("records", len(res.Records)),
		zap.String("outcome", res.Outcome.String()))

	return &pb.StatsResponse{
		Records:    uint64(len(res.Records)),
		SafeOffset: res.SafeOffset,
		Outcome:    res.Outcome.String(),
	}, nil
}

// Scan streams every valid record in the log at the requested path.
func (s *Server) Scan(req *pb.ScanRequest, stream pb.LogService_ScanServer) error {
	r, err := wal.OpenReader(req.GetPath(), s.opts)
	if err != nil {
		return err
	}
	defer r.Close()

	for r.Next() {
		rec := r.Record()
		if err := stream.Send(toEntry(rec)); err != nil {
			return err
		}
	}
	if err := r.Err(); err != nil {
		// the stream delivered everything before the bad record; the tail
		// condition itself is worth logging, not failing the RPC
		s.logger.Warn("scan stream stopped early",
			zap.String("path", req.GetPath()),
			zap.Error(err))
	}
	return nil
}

// --- converters ---

func toEntry(rec *wal.Record) *pb.RecordEntry {
	return &pb.RecordEntry{
		Offset:  rec.Offset,
		Payload: rec.Payload,
	}
}
