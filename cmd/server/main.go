package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"keel/api/grpcserver"
	pb "keel/api/pb"
	"keel/cursor"
	"keel/infra/kafka"
	"keel/jobs/shipper"
	"keel/wal"
)

func main() {
	var (
		logPath    = flag.String("log", "./keel.wal", "log file path")
		cursorDir  = flag.String("cursors", "./keel-cursors", "cursor store directory")
		grpcAddr   = flag.String("grpc", ":7420", "gRPC listen address")
		brokers    = flag.String("brokers", "", "comma-separated Kafka brokers (empty disables shipping)")
		topic      = flag.String("topic", "keel.records", "Kafka topic for shipped records")
		alertTopic = flag.String("alert-topic", "keel.alerts", "Kafka topic for corruption alerts")
		maxPayload = flag.Int("max-payload", wal.DefaultMaxPayloadSize, "maximum payload size in bytes")
	)
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	opts := wal.Options{MaxPayloadSize: *maxPayload, Logger: logger}

	// ---------------- Recovery ----------------

	// Scan before opening for write so a corrupt outcome can be alerted;
	// Open re-runs the same scan and truncates the unverified tail.
	res, err := wal.Scan(*logPath, opts)
	if err != nil {
		logger.Fatal("recovery scan failed", zap.Error(err))
	}
	logger.Info("recovery scan",
		zap.String("log", *logPath),
		zap.Int("records", len(res.Records)),
		zap.Int64("safe_offset", res.SafeOffset),
		zap.String("outcome", res.Outcome.String()))

	if res.Outcome == wal.OutcomeCorrupt && *brokers != "" {
		alerts := kafka.NewProducer(strings.Split(*brokers, ","), *alertTopic)
		err := alerts.SendCorruptionAlert(context.Background(), kafka.CorruptionAlert{
			Path:       *logPath,
			SafeOffset: res.SafeOffset,
			Records:    len(res.Records),
		})
		if err != nil {
			logger.Error("corruption alert failed", zap.Error(err))
		}
		_ = alerts.Close()
	}

	// ---------------- Writer ----------------

	w, err := wal.Open(*logPath, opts)
	if err != nil {
		logger.Fatal("wal open failed", zap.Error(err))
	}
	defer w.Close()

	// ---------------- Cursors ----------------

	cursors, err := cursor.Open(*cursorDir)
	if err != nil {
		logger.Fatal("cursor store open failed", zap.Error(err))
	}
	defer cursors.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---------------- Shipper ----------------

	if *brokers != "" {
		ship, err := shipper.New(cursors, strings.Split(*brokers, ","), shipper.Config{
			LogPath: *logPath,
			Topic:   *topic,
			WAL:     opts,
			Logger:  logger,
		})
		if err != nil {
			logger.Fatal("shipper init failed", zap.Error(err))
		}
		defer ship.Close()
		ship.Start(ctx)
	}

	// ---------------- gRPC ----------------

	lis, err := net.Listen("tcp", *grpcAddr)
	if err != nil {
		logger.Fatal("listen failed", zap.String("addr", *grpcAddr), zap.Error(err))
	}
	srv := grpc.NewServer()
	pb.RegisterLogServiceServer(srv, grpcserver.NewServer(w, opts, logger))

	go func() {
		logger.Info("serving", zap.String("addr", *grpcAddr))
		if err := srv.Serve(lis); err != nil {
			logger.Error("grpc serve stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.GracefulStop()
}
