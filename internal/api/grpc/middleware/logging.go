package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/saloonbook/saloon-server/internal/logger"
	"github.com/saloonbook/saloon-server/internal/metrics"
)

// Logging is a unary interceptor that logs gRPC requests and counts their
// results.
type Logging struct {
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewLogging creates a new Logging middleware. metrics may be nil.
func NewLogging(logger *logger.Logger, metrics *metrics.Metrics) *Logging {
	return &Logging{logger: logger, metrics: metrics}
}

// HandleGRPC logs method name, duration and status for each unary request.
func (l *Logging) HandleGRPC(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()

	l.logger.Debug("gRPC request started",
		"method", info.FullMethod)

	resp, err := handler(ctx, req)

	duration := time.Since(start)

	// status.Code reports Unknown for errors that carry no status.
	statusCode := status.Code(err)

	l.metrics.GRPCRequest(info.FullMethod, statusCode.String())

	l.logger.Info("gRPC request completed",
		"method", info.FullMethod,
		"duration_ms", duration.Milliseconds(),
		"status", statusCode.String())

	if err != nil {
		l.logger.Error("gRPC request failed",
			"method", info.FullMethod,
			"error", err.Error(),
			"status", statusCode.String())
	}

	return resp, err
}
