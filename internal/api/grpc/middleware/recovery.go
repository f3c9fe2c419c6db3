package middleware

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/saloonbook/saloon-server/internal/logger"
)

// RecoveryOption turns a panic in a handler into an Internal status and
// logs it.
func RecoveryOption(logger *logger.Logger) recovery.Option {
	return recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
		logger.Error("gRPC handler panicked",
			"panic", fmt.Sprint(p))
		return status.Error(codes.Internal, "internal server error")
	})
}
