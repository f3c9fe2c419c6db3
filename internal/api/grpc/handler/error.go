package handler

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/saloonbook/saloon-server/internal/apierrors"
)

// handleError converts a service error into a status carrying only the
// public message.
func handleError(err error) error {
	return status.Error(apierrors.GRPCCode(err), apierrors.PublicMessage(err))
}

func errUnauthenticated() error {
	return status.Error(codes.Unauthenticated, "missing or invalid authorization token")
}
