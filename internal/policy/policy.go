// Package policy decides whether an authenticated account may mutate a
// resource.
package policy

import (
	"strings"

	"github.com/google/uuid"

	"github.com/saloonbook/saloon-server/internal/apierrors"
)

// Authorize allows the call only when callerID owns the resource.
func Authorize(callerID, ownerID uuid.UUID, action string) error {
	if callerID == uuid.Nil || callerID != ownerID {
		return apierrors.NewAuthorizationFailure(action)
	}
	return nil
}

// AuthorizeClaim checks an owner id supplied by the caller in a request body.
// An empty claim is derived from callerID. A claim naming any other account
// is denied. The returned id is the one to persist.
func AuthorizeClaim(callerID uuid.UUID, claimedOwner string, action string) (uuid.UUID, error) {
	if callerID == uuid.Nil {
		return uuid.Nil, apierrors.NewAuthorizationFailure(action)
	}
	claimedOwner = strings.TrimSpace(claimedOwner)
	if claimedOwner == "" {
		return callerID, nil
	}
	ownerID, err := uuid.Parse(claimedOwner)
	if err != nil || ownerID != callerID {
		return uuid.Nil, apierrors.NewAuthorizationFailure(action)
	}
	return ownerID, nil
}
