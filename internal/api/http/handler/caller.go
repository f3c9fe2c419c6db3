package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/saloonbook/saloon-server/internal/api/http/response"
	"github.com/saloonbook/saloon-server/internal/apierrors"
	"github.com/saloonbook/saloon-server/internal/model"
)

// callerID returns the authenticated account of the request. On failure it
// has already written a 401 response.
func callerID(w http.ResponseWriter, r *http.Request, cm model.ContextManager) (uuid.UUID, bool) {
	id, ok := cm.GetAccountIDFromContext(r.Context())
	if !ok {
		response.WriteProblem(w, r, http.StatusUnauthorized, apierrors.CodeAuthenticationFailure,
			"missing or invalid authorization token")
		return uuid.Nil, false
	}
	return id, true
}
