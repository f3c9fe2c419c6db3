// Package response writes JSON and problem+json bodies.
package response

import (
	"encoding/json"
	"net/http"

	apicontext "github.com/saloonbook/saloon-server/internal/api/context"
	"github.com/saloonbook/saloon-server/internal/api/dto"
	"github.com/saloonbook/saloon-server/internal/apierrors"
)

// ProblemContentType is the media type of error bodies.
const ProblemContentType = "application/problem+json"

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteProblem writes an error body tagged with the request id.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, code, detail string) {
	w.Header().Set("Content-Type", ProblemContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.Problem{
		Title:     http.StatusText(status),
		Status:    status,
		Detail:    detail,
		Code:      code,
		RequestID: apicontext.RequestID(r.Context()),
	})
}

// WriteError maps a service error to its status and public message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	WriteProblem(w, r, apierrors.HTTPStatus(err), apierrors.Code(err), apierrors.PublicMessage(err))
}
