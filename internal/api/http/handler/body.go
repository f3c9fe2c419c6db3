package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/saloonbook/saloon-server/internal/api/http/response"
	"github.com/saloonbook/saloon-server/internal/apierrors"
)

// MaxJSONBodyBytes limits JSON request bodies.
const MaxJSONBodyBytes int64 = 1 << 20

// readBody reads at most limit bytes of the request body. On failure it has
// already written the response and returns false.
func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.WriteProblem(w, r, http.StatusRequestEntityTooLarge, apierrors.CodeValidationFailure,
				"request body is too large")
			return nil, false
		}
		response.WriteProblem(w, r, http.StatusBadRequest, apierrors.CodeValidationFailure,
			"failed to read request body")
		return nil, false
	}
	return body, true
}
