// Package apierrors defines the error outcomes reported to API callers.
//
// Every constructor returns an oops error carrying one of the codes below and
// a public message that is safe to show to the caller. Transports translate
// the code into an HTTP status or gRPC code with HTTPStatus and GRPCCode.
package apierrors

import (
	"fmt"
	"net/http"

	"github.com/samber/oops"
	"google.golang.org/grpc/codes"
)

const (
	CodeValidationFailure     = "VALIDATION_FAILURE"
	CodeConflict              = "CONFLICT"
	CodeNotFound              = "NOT_FOUND"
	CodeAuthenticationFailure = "AUTHENTICATION_FAILURE"
	CodeAuthorizationFailure  = "AUTHORIZATION_FAILURE"
	CodeCorruptCredential     = "CORRUPT_CREDENTIAL"
	CodeStoreUnavailable      = "STORE_UNAVAILABLE"
	CodeInternal              = "INTERNAL"
)

const (
	msgInvalidCredentials = "invalid email or password"
	msgInvalidToken       = "missing or invalid authorization token"
	msgInternal           = "internal server error"
	msgUnavailable        = "service temporarily unavailable"

	publicKey = "public"
)

// NewValidationFailure reports a malformed request body.
func NewValidationFailure(detail string) error {
	return oops.
		Code(CodeValidationFailure).
		With(publicKey, detail).
		Errorf("validation failed: %s", detail)
}

// NewEmailTaken reports a registration with an email that is already in use.
func NewEmailTaken(email string) error {
	return oops.
		Code(CodeConflict).
		With("email", email).
		With(publicKey, "email is already taken").
		Errorf("account with email %s already exists", email)
}

// NewVersionConflict reports an edit made against a stale salon version.
func NewVersionConflict(resource string, expected int64) error {
	return oops.
		Code(CodeConflict).
		With("resource", resource, "expected_version", expected).
		With(publicKey, resource+" was modified concurrently, reload and retry").
		Errorf("%s version %d is stale", resource, expected)
}

// NewNotFound reports an unknown account or resource.
func NewNotFound(resource string, id any) error {
	return oops.
		Code(CodeNotFound).
		With("resource", resource, "id", id).
		With(publicKey, resource+" not found").
		Errorf("%s %v not found", resource, id)
}

// NewAuthenticationFailure is the single outcome of a failed login.
func NewAuthenticationFailure() error {
	return oops.
		Code(CodeAuthenticationFailure).
		With(publicKey, msgInvalidCredentials).
		Errorf("authentication failed")
}

// NewInvalidToken reports a missing, malformed, expired or revoked token.
func NewInvalidToken() error {
	return oops.
		Code(CodeAuthenticationFailure).
		With(publicKey, msgInvalidToken).
		Errorf("invalid authorization token")
}

// NewAuthorizationFailure reports an authenticated caller acting on a
// resource they do not own.
func NewAuthorizationFailure(action string) error {
	return oops.
		Code(CodeAuthorizationFailure).
		With("action", action).
		With(publicKey, "you are not allowed to "+action).
		Errorf("not allowed to %s", action)
}

// NewCorruptCredential reports an account that has no usable credential.
func NewCorruptCredential(accountID any, err error) error {
	b := oops.
		Code(CodeCorruptCredential).
		With("account_id", accountID)
	if err != nil {
		return b.Wrapf(err, "credential of account %v is unusable", accountID)
	}
	return b.Errorf("account %v has no credential", accountID)
}

// NewStoreUnavailable wraps a failure of a storage collaborator.
func NewStoreUnavailable(operation string, err error) error {
	return oops.
		Code(CodeStoreUnavailable).
		With("operation", operation).
		With(publicKey, msgUnavailable).
		Wrapf(err, "failed to %s", operation)
}

// Code returns the outcome code of err, or CodeInternal when err does not
// carry one.
func Code(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return CodeInternal
	}
	code := fmt.Sprint(oopsErr.Code())
	switch code {
	case CodeValidationFailure, CodeConflict, CodeNotFound, CodeAuthenticationFailure,
		CodeAuthorizationFailure, CodeCorruptCredential, CodeStoreUnavailable:
		return code
	default:
		return CodeInternal
	}
}

// PublicMessage returns the message that may be shown to the caller.
func PublicMessage(err error) string {
	switch Code(err) {
	case CodeInternal:
		return msgInternal
	case CodeCorruptCredential:
		return msgInternal
	}
	oopsErr, _ := oops.AsOops(err)
	if msg, ok := oopsErr.Context()[publicKey].(string); ok && msg != "" {
		return msg
	}
	return msgInternal
}

// HTTPStatus maps err to a response status.
func HTTPStatus(err error) int {
	switch Code(err) {
	case CodeValidationFailure:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAuthenticationFailure:
		return http.StatusUnauthorized
	case CodeAuthorizationFailure:
		return http.StatusForbidden
	case CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GRPCCode maps err to a gRPC status code.
func GRPCCode(err error) codes.Code {
	switch Code(err) {
	case CodeValidationFailure:
		return codes.InvalidArgument
	case CodeConflict:
		return codes.AlreadyExists
	case CodeNotFound:
		return codes.NotFound
	case CodeAuthenticationFailure:
		return codes.Unauthenticated
	case CodeAuthorizationFailure:
		return codes.PermissionDenied
	case CodeStoreUnavailable:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}
