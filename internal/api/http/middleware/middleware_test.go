package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apicontext "github.com/saloonbook/saloon-server/internal/api/context"
	"github.com/saloonbook/saloon-server/internal/api/dto"
	"github.com/saloonbook/saloon-server/internal/apierrors"
	"github.com/saloonbook/saloon-server/internal/metrics"
	"github.com/saloonbook/saloon-server/internal/mocks"
	"github.com/saloonbook/saloon-server/internal/model"
	logtest "github.com/saloonbook/saloon-server/internal/testutil"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = apicontext.RequestID(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "abc")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
	assert.Equal(t, w.Header().Get(RequestIDHeader), seen)
}

func TestRecoverer(t *testing.T) {
	t.Parallel()

	h := RequestID(Recoverer(logtest.MakeNoopLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var p dto.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, apierrors.CodeInternal, p.Code)
	assert.Equal(t, w.Header().Get(RequestIDHeader), p.RequestID)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestLogging_RecordsRouteTemplate(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	logging := NewLogging(logtest.MakeNoopLogger(), m)

	r := mux.NewRouter()
	r.Use(logging.Handle)
	r.HandleFunc("/api/saloons/get/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodGet)

	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/saloons/get/"+uuid.NewString(), nil))
	}

	count, err := testutil.GatherAndCount(reg, "saloon_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "path parameters must not create new series")
}

func TestAuthenticate_Handle(t *testing.T) {
	t.Parallel()

	claims := model.TokenClaims{AccountID: uuid.New(), JTI: "jti"}

	tests := []struct {
		name       string
		header     string
		wantToken  string
		authErr    error
		wantStatus int
	}{
		{name: "no header", wantToken: "", authErr: apierrors.NewInvalidToken(), wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantToken: "", authErr: apierrors.NewInvalidToken(), wantStatus: http.StatusUnauthorized},
		{name: "revoked token", header: "Bearer old", wantToken: "old", authErr: apierrors.NewInvalidToken(), wantStatus: http.StatusUnauthorized},
		{name: "deny-list unavailable", header: "Bearer tok", wantToken: "tok", authErr: apierrors.NewStoreUnavailable("check revoked token", assert.AnError), wantStatus: http.StatusServiceUnavailable},
		{name: "valid token", header: "bearer tok", wantToken: "tok", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			auth := mocks.NewAuthenticator(t)
			if tt.authErr != nil {
				auth.On("Authenticate", mock.Anything, tt.wantToken).Return(model.TokenClaims{}, tt.authErr).Once()
			} else {
				auth.On("Authenticate", mock.Anything, tt.wantToken).Return(claims, nil).Once()
			}

			m := NewAuthenticate(auth, apicontext.NewManager(), logtest.MakeNoopLogger())
			h := m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, ok := apicontext.NewManager().GetClaimsFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, claims, got)
				w.WriteHeader(http.StatusNoContent)
			}))

			r := httptest.NewRequest(http.MethodGet, "/api/saloons/get", nil).WithContext(context.Background())
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.authErr != nil {
				assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
