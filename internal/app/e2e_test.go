package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/saloonbook/saloon-server/internal/api/dto"
	"github.com/saloonbook/saloon-server/internal/apierrors"
	"github.com/saloonbook/saloon-server/internal/app"
	"github.com/saloonbook/saloon-server/internal/config"
	"github.com/saloonbook/saloon-server/internal/testutil"
)

func memoryConfig() *config.Config {
	return &config.Config{
		HTTP:     config.HTTP{Port: "0", MaxUploadBytes: 1 << 20},
		Database: config.Database{Driver: config.DriverMemory},
		KDF:      config.KDF{Time: 1, MemKiB: 8 * 1024, Par: 1},
		JWT:      config.JWT{KeyID: "v1", Secret: "e2e-secret", TTL: time.Hour},
		Sweep:    config.Sweep{Interval: time.Minute},
	}
}

// client issues JSON requests against the test server.
type client struct {
	base string
}

func (c client) do(method, path, token string, body any) *http.Response {
	GinkgoHelper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	Expect(err).NotTo(HaveOccurred())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(resp.Body.Close)
	return resp
}

func decode[T any](resp *http.Response) T {
	GinkgoHelper()

	var v T
	Expect(json.NewDecoder(resp.Body).Decode(&v)).To(Succeed())
	return v
}

func subjectOf(token string) string {
	GinkgoHelper()

	claims := &jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	Expect(err).NotTo(HaveOccurred())
	return claims.Subject
}

func expectProblem(resp *http.Response, status int, code string) {
	GinkgoHelper()

	Expect(resp).To(HaveHTTPStatus(status))
	Expect(resp).To(HaveHTTPHeaderWithValue("Content-Type", "application/problem+json"))
	Expect(decode[dto.Problem](resp).Code).To(Equal(code))
}

var _ = Describe("Saloon API", func() {
	var (
		api client
		srv *httptest.Server
	)

	BeforeEach(func() {
		a, err := app.New(context.Background(), memoryConfig(), testutil.MakeNoopLogger())
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(a.Close)

		srv = httptest.NewServer(a.Handler())
		DeferCleanup(srv.Close)
		api = client{base: srv.URL}
	})

	register := func(email, password, name string) dto.Registered {
		GinkgoHelper()

		resp := api.do(http.MethodPost, "/api/auth/register", "", map[string]string{
			"email": email, "password": password, "name": name,
		})
		Expect(resp).To(HaveHTTPStatus(http.StatusCreated))
		registered := decode[dto.Registered](resp)
		Expect(resp.Header.Get("Auth-Token")).To(Equal(registered.Token))
		return registered
	}

	salonBody := map[string]any{
		"name":     "Cuts",
		"address":  map[string]float64{"lat": 1.5, "lng": 2},
		"services": []string{"cut"},
		"pictures": []string{"front.png"},
	}

	Describe("the registration and ownership scenario", func() {
		It("authenticates, authorizes and deletes by owner only", func() {
			By("registering A")
			first := register("a@x.com", "secret1", "A")
			Expect(first.Token).NotTo(BeEmpty())
			Expect(first.Account.Email).To(Equal("a@x.com"))
			accountID := subjectOf(first.Token)
			Expect(accountID).To(Equal(first.Account.ID))

			By("logging in with the same credentials")
			resp := api.do(http.MethodPost, "/api/auth/login", "", map[string]string{
				"email": "a@x.com", "password": "secret1",
			})
			Expect(resp).To(HaveHTTPStatus(http.StatusOK))
			second := decode[dto.Token](resp)
			Expect(subjectOf(second.Token)).To(Equal(accountID))

			By("logging in with a wrong password")
			resp = api.do(http.MethodPost, "/api/auth/login", "", map[string]string{
				"email": "a@x.com", "password": "wrong1",
			})
			expectProblem(resp, http.StatusUnauthorized, apierrors.CodeAuthenticationFailure)

			By("creating a salon owned by A")
			body := map[string]any{"ownerId": accountID}
			for k, v := range salonBody {
				body[k] = v
			}
			resp = api.do(http.MethodPost, "/api/saloons/new", first.Token, body)
			Expect(resp).To(HaveHTTPStatus(http.StatusCreated))
			salon := decode[dto.Salon](resp)
			Expect(salon.OwnerID).To(Equal(accountID))

			By("deleting it as another account")
			other := register("b@x.com", "secret2", "B")
			resp = api.do(http.MethodDelete, "/api/saloons/delete", other.Token, map[string]string{"id": salon.ID})
			expectProblem(resp, http.StatusForbidden, apierrors.CodeAuthorizationFailure)

			resp = api.do(http.MethodGet, "/api/saloons/get/"+salon.ID, other.Token, nil)
			Expect(resp).To(HaveHTTPStatus(http.StatusOK))

			By("deleting it as the owner")
			resp = api.do(http.MethodDelete, "/api/saloons/delete", second.Token, map[string]string{"id": salon.ID})
			Expect(resp).To(HaveHTTPStatus(http.StatusNoContent))

			resp = api.do(http.MethodGet, "/api/saloons/get/"+salon.ID, first.Token, nil)
			expectProblem(resp, http.StatusNotFound, apierrors.CodeNotFound)
		})
	})

	Describe("registration", func() {
		It("rejects a duplicate email", func() {
			register("a@x.com", "secret1", "A")

			resp := api.do(http.MethodPost, "/api/auth/register", "", map[string]string{
				"email": "a@x.com", "password": "secret9", "name": "Again",
			})
			expectProblem(resp, http.StatusConflict, apierrors.CodeConflict)
		})

		It("rejects a short password", func() {
			resp := api.do(http.MethodPost, "/api/auth/register", "", map[string]string{
				"email": "a@x.com", "password": "abc", "name": "A",
			})
			expectProblem(resp, http.StatusBadRequest, apierrors.CodeValidationFailure)
		})

		It("answers an unknown email like a wrong password", func() {
			resp := api.do(http.MethodPost, "/api/auth/login", "", map[string]string{
				"email": "nobody@x.com", "password": "secret1",
			})
			expectProblem(resp, http.StatusUnauthorized, apierrors.CodeAuthenticationFailure)
		})
	})

	Describe("logout", func() {
		It("revokes only the presented token", func() {
			first := register("a@x.com", "secret1", "A")
			resp := api.do(http.MethodPost, "/api/auth/login", "", map[string]string{
				"email": "a@x.com", "password": "secret1",
			})
			second := decode[dto.Token](resp)

			resp = api.do(http.MethodPost, "/api/auth/logout", first.Token, nil)
			Expect(resp).To(HaveHTTPStatus(http.StatusNoContent))

			resp = api.do(http.MethodGet, "/api/saloons/get", first.Token, nil)
			expectProblem(resp, http.StatusUnauthorized, apierrors.CodeAuthenticationFailure)

			resp = api.do(http.MethodGet, "/api/saloons/get", second.Token, nil)
			Expect(resp).To(HaveHTTPStatus(http.StatusOK))
		})
	})

	Describe("profiles", func() {
		It("lets an account read and edit only itself", func() {
			a := register("a@x.com", "secret1", "A")
			b := register("b@x.com", "secret2", "B")

			resp := api.do(http.MethodGet, "/api/users/get/"+a.Account.ID, a.Token, nil)
			Expect(resp).To(HaveHTTPStatus(http.StatusOK))
			Expect(decode[dto.Account](resp).Name).To(Equal("A"))

			resp = api.do(http.MethodGet, "/api/users/get/"+a.Account.ID, b.Token, nil)
			expectProblem(resp, http.StatusForbidden, apierrors.CodeAuthorizationFailure)

			resp = api.do(http.MethodPut, "/api/users/edit", b.Token, map[string]string{"id": a.Account.ID, "name": "Mallory"})
			expectProblem(resp, http.StatusForbidden, apierrors.CodeAuthorizationFailure)

			resp = api.do(http.MethodPut, "/api/users/edit", a.Token, map[string]string{"id": a.Account.ID, "name": "Alice", "mobile": "+1"})
			Expect(resp).To(HaveHTTPStatus(http.StatusOK))
			edited := decode[dto.Account](resp)
			Expect(edited.Name).To(Equal("Alice"))
			Expect(edited.Email).To(Equal("a@x.com"))
		})
	})

	Describe("salon edits", func() {
		It("keeps the salon unchanged when a non-owner edits it", func() {
			owner := register("a@x.com", "secret1", "A")
			other := register("b@x.com", "secret2", "B")

			resp := api.do(http.MethodPost, "/api/saloons/new", owner.Token, salonBody)
			salon := decode[dto.Salon](resp)

			edit := map[string]any{"id": salon.ID, "version": salon.Version}
			for k, v := range salonBody {
				edit[k] = v
			}
			edit["name"] = "Stolen"
			resp = api.do(http.MethodPut, "/api/saloons/edit", other.Token, edit)
			expectProblem(resp, http.StatusForbidden, apierrors.CodeAuthorizationFailure)

			resp = api.do(http.MethodGet, "/api/saloons/get/"+salon.ID, owner.Token, nil)
			Expect(decode[dto.Salon](resp).Name).To(Equal("Cuts"))

			edit["name"] = "Cuts & Co"
			resp = api.do(http.MethodPut, "/api/saloons/edit", owner.Token, edit)
			Expect(resp).To(HaveHTTPStatus(http.StatusOK))
			updated := decode[dto.Salon](resp)
			Expect(updated.Name).To(Equal("Cuts & Co"))
			Expect(updated.Version).To(Equal(salon.Version + 1))

			By("replaying the stale version")
			resp = api.do(http.MethodPut, "/api/saloons/edit", owner.Token, edit)
			expectProblem(resp, http.StatusConflict, apierrors.CodeConflict)
		})
	})

	Describe("probes", func() {
		It("reports ready and exposes metrics", func() {
			Expect(api.do(http.MethodGet, "/healthz", "", nil)).To(HaveHTTPStatus(http.StatusOK))
			Expect(api.do(http.MethodGet, "/readyz", "", nil)).To(HaveHTTPStatus(http.StatusOK))

			register("a@x.com", "secret1", "A")
			resp := api.do(http.MethodGet, "/metrics", "", nil)
			Expect(resp).To(HaveHTTPStatus(http.StatusOK))
			Expect(resp).To(HaveHTTPBody(ContainSubstring(`saloon_auth_attempts_total{operation="register",outcome="success"} 1`)))
		})
	})
})
