// AngelaMos | 2026
// handler_test.go

package site_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/diveadmin/internal/core"
	"github.com/driftline/diveadmin/internal/middleware"
	"github.com/driftline/diveadmin/internal/site"
)

// stubVerifier resolves bearer tokens to fixed claims so the real
// authenticator and role gate run in front of the handler.
type stubVerifier struct {
	claims map[string]*middleware.AccessTokenClaims
}

func (s *stubVerifier) VerifyAccessToken(
	_ context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	c, ok := s.claims[token]
	if !ok {
		return nil, core.ErrTokenInvalid
	}
	return c, nil
}

func newTestRouter(t *testing.T) (chi.Router, *fakeRepo) {
	t.Helper()

	verifier := &stubVerifier{claims: map[string]*middleware.AccessTokenClaims{
		"admin-token": {UserID: "user-admin", Username: "boss", Role: "admin"},
		"member-token": {
			UserID:   "user-member",
			Username: "reefdiver",
			Role:     "user",
		},
	}}

	repo := newFakeRepo()
	r := chi.NewRouter()
	site.NewHandler(site.NewService(repo)).RegisterRoutes(
		r,
		middleware.Authenticator(verifier),
		middleware.RequireAdmin,
	)

	return r, repo
}

func doRequest(
	t *testing.T,
	router chi.Router,
	method, path, token, body string,
) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateSiteRequiresAdmin(t *testing.T) {
	router, repo := newTestRouter(t)

	body := `{"name":"Silfra Rift","location":"Iceland"}`

	rec := doRequest(t, router, http.MethodPost, "/dive-sites", "member-token", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, repo.sites)

	rec = doRequest(t, router, http.MethodPost, "/dive-sites", "admin-token", body)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, repo.sites, 1)
}

func TestCreateSiteRequiresToken(t *testing.T) {
	router, repo := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/dive-sites", "",
		`{"name":"Silfra Rift","location":"Iceland"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, repo.sites)
}

func TestSiteWritesAdminGated(t *testing.T) {
	router, repo := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/dive-sites", "admin-token",
		`{"name":"Blue Hole","location":"Belize"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.Data.ID)

	rec = doRequest(t, router, http.MethodPut,
		"/dive-sites/"+created.Data.ID, "member-token",
		`{"location":"Lighthouse Reef"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, router, http.MethodDelete,
		"/dive-sites/"+created.Data.ID, "member-token", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Len(t, repo.sites, 1)
}

func TestAdminCreatedSiteVisibleToMembers(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/dive-sites", "admin-token",
		`{"name":"Blue Hole","location":"Belize"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/dive-sites", "member-token", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Blue Hole")
}
