package rest

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/forohub/internal/common"
	"github.com/dmitrijs2005/forohub/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// throughFilter mounts a handler behind the filter alone and reports what it saw.
func throughFilter(t *testing.T, ts *testServer, method, path, header string) (reached bool, userName string, rec *httptest.ResponseRecorder) {
	t.Helper()
	r := gin.New()
	r.Use(ts.authenticate())
	r.Handle(method, path, func(c *gin.Context) {
		reached = true
		if u, ok := auth.UserFromContext(c.Request.Context()); ok {
			userName = u.UserName
		}
		c.Status(http.StatusTeapot)
	})

	req := httptest.NewRequest(method, path, nil)
	if header != "" {
		req.Header.Set(common.AuthorizationHeaderName, header)
	}
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return reached, userName, rec
}

func TestAuthenticate_NeverShortCircuits(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantUser string
	}{
		{"no header", "", ""},
		{"not bearer", "Basic Zm9vOmJhcg==", ""},
		{"empty bearer", "Bearer ", ""},
		{"invalid token", "Bearer garbage", ""},
		{"valid token", "Bearer " + aliceToken, "alice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			reached, user, rec := throughFilter(t, ts, http.MethodGet, "/topics", tt.header)

			assert.True(t, reached)
			assert.Equal(t, tt.wantUser, user)
			assert.Equal(t, http.StatusTeapot, rec.Code)
		})
	}
}

func TestAuthenticate_SkipsPublicRoutes(t *testing.T) {
	ts := newTestServer(t)
	reached, user, _ := throughFilter(t, ts, http.MethodPost, "/login", "Bearer "+aliceToken)

	assert.True(t, reached)
	assert.Empty(t, user)
	assert.Zero(t, ts.resolver.calls)
}

func TestAuthenticate_StoreFailureLeavesRequestUnauthenticated(t *testing.T) {
	ts := newTestServer(t)
	ts.resolver.err = errors.New("connection refused")

	reached, user, _ := throughFilter(t, ts, http.MethodGet, "/topics", "Bearer other")
	assert.True(t, reached)
	assert.Empty(t, user)
}

func TestAuthorize(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/topics", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())

	rec = ts.do(http.MethodGet, "/topics", "", "forged")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(http.MethodGet, "/topics", "", aliceToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	// unknown routes are protected too
	rec = ts.do(http.MethodGet, "/admin", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = ts.do(http.MethodGet, "/admin", "", aliceToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/v3/api-docs", "", "")
	generated := rec.Header().Get(common.RequestIDHeaderName)
	require.NotEmpty(t, generated)

	req := httptest.NewRequest(http.MethodGet, "/v3/api-docs", nil)
	req.Header.Set(common.RequestIDHeaderName, "abc-123")
	rec = httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(common.RequestIDHeaderName))
}

func TestBearerToken(t *testing.T) {
	tok, ok := bearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	_, ok = bearerToken("bearer abc")
	assert.False(t, ok)
	_, ok = bearerToken("Bearer   ")
	assert.False(t, ok)
}
