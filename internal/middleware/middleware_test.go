package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/01moynul/bales-storefront/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("middleware-secret")

type fakeRoles struct {
	admins map[string]bool
	err    error
}

func (f fakeRoles) HasRole(_ context.Context, userID, role string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return role == RoleAdmin && f.admins[userID], nil
}

func newRouter(roles RoleChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AuthMiddleware(secret), AdminMiddleware(roles), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID")})
	})
	return r
}

func call(t *testing.T, r http.Handler, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(secret, userID, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAdminAccess(t *testing.T) {
	r := newRouter(fakeRoles{admins: map[string]bool{"admin-1": true}})

	tests := []struct {
		name    string
		header  string
		want    int
		message string
	}{
		{"no header", "", http.StatusForbidden, "Authorization header is required"},
		{"not bearer", "Basic abc", http.StatusForbidden, "Authorization header is required"},
		{"garbage token", "Bearer nope", http.StatusForbidden, "Invalid or expired token"},
		{"not admin", bearer(t, "shopper-1"), http.StatusForbidden, "Access denied: admin role required"},
		{"admin", bearer(t, "admin-1"), http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, r, tt.header)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusForbidden {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, false, body["success"])
				assert.Equal(t, tt.message, body["error"])
			}
		})
	}
}

func TestAdminRoleLookupFailure(t *testing.T) {
	r := newRouter(fakeRoles{err: errors.New("db down")})
	rec := call(t, r, bearer(t, "admin-1"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}
