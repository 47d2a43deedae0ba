package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lunch-voting-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser(staff bool) *models.User {
	return &models.User{ID: "6f1c2b7e-0000-4000-8000-000000000001", Username: "alice", Email: "alice@example.com", IsStaff: staff}
}

func TestIssueAndParseTokens(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Hour, 24*time.Hour)

	pair, err := ti.IssueTokens(testUser(true))
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	claims, err := ti.Parse(pair.Access, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IsStaff)
	assert.Equal(t, claims.UserID, claims.Subject)

	_, err = ti.Parse(pair.Refresh, AccessToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = ti.Parse(pair.Access, RefreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestParse_Rejects(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Hour, time.Hour)
	pair, err := ti.IssueTokens(testUser(false))
	require.NoError(t, err)

	t.Run("other secret", func(t *testing.T) {
		other := NewTokenIssuer("not-the-secret", time.Hour, time.Hour)
		_, err := other.Parse(pair.Access, AccessToken)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		late := NewTokenIssuer("secret", time.Hour, time.Hour)
		late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := late.Parse(pair.Access, AccessToken)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("none algorithm", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "x", Type: AccessToken})
		s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = ti.Parse(s, AccessToken)
		assert.Error(t, err)
	})
}

func newAuthRouter(ti *TokenIssuer, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{AuthRequired(ti)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		who := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"user_id": who.UserID, "username": who.Username})
	})
	r.GET("/private", chain...)
	return r
}

func TestAuthRequired(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Hour, time.Hour)
	pair, err := ti.IssueTokens(testUser(false))
	require.NoError(t, err)
	r := newAuthRouter(ti)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusForbidden},
		{"wrong scheme", "Basic abc", http.StatusForbidden},
		{"garbage token", "Bearer not.a.jwt", http.StatusForbidden},
		{"refresh token", "Bearer " + pair.Refresh, http.StatusForbidden},
		{"valid", "Bearer " + pair.Access, http.StatusOK},
		{"lower-case scheme", "bearer " + pair.Access, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.want == http.StatusForbidden {
				assert.Equal(t, false, body["success"])
				assert.Contains(t, body, "msg")
				assert.Contains(t, body, "data")
			} else {
				assert.Equal(t, "alice", body["username"])
			}
		})
	}
}

func TestStaffRequired(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Hour, time.Hour)
	r := newAuthRouter(ti, StaffRequired())

	for _, staff := range []bool{false, true} {
		pair, err := ti.IssueTokens(testUser(staff))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+pair.Access)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if staff {
			assert.Equal(t, http.StatusOK, w.Code)
		} else {
			assert.Equal(t, http.StatusForbidden, w.Code)
		}
	}
}

func TestCORS_Preflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
