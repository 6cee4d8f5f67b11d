package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{Secret: "test-secret", Issuer: "rule-test"}

func TestIssueAndParse(t *testing.T) {
	token, err := Issue("user-1", time.Hour, testConfig)
	require.NoError(t, err)

	claims, err := Parse(token, testConfig)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestParseRejects(t *testing.T) {
	expired, err := Issue("user-1", -time.Minute, testConfig)
	require.NoError(t, err)
	otherIssuer, err := Issue("user-1", time.Hour, Config{Secret: testConfig.Secret, Issuer: "someone-else"})
	require.NoError(t, err)
	wrongSecret, err := Issue("user-1", time.Hour, Config{Secret: "other", Issuer: testConfig.Issuer})
	require.NoError(t, err)
	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "user-1",
		Issuer:  testConfig.Issuer,
	}).SignedString([]byte(testConfig.Secret))
	require.NoError(t, err)
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    testConfig.Issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testConfig.Secret))
	require.NoError(t, err)
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    testConfig.Issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testConfig.Secret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "  ", ErrMissingToken},
		{"garbage", "not-a-token", ErrInvalidToken},
		{"expired", expired, ErrInvalidToken},
		{"wrong issuer", otherIssuer, ErrInvalidToken},
		{"wrong secret", wrongSecret, ErrInvalidToken},
		{"no expiry", noExpiry, ErrInvalidToken},
		{"no subject", noSubject, ErrInvalidToken},
		{"other algorithm", hs512, ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.token, testConfig)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIssueRequiresSubjectAndSecret(t *testing.T) {
	_, err := Issue("", time.Hour, testConfig)
	assert.Error(t, err)
	_, err = Issue("user-1", time.Hour, Config{})
	assert.Error(t, err)
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	_, ok := FromContext(ctx)
	assert.False(t, ok)
	assert.Empty(t, UserID(ctx))

	ctx = WithClaims(ctx, &Claims{Subject: "user-1"})
	assert.Equal(t, "user-1", UserID(ctx))
}

func TestMiddleware(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := NewMiddleware(testConfig, PublicPaths("/healthz")).Wrap(next)

	token, err := Issue("user-7", time.Hour, testConfig)
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		header   string
		wantCode int
		wantUser string
	}{
		{"valid token", "/v1/today", "Bearer " + token, http.StatusNoContent, "user-7"},
		{"lowercase scheme", "/v1/today", "bearer " + token, http.StatusNoContent, "user-7"},
		{"missing header", "/v1/today", "", http.StatusUnauthorized, ""},
		{"basic scheme", "/v1/today", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, ""},
		{"public path", "/healthz", "", http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantUser, seen)
			if tt.wantCode == http.StatusUnauthorized {
				assert.Contains(t, rr.Body.String(), `"error":"unauthenticated"`)
			}
		})
	}
}
