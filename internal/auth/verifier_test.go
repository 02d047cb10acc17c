package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/crud-backends/internal/config"
)

const (
	testSecret   = "test-secret"
	testIssuer   = "https://tenant.example.com/"
	testAudience = "coffee"
)

func hsToken(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims(permissions ...string) *Claims {
	now := time.Now()
	return &Claims{
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "barista|1",
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func requireAuthError(t *testing.T, err error, code ErrorCode, status int) {
	t.Helper()
	var authErr *AuthError
	require.True(t, errors.As(err, &authErr), "expected *AuthError, got %v", err)
	assert.Equal(t, code, authErr.Code)
	assert.Equal(t, status, authErr.Status)
}

func TestVerifier_HS256(t *testing.T) {
	v := NewHS256Verifier([]byte(testSecret), testIssuer, testAudience)
	ctx := context.Background()

	t.Run("valid token with permission", func(t *testing.T) {
		claims, err := v.Verify(ctx, hsToken(t, testSecret, validClaims("get:drinks-detail")), "get:drinks-detail")
		require.NoError(t, err)
		assert.Equal(t, "barista|1", claims.Subject)
		assert.True(t, claims.HasPermission("get:drinks-detail"))
	})

	t.Run("no permission required", func(t *testing.T) {
		_, err := v.Verify(ctx, hsToken(t, testSecret, validClaims()), "")
		assert.NoError(t, err)
	})

	t.Run("missing permission", func(t *testing.T) {
		_, err := v.Verify(ctx, hsToken(t, testSecret, validClaims("get:drinks-detail")), "delete:drinks")
		requireAuthError(t, err, CodeForbidden, http.StatusForbidden)
	})

	t.Run("no permissions claim", func(t *testing.T) {
		_, err := v.Verify(ctx, hsToken(t, testSecret, validClaims()), "post:drinks")
		requireAuthError(t, err, CodeForbidden, http.StatusForbidden)
	})

	t.Run("expired", func(t *testing.T) {
		claims := validClaims("get:drinks-detail")
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		_, err := v.Verify(ctx, hsToken(t, testSecret, claims), "get:drinks-detail")
		requireAuthError(t, err, CodeTokenExpired, http.StatusUnauthorized)
	})

	t.Run("missing exp", func(t *testing.T) {
		claims := validClaims("get:drinks-detail")
		claims.ExpiresAt = nil
		_, err := v.Verify(ctx, hsToken(t, testSecret, claims), "get:drinks-detail")
		requireAuthError(t, err, CodeInvalidClaims, http.StatusUnauthorized)
	})

	t.Run("wrong signature", func(t *testing.T) {
		_, err := v.Verify(ctx, hsToken(t, "other-secret", validClaims("get:drinks-detail")), "get:drinks-detail")
		requireAuthError(t, err, CodeInvalidToken, http.StatusUnauthorized)
	})

	t.Run("wrong audience", func(t *testing.T) {
		claims := validClaims("get:drinks-detail")
		claims.Audience = jwt.ClaimStrings{"trivia"}
		_, err := v.Verify(ctx, hsToken(t, testSecret, claims), "get:drinks-detail")
		requireAuthError(t, err, CodeInvalidClaims, http.StatusUnauthorized)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := validClaims("get:drinks-detail")
		claims.Issuer = "https://evil.example.com/"
		_, err := v.Verify(ctx, hsToken(t, testSecret, claims), "get:drinks-detail")
		requireAuthError(t, err, CodeInvalidClaims, http.StatusUnauthorized)
	})

	t.Run("unexpected algorithm", func(t *testing.T) {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS384, validClaims("get:drinks-detail")).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = v.Verify(ctx, signed, "get:drinks-detail")
		requireAuthError(t, err, CodeInvalidToken, http.StatusUnauthorized)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify(ctx, "not.a.jwt", "get:drinks-detail")
		requireAuthError(t, err, CodeInvalidToken, http.StatusUnauthorized)
	})
}

func TestVerifier_Leeway(t *testing.T) {
	now := time.Now()
	claims := validClaims()
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(-10 * time.Second))
	token := hsToken(t, testSecret, claims)

	strict := NewHS256Verifier([]byte(testSecret), testIssuer, testAudience)
	_, err := strict.Verify(context.Background(), token, "")
	requireAuthError(t, err, CodeTokenExpired, http.StatusUnauthorized)

	lenient := NewHS256Verifier([]byte(testSecret), testIssuer, testAudience, WithLeeway(time.Minute))
	_, err = lenient.Verify(context.Background(), token, "")
	assert.NoError(t, err)
}

func TestVerifier_Clock(t *testing.T) {
	token := hsToken(t, testSecret, validClaims())
	future := func() time.Time { return time.Now().Add(2 * time.Hour) }

	v := NewHS256Verifier([]byte(testSecret), testIssuer, testAudience, WithClock(future))
	_, err := v.Verify(context.Background(), token, "")
	requireAuthError(t, err, CodeTokenExpired, http.StatusUnauthorized)
}

type jwksServer struct {
	*httptest.Server
	hits atomic.Int32
	down atomic.Bool
}

func newJWKSServer(t *testing.T, kid string, pub *rsa.PublicKey) *jwksServer {
	t.Helper()
	s := &jwksServer{}
	body, err := json.Marshal(map[string]any{
		"keys": []map[string]string{{
			"kty": "RSA",
			"kid": kid,
			"use": "sig",
			"alg": "RS256",
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}},
	})
	require.NoError(t, err)
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.hits.Add(1)
		if s.down.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(s.Close)
	return s
}

func rsToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestVerifier_RS256WithJWKS(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	server := newJWKSServer(t, "key-1", &key.PublicKey)

	v := NewRS256Verifier(NewJWKSCache(server.URL, time.Minute, server.Client()), testIssuer, testAudience)
	ctx := context.Background()

	claims, err := v.Verify(ctx, rsToken(t, key, "key-1", validClaims("patch:drinks")), "patch:drinks")
	require.NoError(t, err)
	assert.Equal(t, []string{"patch:drinks"}, claims.Permissions)

	_, err = v.Verify(ctx, rsToken(t, key, "key-1", validClaims("patch:drinks")), "patch:drinks")
	require.NoError(t, err)
	assert.Equal(t, int32(1), server.hits.Load(), "keys should be cached between requests")

	t.Run("unknown kid", func(t *testing.T) {
		_, err := v.Verify(ctx, rsToken(t, key, "key-2", validClaims("patch:drinks")), "patch:drinks")
		requireAuthError(t, err, CodeInvalidToken, http.StatusUnauthorized)
	})

	t.Run("signed by another key", func(t *testing.T) {
		other, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		_, err = v.Verify(ctx, rsToken(t, other, "key-1", validClaims("patch:drinks")), "patch:drinks")
		requireAuthError(t, err, CodeInvalidToken, http.StatusUnauthorized)
	})

	t.Run("hs256 token rejected", func(t *testing.T) {
		_, err := v.Verify(ctx, hsToken(t, testSecret, validClaims("patch:drinks")), "patch:drinks")
		requireAuthError(t, err, CodeInvalidToken, http.StatusUnauthorized)
	})
}

func TestVerifier_RS256KeySourceDown(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	v := NewRS256Verifier(NewJWKSCache(server.URL, time.Minute, server.Client()), testIssuer, testAudience)
	_, err = v.Verify(context.Background(), rsToken(t, key, "key-1", validClaims()), "")

	assert.ErrorIs(t, err, ErrKeySourceUnavailable)
	var authErr *AuthError
	assert.False(t, errors.As(err, &authErr))
}

func TestNewVerifier(t *testing.T) {
	v, err := NewVerifier(config.AuthConfig{Mode: config.AuthModeHS256, JWTSecret: testSecret, Issuer: testIssuer, Audience: testAudience})
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), hsToken(t, testSecret, validClaims()), "")
	assert.NoError(t, err)

	v, err = NewVerifier(config.AuthConfig{
		Mode:     config.AuthModeRS256,
		JWKSURL:  "http://127.0.0.1:0/jwks.json",
		Issuer:   testIssuer,
		Audience: testAudience,
	})
	require.NoError(t, err)
	assert.Equal(t, jwt.SigningMethodRS256.Alg(), v.algorithm)

	_, err = NewVerifier(config.AuthConfig{Mode: "plain"})
	assert.Error(t, err)
}

func TestNewVerifier_RequiresClaimSettings(t *testing.T) {
	tests := map[string]config.AuthConfig{
		"hs256 without audience": {Mode: config.AuthModeHS256, JWTSecret: testSecret, Issuer: testIssuer},
		"hs256 without issuer":   {Mode: config.AuthModeHS256, JWTSecret: testSecret, Audience: testAudience},
		"hs256 without secret":   {Mode: config.AuthModeHS256, Issuer: testIssuer, Audience: testAudience},
		"rs256 without audience": {Mode: config.AuthModeRS256, JWKSURL: "https://tenant.example.com/.well-known/jwks.json", Issuer: testIssuer},
		"rs256 without issuer":   {Mode: config.AuthModeRS256, JWKSURL: "https://tenant.example.com/.well-known/jwks.json", Audience: testAudience},
	}
	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			v, err := NewVerifier(cfg)
			assert.Error(t, err)
			assert.Nil(t, v)
		})
	}
}

func TestVerifier_FailsClosedWithoutIssuerOrAudience(t *testing.T) {
	foreign := validClaims("delete:drinks")
	foreign.Issuer = "https://evil.example/"
	foreign.Audience = jwt.ClaimStrings{"some-other-api"}
	raw := hsToken(t, testSecret, foreign)

	for _, v := range []*Verifier{
		NewHS256Verifier([]byte(testSecret), "", testAudience),
		NewHS256Verifier([]byte(testSecret), testIssuer, ""),
		NewHS256Verifier([]byte(testSecret), "", ""),
	} {
		_, err := v.Verify(context.Background(), raw, "delete:drinks")
		assert.ErrorIs(t, err, ErrVerifierMisconfigured)
		var authErr *AuthError
		assert.False(t, errors.As(err, &authErr))
	}

	_, err := NewHS256Verifier([]byte(testSecret), testIssuer, testAudience).Verify(context.Background(), raw, "delete:drinks")
	requireAuthError(t, err, CodeInvalidClaims, http.StatusUnauthorized)
}

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		name   string
		header string
		token  string
		code   ErrorCode
	}{
		{"missing", "", "", CodeHeaderMissing},
		{"blank", "   ", "", CodeHeaderMissing},
		{"basic scheme", "Basic dXNlcjpwYXNz", "", CodeInvalidHeader},
		{"no token", "Bearer", "", CodeInvalidHeader},
		{"extra parts", "Bearer a b", "", CodeInvalidHeader},
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", ""},
		{"lowercase scheme", "bearer abc.def.ghi", "abc.def.ghi", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := ExtractBearer(tt.header)
			if tt.code == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.token, token)
				return
			}
			requireAuthError(t, err, tt.code, http.StatusUnauthorized)
		})
	}
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, testIssuer, testAudience, time.Hour)
	token, expiresAt, err := issuer.GenerateToken("manager|1", []string{"post:drinks", "delete:drinks"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	v := NewHS256Verifier([]byte(testSecret), testIssuer, testAudience)
	claims, err := v.Verify(context.Background(), token, "delete:drinks")
	require.NoError(t, err)
	assert.Equal(t, "manager|1", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestAuthError_DomainError(t *testing.T) {
	de := forbidden("permission \"post:drinks\" not granted").DomainError()

	assert.Equal(t, http.StatusForbidden, de.HTTPStatus)
	assert.Equal(t, "forbidden", de.Code)
	assert.Equal(t, "forbidden", de.Message)
	assert.Contains(t, de.Details["description"], "post:drinks")
}
