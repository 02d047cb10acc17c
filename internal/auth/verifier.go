package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/crud-backends/internal/config"
)

// KeySource resolves RSA verification keys by key id.
type KeySource interface {
	KeyForKid(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

// Verifier checks bearer tokens: signature, expiry, audience, issuer, then permission.
type Verifier struct {
	algorithm string
	lookup    func(ctx context.Context, token *jwt.Token) (any, error)
	issuer    string
	audience  string
	leeway    time.Duration
	now       func() time.Time
}

// VerifierOption tweaks a Verifier.
type VerifierOption func(*Verifier)

// WithLeeway allows clock skew when checking exp and nbf.
func WithLeeway(d time.Duration) VerifierOption {
	return func(v *Verifier) { v.leeway = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) VerifierOption {
	return func(v *Verifier) { v.now = now }
}

// NewHS256Verifier verifies tokens signed with a shared secret.
func NewHS256Verifier(secret []byte, issuer, audience string, opts ...VerifierOption) *Verifier {
	return newVerifier(jwt.SigningMethodHS256.Alg(), func(context.Context, *jwt.Token) (any, error) {
		return secret, nil
	}, issuer, audience, opts)
}

// NewRS256Verifier verifies tokens whose header kid names a key in keys.
func NewRS256Verifier(keys KeySource, issuer, audience string, opts ...VerifierOption) *Verifier {
	return newVerifier(jwt.SigningMethodRS256.Alg(), func(ctx context.Context, token *jwt.Token) (any, error) {
		kid, ok := token.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, errors.New("missing kid")
		}
		return keys.KeyForKid(ctx, kid)
	}, issuer, audience, opts)
}

// ErrVerifierMisconfigured means the verifier has no issuer or audience to match tokens against.
var ErrVerifierMisconfigured = errors.New("token verifier requires an issuer and an audience")

// NewVerifier builds the verifier selected by cfg.Mode.
func NewVerifier(cfg config.AuthConfig) (*Verifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := []VerifierOption{WithLeeway(cfg.Leeway())}
	switch cfg.Mode {
	case config.AuthModeHS256:
		return NewHS256Verifier([]byte(cfg.JWTSecret), cfg.Issuer, cfg.Audience, opts...), nil
	case config.AuthModeRS256:
		keys := NewJWKSCache(cfg.JWKSURL, cfg.JWKSTTL(), nil)
		return NewRS256Verifier(keys, cfg.Issuer, cfg.Audience, opts...), nil
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Mode)
	}
}

func newVerifier(alg string, lookup func(context.Context, *jwt.Token) (any, error), issuer, audience string, opts []VerifierOption) *Verifier {
	v := &Verifier{algorithm: alg, lookup: lookup, issuer: issuer, audience: audience, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify validates raw and, when required is non-empty, checks it is in the permission set.
// Rejections are *AuthError; a key source outage or a verifier without issuer and audience is
// returned as a plain error.
func (v *Verifier) Verify(ctx context.Context, raw, required string) (*Claims, error) {
	if v.issuer == "" || v.audience == "" {
		return nil, ErrVerifierMisconfigured
	}
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{v.algorithm}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(v.now),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return v.lookup(ctx, token)
	}, parserOpts...)
	if err != nil {
		if errors.Is(err, ErrKeySourceUnavailable) {
			return nil, err
		}
		return nil, classify(err)
	}
	if !token.Valid {
		return nil, unauthorized(CodeInvalidToken, "unable to verify token", nil)
	}

	if required != "" && !claims.HasPermission(required) {
		return nil, forbidden(fmt.Sprintf("permission %q not granted", required))
	}
	return claims, nil
}

func classify(err error) *AuthError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return unauthorized(CodeTokenExpired, "token expired", err)
	case errors.Is(err, jwt.ErrTokenInvalidAudience),
		errors.Is(err, jwt.ErrTokenInvalidIssuer),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing),
		errors.Is(err, jwt.ErrTokenNotValidYet),
		errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return unauthorized(CodeInvalidClaims, "incorrect claims, check the audience and issuer", err)
	default:
		return unauthorized(CodeInvalidToken, "unable to parse or verify token", err)
	}
}

// ExtractBearer returns the token of a "Bearer <token>" Authorization header value.
func ExtractBearer(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", unauthorized(CodeHeaderMissing, "authorization header is expected", nil)
	}
	parts := strings.Fields(header)
	switch {
	case !strings.EqualFold(parts[0], "Bearer"):
		return "", unauthorized(CodeInvalidHeader, "authorization header must start with Bearer", nil)
	case len(parts) == 1:
		return "", unauthorized(CodeInvalidHeader, "token not found", nil)
	case len(parts) > 2:
		return "", unauthorized(CodeInvalidHeader, "authorization header must be a bearer token", nil)
	}
	return parts[1], nil
}
