package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/AnthoniusHendriyanto/user-service/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	autherror "github.com/AnthoniusHendriyanto/user-service/internal/errors"
	"github.com/golang-jwt/jwt/v5"
)

type TokenGenerator interface {
	// Issue signs a token for subject that expires after ttl.
	Issue(subject string, ttl time.Duration) (string, time.Time, error)
	// Verify returns the subject of a valid token.
	Verify(tokenString string) (string, error)
	// AccessTokenTTL is the configured lifetime of access tokens.
	AccessTokenTTL() time.Duration
}

type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

var _ TokenGenerator = (*TokenService)(nil)

// NewTokenService builds an HMAC token service. algorithm must be one of
// HS256, HS384 or HS512.
func NewTokenService(secret, algorithm string, ttl time.Duration) (*TokenService, error) {
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	return &TokenService{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithClock returns a copy of ts that reads the time from now.
func (ts *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *ts
	cp.now = now
	return &cp
}

func (ts *TokenService) AccessTokenTTL() time.Duration {
	return ts.ttl
}

func (ts *TokenService) Issue(subject string, ttl time.Duration) (string, time.Time, error) {
	now := ts.now()
	expiresAt := now.Add(ttl)

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(ts.method, claims).SignedString(ts.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the signature, the algorithm and the expiry of tokenString.
// Failures are reported as ErrTokenExpired, ErrTokenSignatureInvalid or
// ErrTokenMalformed.
func (ts *TokenService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{ts.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ts.now),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return ts.secret, nil
	})
	if err != nil {
		return "", classifyTokenError(err)
	}
	if !token.Valid {
		return "", autherror.ErrTokenMalformed
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", autherror.ErrTokenMalformed)
	}
	return claims.Subject, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", autherror.ErrTokenSignatureInvalid, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", autherror.ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", autherror.ErrTokenMalformed, err)
	}
}
