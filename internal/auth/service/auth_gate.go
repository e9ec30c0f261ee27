package service

import (
	"context"
	"errors"
	"strings"

	"github.com/AnthoniusHendriyanto/user-service/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/user-service/internal/errors"
)

type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AuthGate resolves an Authorization header to a user.
//
// The outcomes are:
//   - (nil, nil): no bearer token was presented.
//   - (user, nil): the token is valid and its subject still exists.
//   - ErrInvalidToken: the token failed verification or its subject is gone.
//   - ErrStorageUnavailable: the lookup itself failed.
//
// Tokens are never revoked, so a deleted user is rejected only because the
// subject is looked up again on every request.
type AuthGate struct {
	tokens TokenGenerator
	users  UserLookup
}

func NewAuthGate(tokens TokenGenerator, users UserLookup) *AuthGate {
	return &AuthGate{tokens: tokens, users: users}
}

func (g *AuthGate) Resolve(ctx context.Context, authorization string) (*domain.User, error) {
	token, ok := BearerToken(authorization)
	if !ok {
		return nil, nil
	}

	subject, err := g.tokens.Verify(token)
	if err != nil {
		return nil, autherror.InvalidToken(err)
	}

	user, err := g.users.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, autherror.ErrUserNotFound) {
			return nil, autherror.InvalidToken(err)
		}
		return nil, err
	}
	if user == nil {
		return nil, autherror.InvalidToken(autherror.ErrUserNotFound)
	}
	return user, nil
}

// BearerToken extracts the credentials of a "Bearer <token>" header. The
// scheme is case-insensitive.
func BearerToken(header string) (string, bool) {
	scheme, param, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	param = strings.TrimSpace(param)
	if param == "" {
		return "", false
	}
	return param, true
}
