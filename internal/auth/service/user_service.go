package service

import (
	"context"
	"time"

	"github.com/AnthoniusHendriyanto/user-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/user-service/internal/auth/dto"
	autherror "github.com/AnthoniusHendriyanto/user-service/internal/errors"
	"github.com/AnthoniusHendriyanto/user-service/internal/logging"
	authconstant "github.com/AnthoniusHendriyanto/user-service/pkg/constant"
)

type UserService struct {
	repo   domain.UserRepository
	hasher PasswordHasher
	tokens TokenGenerator
	logger logging.Logger
	now    func() time.Time
}

func NewUserService(repo domain.UserRepository, hasher PasswordHasher, tokens TokenGenerator, logger logging.Logger) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a user. The email check and the insert share one
// transaction; the unique index catches writers that race past the check.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	var created *domain.User
	err = s.repo.WithinTx(ctx, func(tx domain.UserRepository) error {
		existing, err := tx.GetByEmail(ctx, input.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return autherror.EmailExists(input.Email)
		}

		now := s.now()
		user := &domain.User{
			Name:         input.Name,
			Email:        input.Email,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Create(ctx, user); err != nil {
			return err
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "user_id", created.ID)
	return created, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.UserNotFound(id)
	}
	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.UserNotFoundByEmail(email)
	}
	return user, nil
}

// List returns users in insertion order.
func (s *UserService) List(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	return s.repo.List(ctx, skip, limit)
}

// Update applies the supplied fields only. Changing the email to the user's
// current address is not a conflict.
func (s *UserService) Update(ctx context.Context, id int64, input dto.UpdateUserInput) (*domain.User, error) {
	var newHash string
	if input.Password != nil && *input.Password != "" {
		h, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		newHash = h
	}

	var updated *domain.User
	err := s.repo.WithinTx(ctx, func(tx domain.UserRepository) error {
		user, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return autherror.UserNotFound(id)
		}

		if input.Email != nil && *input.Email != "" && *input.Email != user.Email {
			existing, err := tx.GetByEmail(ctx, *input.Email)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != user.ID {
				return autherror.EmailExists(*input.Email)
			}
			user.Email = *input.Email
		}
		if input.Name != nil && *input.Name != "" {
			user.Name = *input.Name
		}
		if newHash != "" {
			user.PasswordHash = newHash
		}
		user.UpdatedAt = s.now()

		if err := tx.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "user deleted", "user_id", id)
	return nil
}

// Authenticate returns nil without an error when the email is unknown or the
// password does not match, so callers cannot tell the two apart.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.logger.Warn(ctx, "stored password hash rejected", "user_id", user.ID, "error", err)
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	user, err := s.Authenticate(ctx, input.Identifier(), input.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrInvalidCredentials
	}

	ttl := s.tokens.AccessTokenTTL()
	token, _, err := s.tokens.Issue(user.Email, ttl)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   authconstant.DefaultTokenType,
		ExpiresIn:   int(ttl.Seconds()),
	}, nil
}
