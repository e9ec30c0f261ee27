package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/AnthoniusHendriyanto/user-service/internal/auth/domain UserRepository

import "context"

// UserRepository is the credential store. Lookups return (nil, nil) when no
// row matches; mutations on a missing row return errors.ErrUserNotFound.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, skip, limit int) ([]*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int64) error

	// WithinTx runs fn against a repository bound to a single transaction.
	// The transaction is committed when fn returns nil and rolled back
	// otherwise.
	WithinTx(ctx context.Context, fn func(repo UserRepository) error) error
}
