package postgres

import (
	"context"
	"errors"

	"github.com/AnthoniusHendriyanto/user-service/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/user-service/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxIface is the subset of pgx used by the repository. *pgxpool.Pool,
// pgx.Tx and pgxmock all satisfy it.
type PgxIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

const uniqueViolation = "23505"

const (
	sqlSelectByID = `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
		LIMIT 1;`

	sqlSelectByEmail = `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
		LIMIT 1;`

	sqlList = `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		ORDER BY id
		OFFSET $1 LIMIT $2;`

	sqlInsert = `
		INSERT INTO users (name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;`

	sqlUpdate = `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, updated_at = $5
		WHERE id = $1;`

	sqlDelete = `DELETE FROM users WHERE id = $1;`
)

type PostgresRepository struct {
	db PgxIface
}

var _ domain.UserRepository = (*PostgresRepository)(nil)

func NewPostgresRepository(db PgxIface) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, sqlSelectByID, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, sqlSelectByEmail, email)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRow(ctx, query, arg).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(err)
	}
	return &user, nil
}

func (r *PostgresRepository) List(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	rows, err := r.db.Query(ctx, sqlList, skip, limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0, limit)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, mapError(err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return users, nil
}

// Create inserts user and stores the assigned identifier back on it.
func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, sqlInsert,
		user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt).
		Scan(&user.ID)
	if err != nil {
		return mapEmailError(err, user.Email)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *domain.User) error {
	tag, err := r.db.Exec(ctx, sqlUpdate,
		user.ID, user.Name, user.Email, user.PasswordHash, user.UpdatedAt)
	if err != nil {
		return mapEmailError(err, user.Email)
	}
	if tag.RowsAffected() == 0 {
		return autherror.UserNotFound(user.ID)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, sqlDelete, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return autherror.UserNotFound(id)
	}
	return nil
}

func (r *PostgresRepository) WithinTx(ctx context.Context, fn func(repo domain.UserRepository) error) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return mapError(err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if cerr := tx.Commit(ctx); cerr != nil {
			err = mapError(cerr)
		}
	}()

	return fn(&PostgresRepository{db: tx})
}

// mapError keeps domain errors as they are and reports everything else coming
// out of the driver as a storage outage.
func mapError(err error) error {
	var de *autherror.DomainError
	if errors.As(err, &de) {
		return err
	}
	return autherror.StorageUnavailable(err)
}

// mapEmailError additionally turns a unique violation on users.email into
// ErrEmailExists. This is the backstop for two writers racing past the
// service's existence check.
func mapEmailError(err error, email string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return autherror.EmailExists(email)
	}
	return mapError(err)
}
