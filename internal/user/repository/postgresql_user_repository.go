// Package repository provides PostgreSQL persistence for the user aggregate.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/userhub/userhub/internal/database"
	"github.com/userhub/userhub/internal/kernel"
	"github.com/userhub/userhub/internal/user/domain"
)

const userColumns = `id, user_name, email, full_name, password_hash, correlation_id,
			  created_on, created_by, updated_on, updated_by, is_deleted`

// PostgreSQLUserRepository persists users. Every read filters out
// soft-deleted rows; writes enlist in the transaction carried by the
// context when called inside a unit-of-work save.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

// Insert writes a new user row. A unique-index violation on user_name or
// email is the authoritative uniqueness check and maps to the same conflict
// error the pre-check uses.
func (r *PostgreSQLUserRepository) Insert(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (` + userColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := querier.ExecContext(ctx, query,
		user.ID(),
		user.UserName().Value(),
		user.Email().Value(),
		user.FullName(),
		user.PasswordHash(),
		user.CorrelationID(),
		user.CreatedOn(),
		user.CreatedBy(),
		user.UpdatedOn(),
		user.UpdatedBy(),
		user.IsDeleted(),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrUserNameOrEmailAlreadyInUse
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// Update rewrites the mutable columns of an existing user row, including
// the soft-delete flag.
func (r *PostgreSQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users
			  SET user_name = $2, email = $3, full_name = $4, password_hash = $5,
				  updated_on = $6, updated_by = $7, is_deleted = $8
			  WHERE id = $1`

	res, err := querier.ExecContext(ctx, query,
		user.ID(),
		user.UserName().Value(),
		user.Email().Value(),
		user.FullName(),
		user.PasswordHash(),
		user.UpdatedOn(),
		user.UpdatedBy(),
		user.IsDeleted(),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrUserNameOrEmailAlreadyInUse
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// GetByID retrieves a non-deleted user by id.
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND is_deleted = FALSE`
	return r.getOne(ctx, query, id)
}

// GetByEmail retrieves a non-deleted user by email.
func (r *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND is_deleted = FALSE`
	return r.getOne(ctx, query, email)
}

// GetByUserName retrieves a non-deleted user by username.
func (r *PostgreSQLUserRepository) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_name = $1 AND is_deleted = FALSE`
	return r.getOne(ctx, query, userName)
}

// GetByEmailOrUserName retrieves a non-deleted user matching either field.
// Used by the register pre-check; absence surfaces as ErrUserNotFound.
func (r *PostgreSQLUserRepository) GetByEmailOrUserName(ctx context.Context, email, userName string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
			  WHERE (email = $1 OR user_name = $2) AND is_deleted = FALSE`
	return r.getOne(ctx, query, email, userName)
}

// List retrieves all non-deleted users.
func (r *PostgreSQLUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE is_deleted = FALSE ORDER BY created_on`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

func (r *PostgreSQLUserRepository) getOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	user, err := scanUser(querier.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		id            uuid.UUID
		userName      string
		email         string
		fullName      string
		passwordHash  string
		correlationID uuid.UUID
		createdOn     time.Time
		createdBy     string
		updatedOn     time.Time
		updatedBy     string
		isDeleted     bool
	)

	err := row.Scan(
		&id, &userName, &email, &fullName, &passwordHash, &correlationID,
		&createdOn, &createdBy, &updatedOn, &updatedBy, &isDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	userNameVO := domain.NewUserName(userName)
	if userNameVO.IsFailure() {
		return nil, fmt.Errorf("corrupt user row %s: %v", id, userNameVO.Err())
	}
	emailVO := domain.NewEmail(email)
	if emailVO.IsFailure() {
		return nil, fmt.Errorf("corrupt user row %s: %v", id, emailVO.Err())
	}

	entity := kernel.RestoreEntity(id, createdOn, createdBy, updatedOn, updatedBy, isDeleted)
	return domain.RestoreUser(entity, userNameVO.Value(), emailVO.Value(), fullName, passwordHash, correlationID), nil
}
