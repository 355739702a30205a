package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	apperrors "jobboard-api/internal/common/errors"
	"jobboard-api/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, full_name, password_hash, user_type, created_at`

func (r *UserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1`, id), id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE username = $1`, username), username)
}

func (r *UserRepository) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, full_name, password_hash, user_type, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at`,
		user.Username, user.Email, user.FullName, user.PasswordHash, string(user.Type),
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("username or email already taken")
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET email = $1, full_name = $2
		WHERE id = $3`,
		user.Email, user.FullName, user.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NewNotFoundError("user", user.ID)
	}
	return nil
}

func (r *UserRepository) scanUser(row *sql.Row, ref interface{}) (*models.User, error) {
	var user models.User
	var fullName sql.NullString
	var userType string

	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &fullName,
		&user.PasswordHash, &userType, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user", ref)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	user.FullName = fullName.String
	user.Type = models.UserType(userType)
	return &user, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
