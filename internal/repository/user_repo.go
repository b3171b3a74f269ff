package repository

import (
	"context"
	"errors"
	"fmt"

	"messagely/internal/model"

	"github.com/jackc/pgx/v5"
)

// ErrDuplicateUsername is returned when an insert collides with an
// existing username. The users primary key is the single arbiter of
// uniqueness, so racing registrations resolve to exactly one winner.
var ErrDuplicateUsername = errors.New("username already taken")

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.UserSummary, error)
	UpdateLoginTimestamp(ctx context.Context, username string) error
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user row, letting the database assign join_at and
// last_login_at from its own clock
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (username, password, first_name, last_name, phone, join_at, last_login_at)
            VALUES ($1, $2, $3, $4, $5, current_timestamp, current_timestamp)
            RETURNING join_at, last_login_at`
	err := r.db.QueryRow(ctx, sql, user.Username, user.PasswordHash, user.FirstName, user.LastName, user.Phone).
		Scan(&user.JoinAt, &user.LastLoginAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByUsername retrieves a user by their username
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT username, password, first_name, last_name, phone, join_at, last_login_at
            FROM users WHERE username = $1`
	err := r.db.QueryRow(ctx, sql, username).Scan(
		&user.Username, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.Phone, &user.JoinAt, &user.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found is not an error for this method's contract, service layer handles it
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

// FindAll retrieves basic info on all users
func (r *userRepository) FindAll(ctx context.Context) ([]model.UserSummary, error) {
	sql := `SELECT username, first_name, last_name, phone FROM users ORDER BY username`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.UserSummary
	for rows.Next() {
		var u model.UserSummary
		if err := rows.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// UpdateLoginTimestamp sets last_login_at to now. Updating a nonexistent
// username is a silent no-op; callers that need an existence guarantee
// must check separately.
func (r *userRepository) UpdateLoginTimestamp(ctx context.Context, username string) error {
	sql := `UPDATE users SET last_login_at = current_timestamp WHERE username = $1`
	_, err := r.db.Exec(ctx, sql, username)
	if err != nil {
		return fmt.Errorf("failed to update login timestamp: %w", err)
	}
	return nil
}
