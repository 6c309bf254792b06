package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/sitechat"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Compile-time interface verification.
var _ sitechat.UserService = (*UserService)(nil)

// UserService implements sitechat.UserService using SQLite.
// Passwords are stored as bcrypt hashes and never leave this package.
type UserService struct {
	db *DB
}

// NewUserService creates a new UserService.
func NewUserService(db *DB) *UserService {
	return &UserService{db: db}
}

// CreateUser registers a new user with the given credentials.
func (s *UserService) CreateUser(ctx context.Context, email, password string) (*sitechat.User, error) {
	if email == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "email required")
	}
	if password == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "password required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &sitechat.User{
		ID:        uuid.New().String(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`, user.ID, user.Email, string(hash), user.CreatedAt.Format(time.RFC3339))

	if err != nil {
		if isUniqueViolation(err) {
			return nil, sitechat.Errorf(sitechat.ECONFLICT, "email already registered")
		}
		return nil, err
	}

	return user, nil
}

// Authenticate verifies credentials and returns the matching user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*sitechat.User, error) {
	if email == "" || password == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "email and password required")
	}

	var user sitechat.User
	var hash, createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = ?
	`, email).Scan(&user.ID, &user.Email, &hash, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, sitechat.Errorf(sitechat.EUNAUTHORIZED, "Invalid credentials")
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, sitechat.Errorf(sitechat.EUNAUTHORIZED, "Invalid credentials")
	}

	user.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return &user, nil
}

// FindUserByID retrieves a user by ID.
func (s *UserService) FindUserByID(ctx context.Context, id string) (*sitechat.User, error) {
	var user sitechat.User
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, created_at
		FROM users
		WHERE id = ?
	`, id).Scan(&user.ID, &user.Email, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, sitechat.Errorf(sitechat.ENOTFOUND, "user not found")
	}
	if err != nil {
		return nil, err
	}

	user.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return &user, nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
