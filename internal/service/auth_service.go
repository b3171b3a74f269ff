package service

import (
	"context"
	"errors"
	"fmt"

	"messagely/internal/model"
	"messagely/internal/repository"
	"messagely/internal/utils"
)

var (
	ErrInvalidInput       = errors.New("username and password must not be empty")
	ErrDuplicateUsername  = errors.New("user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthService owns registration and credential verification
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, username, password string) (bool, error)
	UpdateLoginTimestamp(ctx context.Context, username string) error
}

type authService struct {
	userRepo repository.UserRepository
	hasher   *utils.PasswordHasher
	jwtUtil  *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, hasher *utils.PasswordHasher, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		jwtUtil:  jwtUtil,
	}
}

// Register creates a new user account and returns it with a signed token.
// The insert sets join_at and last_login_at together, which also covers the
// login-timestamp side effect of registration.
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error) {
	if req.Username == "" || req.Password == "" {
		return nil, "", ErrInvalidInput
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hashedPassword,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, "", ErrDuplicateUsername
		}
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}

	token, err := s.jwtUtil.GenerateToken(user.Username)
	if err != nil {
		return user, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials, mints a token, and records the login time.
// The timestamp update runs exactly once, only after verification succeeds.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	if username == "" || password == "" {
		return nil, "", ErrInvalidInput
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		s.hasher.CheckDummy(password) // keep unknown-user timing close to wrong-password timing
		return nil, "", ErrInvalidCredentials
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.userRepo.UpdateLoginTimestamp(ctx, username); err != nil {
		return nil, "", fmt.Errorf("failed to update login timestamp: %w", err)
	}

	return user, token, nil
}

// Authenticate reports whether the username/password pair is valid. Unknown
// usernames and wrong passwords both yield false without an error; only
// store failures surface as errors.
func (s *authService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		s.hasher.CheckDummy(password)
		return false, nil
	}
	return s.hasher.Check(password, user.PasswordHash), nil
}

// UpdateLoginTimestamp advances last_login_at for the user; a nonexistent
// username is a silent no-op
func (s *authService) UpdateLoginTimestamp(ctx context.Context, username string) error {
	return s.userRepo.UpdateLoginTimestamp(ctx, username)
}
