package service

import (
	"context"
	"errors"
	"fmt"

	"messagely/internal/model"
	"messagely/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// UserService provides profile and message-thread reads
type UserService interface {
	GetProfile(ctx context.Context, username string) (*model.User, error)
	ListProfiles(ctx context.Context) ([]model.UserSummary, error)
	MessagesSentBy(ctx context.Context, username string) ([]model.SentMessage, error)
	MessagesReceivedBy(ctx context.Context, username string) ([]model.ReceivedMessage, error)
}

type userService struct {
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, messageRepo repository.MessageRepository) UserService {
	return &userService{userRepo: userRepo, messageRepo: messageRepo}
}

// GetProfile returns the full profile for a username
func (s *userService) GetProfile(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ListProfiles returns basic info on all users
func (s *userService) ListProfiles(ctx context.Context) ([]model.UserSummary, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return users, nil
}

// MessagesSentBy returns messages the user sent, annotated with recipients
func (s *userService) MessagesSentBy(ctx context.Context, username string) ([]model.SentMessage, error) {
	if err := s.ensureExists(ctx, username); err != nil {
		return nil, err
	}
	messages, err := s.messageRepo.FindSentBy(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get sent messages: %w", err)
	}
	return messages, nil
}

// MessagesReceivedBy returns messages the user received, annotated with senders
func (s *userService) MessagesReceivedBy(ctx context.Context, username string) ([]model.ReceivedMessage, error) {
	if err := s.ensureExists(ctx, username); err != nil {
		return nil, err
	}
	messages, err := s.messageRepo.FindReceivedBy(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get received messages: %w", err)
	}
	return messages, nil
}

func (s *userService) ensureExists(ctx context.Context, username string) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}
