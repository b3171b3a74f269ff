package service

import (
	"context"
	"errors"
	"fmt"

	"messagely/internal/model"
	"messagely/internal/repository"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrForbidden       = errors.New("forbidden: user does not have permission for this action")
)

// MessageService defines operations for messages
type MessageService interface {
	GetMessage(ctx context.Context, id int64, asUser string) (*model.MessageDetail, error)
	CreateMessage(ctx context.Context, fromUsername string, req model.CreateMessageRequest) (*model.Message, error)
	MarkMessageRead(ctx context.Context, id int64, asUser string) (*model.Message, error)
}

type messageService struct {
	repo repository.MessageRepository
}

// NewMessageService creates a new MessageService
func NewMessageService(repo repository.MessageRepository) MessageService {
	return &messageService{repo: repo}
}

// GetMessage returns a message; only its sender or recipient may view it
func (s *messageService) GetMessage(ctx context.Context, id int64, asUser string) (*model.MessageDetail, error) {
	message, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find message by ID: %w", err)
	}
	if message == nil {
		return nil, ErrMessageNotFound
	}

	if message.FromUser.Username != asUser && message.ToUser.Username != asUser {
		return nil, ErrForbidden
	}
	return message, nil
}

// CreateMessage sends a message from fromUsername to the named recipient
func (s *messageService) CreateMessage(ctx context.Context, fromUsername string, req model.CreateMessageRequest) (*model.Message, error) {
	message := &model.Message{
		FromUsername: fromUsername,
		ToUsername:   req.ToUsername,
		Body:         req.Body,
	}

	if err := s.repo.Create(ctx, message); err != nil {
		if errors.Is(err, repository.ErrUnknownRecipient) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create message in repo: %w", err)
	}
	return message, nil
}

// MarkMessageRead stamps read_at; only the recipient may mark a message read
func (s *messageService) MarkMessageRead(ctx context.Context, id int64, asUser string) (*model.Message, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find message for read receipt: %w", err)
	}
	if existing == nil {
		return nil, ErrMessageNotFound
	}
	if existing.ToUser.Username != asUser {
		return nil, ErrForbidden
	}

	updated, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to mark message read in repo: %w", err)
	}
	if updated == nil {
		return nil, ErrMessageNotFound
	}
	return updated, nil
}
