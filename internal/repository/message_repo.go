package repository

import (
	"context"
	"errors"
	"fmt"

	"messagely/internal/model"

	"github.com/jackc/pgx/v5"
)

// ErrUnknownRecipient is returned when a message insert references a
// recipient that does not exist (foreign key violation).
var ErrUnknownRecipient = errors.New("recipient does not exist")

// MessageRepository defines operations for message data
type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	FindByID(ctx context.Context, id int64) (*model.MessageDetail, error)
	FindSentBy(ctx context.Context, username string) ([]model.SentMessage, error)
	FindReceivedBy(ctx context.Context, username string) ([]model.ReceivedMessage, error)
	MarkRead(ctx context.Context, id int64) (*model.Message, error)
}

type messageRepository struct {
	db DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create inserts a new message, stamping sent_at from the database clock
func (r *messageRepository) Create(ctx context.Context, m *model.Message) error {
	sql := `INSERT INTO messages (from_username, to_username, body, sent_at)
            VALUES ($1, $2, $3, current_timestamp)
            RETURNING id, sent_at`
	err := r.db.QueryRow(ctx, sql, m.FromUsername, m.ToUsername, m.Body).Scan(&m.ID, &m.SentAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrUnknownRecipient
		}
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// FindByID retrieves a message with summaries of both parties attached
func (r *messageRepository) FindByID(ctx context.Context, id int64) (*model.MessageDetail, error) {
	m := &model.MessageDetail{}
	sql := `SELECT m.id, m.body, m.sent_at, m.read_at,
                   f.username, f.first_name, f.last_name, f.phone,
                   t.username, t.first_name, t.last_name, t.phone
            FROM messages AS m
            INNER JOIN users AS f ON (m.from_username = f.username)
            INNER JOIN users AS t ON (m.to_username = t.username)
            WHERE m.id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&m.ID, &m.Body, &m.SentAt, &m.ReadAt,
		&m.FromUser.Username, &m.FromUser.FirstName, &m.FromUser.LastName, &m.FromUser.Phone,
		&m.ToUser.Username, &m.ToUser.FirstName, &m.ToUser.LastName, &m.ToUser.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find message by ID: %w", err)
	}
	return m, nil
}

// FindSentBy retrieves messages sent by a user, each annotated with a
// summary of the recipient, newest first
func (r *messageRepository) FindSentBy(ctx context.Context, username string) ([]model.SentMessage, error) {
	sql := `SELECT m.id, m.body, m.sent_at, m.read_at,
                   u.username, u.first_name, u.last_name, u.phone
            FROM messages AS m
            INNER JOIN users AS u ON (m.to_username = u.username)
            WHERE m.from_username = $1
            ORDER BY m.sent_at DESC, m.id DESC`
	rows, err := r.db.Query(ctx, sql, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query sent messages: %w", err)
	}
	defer rows.Close()

	var messages []model.SentMessage
	for rows.Next() {
		var m model.SentMessage
		if err := rows.Scan(
			&m.ID, &m.Body, &m.SentAt, &m.ReadAt,
			&m.ToUser.Username, &m.ToUser.FirstName, &m.ToUser.LastName, &m.ToUser.Phone,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sent message row: %w", err)
		}
		messages = append(messages, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sent message rows: %w", err)
	}
	return messages, nil
}

// FindReceivedBy retrieves messages received by a user, each annotated
// with a summary of the sender, newest first
func (r *messageRepository) FindReceivedBy(ctx context.Context, username string) ([]model.ReceivedMessage, error) {
	sql := `SELECT m.id, m.body, m.sent_at, m.read_at,
                   u.username, u.first_name, u.last_name, u.phone
            FROM messages AS m
            INNER JOIN users AS u ON (m.from_username = u.username)
            WHERE m.to_username = $1
            ORDER BY m.sent_at DESC, m.id DESC`
	rows, err := r.db.Query(ctx, sql, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query received messages: %w", err)
	}
	defer rows.Close()

	var messages []model.ReceivedMessage
	for rows.Next() {
		var m model.ReceivedMessage
		if err := rows.Scan(
			&m.ID, &m.Body, &m.SentAt, &m.ReadAt,
			&m.FromUser.Username, &m.FromUser.FirstName, &m.FromUser.LastName, &m.FromUser.Phone,
		); err != nil {
			return nil, fmt.Errorf("failed to scan received message row: %w", err)
		}
		messages = append(messages, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating received message rows: %w", err)
	}
	return messages, nil
}

// MarkRead sets read_at to now and returns the updated id/read_at pair
func (r *messageRepository) MarkRead(ctx context.Context, id int64) (*model.Message, error) {
	m := &model.Message{ID: id}
	sql := `UPDATE messages SET read_at = current_timestamp WHERE id = $1 RETURNING id, read_at`
	err := r.db.QueryRow(ctx, sql, id).Scan(&m.ID, &m.ReadAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to mark message read: %w", err)
	}
	return m, nil
}
