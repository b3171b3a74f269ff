package service

import (
	"context"
	"testing"
	"time"

	"messagely/internal/model"
	"messagely/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMessageRepo is an in-memory MessageRepository for service tests
type fakeMessageRepo struct {
	users    map[string]model.UserSummary
	messages map[int64]*model.Message
	nextID   int64
}

func newFakeMessageRepo(users ...model.UserSummary) *fakeMessageRepo {
	byName := make(map[string]model.UserSummary)
	for _, u := range users {
		byName[u.Username] = u
	}
	return &fakeMessageRepo{
		users:    byName,
		messages: make(map[int64]*model.Message),
		nextID:   1,
	}
}

func (f *fakeMessageRepo) Create(_ context.Context, m *model.Message) error {
	if _, ok := f.users[m.ToUsername]; !ok {
		return repository.ErrUnknownRecipient
	}
	m.ID = f.nextID
	m.SentAt = time.Now()
	f.nextID++
	stored := *m
	f.messages[m.ID] = &stored
	return nil
}

func (f *fakeMessageRepo) FindByID(_ context.Context, id int64) (*model.MessageDetail, error) {
	m, ok := f.messages[id]
	if !ok {
		return nil, nil
	}
	return &model.MessageDetail{
		ID:       m.ID,
		Body:     m.Body,
		SentAt:   m.SentAt,
		ReadAt:   m.ReadAt,
		FromUser: f.users[m.FromUsername],
		ToUser:   f.users[m.ToUsername],
	}, nil
}

func (f *fakeMessageRepo) FindSentBy(_ context.Context, username string) ([]model.SentMessage, error) {
	var out []model.SentMessage
	for _, m := range f.messages {
		if m.FromUsername == username {
			out = append(out, model.SentMessage{
				ID: m.ID, Body: m.Body, SentAt: m.SentAt, ReadAt: m.ReadAt,
				ToUser: f.users[m.ToUsername],
			})
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) FindReceivedBy(_ context.Context, username string) ([]model.ReceivedMessage, error) {
	var out []model.ReceivedMessage
	for _, m := range f.messages {
		if m.ToUsername == username {
			out = append(out, model.ReceivedMessage{
				ID: m.ID, Body: m.Body, SentAt: m.SentAt, ReadAt: m.ReadAt,
				FromUser: f.users[m.FromUsername],
			})
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) MarkRead(_ context.Context, id int64) (*model.Message, error) {
	m, ok := f.messages[id]
	if !ok {
		return nil, nil
	}
	now := time.Now()
	m.ReadAt = &now
	return &model.Message{ID: m.ID, ReadAt: m.ReadAt}, nil
}

func testSummaries() (model.UserSummary, model.UserSummary) {
	alice := model.UserSummary{Username: "alice", FirstName: "Alice", LastName: "Smith", Phone: "555-0100"}
	bob := model.UserSummary{Username: "bob", FirstName: "Bob", LastName: "Jones", Phone: "555-0200"}
	return alice, bob
}

func TestCreateAndGetMessage(t *testing.T) {
	alice, bob := testSummaries()
	repo := newFakeMessageRepo(alice, bob)
	svc := NewMessageService(repo)
	ctx := context.Background()

	created, err := svc.CreateMessage(ctx, "alice", model.CreateMessageRequest{ToUsername: "bob", Body: "hi bob"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "alice", created.FromUsername)
	assert.Nil(t, created.ReadAt)

	// Both sender and recipient may view
	got, err := svc.GetMessage(ctx, created.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "hi bob", got.Body)
	assert.Equal(t, alice, got.FromUser)
	assert.Equal(t, bob, got.ToUser)

	_, err = svc.GetMessage(ctx, created.ID, "bob")
	assert.NoError(t, err)
}

func TestGetMessage_ThirdPartyForbidden(t *testing.T) {
	alice, bob := testSummaries()
	repo := newFakeMessageRepo(alice, bob)
	svc := NewMessageService(repo)
	ctx := context.Background()

	created, err := svc.CreateMessage(ctx, "alice", model.CreateMessageRequest{ToUsername: "bob", Body: "hi"})
	require.NoError(t, err)

	_, err = svc.GetMessage(ctx, created.ID, "carol")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetMessage_NotFound(t *testing.T) {
	alice, bob := testSummaries()
	svc := NewMessageService(newFakeMessageRepo(alice, bob))

	_, err := svc.GetMessage(context.Background(), 42, "alice")
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestCreateMessage_UnknownRecipient(t *testing.T) {
	alice, _ := testSummaries()
	svc := NewMessageService(newFakeMessageRepo(alice))

	_, err := svc.CreateMessage(context.Background(), "alice", model.CreateMessageRequest{ToUsername: "ghost", Body: "hello?"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMarkMessageRead(t *testing.T) {
	alice, bob := testSummaries()
	repo := newFakeMessageRepo(alice, bob)
	svc := NewMessageService(repo)
	ctx := context.Background()

	created, err := svc.CreateMessage(ctx, "alice", model.CreateMessageRequest{ToUsername: "bob", Body: "hi"})
	require.NoError(t, err)

	// Only the recipient may mark a message read
	_, err = svc.MarkMessageRead(ctx, created.ID, "alice")
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.MarkMessageRead(ctx, created.ID, "bob")
	require.NoError(t, err)
	assert.NotNil(t, updated.ReadAt)
}
