package service

import (
	"context"
	"testing"

	"messagely/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUsers(t *testing.T, repo *fakeUserRepo) {
	t.Helper()
	for _, u := range []model.User{
		{Username: "alice", PasswordHash: "x", FirstName: "Alice", LastName: "Smith", Phone: "555-0100"},
		{Username: "bob", PasswordHash: "x", FirstName: "Bob", LastName: "Jones", Phone: "555-0200"},
	} {
		user := u
		require.NoError(t, repo.Create(context.Background(), &user))
	}
}

func TestGetProfile(t *testing.T) {
	userRepo := newFakeUserRepo()
	seedUsers(t, userRepo)
	svc := NewUserService(userRepo, newFakeMessageRepo())

	user, err := svc.GetProfile(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.FirstName)

	_, err = svc.GetProfile(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListProfiles(t *testing.T) {
	userRepo := newFakeUserRepo()
	seedUsers(t, userRepo)
	svc := NewUserService(userRepo, newFakeMessageRepo())

	users, err := svc.ListProfiles(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestMessagesSentAndReceivedBy(t *testing.T) {
	userRepo := newFakeUserRepo()
	seedUsers(t, userRepo)
	alice, bob := testSummaries()
	messageRepo := newFakeMessageRepo(alice, bob)
	svc := NewUserService(userRepo, messageRepo)
	ctx := context.Background()

	require.NoError(t, messageRepo.Create(ctx, &model.Message{FromUsername: "alice", ToUsername: "bob", Body: "hi bob"}))
	require.NoError(t, messageRepo.Create(ctx, &model.Message{FromUsername: "bob", ToUsername: "alice", Body: "hi alice"}))

	sent, err := svc.MessagesSentBy(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "hi bob", sent[0].Body)
	assert.Equal(t, bob, sent[0].ToUser, "counterpart summary must be the recipient")

	received, err := svc.MessagesReceivedBy(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "hi alice", received[0].Body)
	assert.Equal(t, bob, received[0].FromUser, "counterpart summary must be the sender")
}

func TestMessages_UnknownUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	seedUsers(t, userRepo)
	svc := NewUserService(userRepo, newFakeMessageRepo())

	_, err := svc.MessagesSentBy(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.MessagesReceivedBy(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
