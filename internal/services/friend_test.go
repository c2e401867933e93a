package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"neocomm-backend/internal/apperrors"
	"neocomm-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, store *memUserStore, username, email string) *models.User {
	t.Helper()
	user := &models.User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     email,
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Create(context.Background(), user))
	return user
}

func TestFriendService_AreFriends(t *testing.T) {
	ctx := context.Background()
	users := newMemUserStore()
	friends := newMemFriendStore()
	svc := NewFriendService(friends, users)

	a := seedUser(t, users, "alice", "alice@example.com")
	b := seedUser(t, users, "bob", "bob@example.com")

	t.Run("false before any relation", func(t *testing.T) {
		ok, err := svc.AreFriends(ctx, a.ID, b.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("commutative regardless of insertion order", func(t *testing.T) {
		_, err := svc.AddFriend(ctx, a.ID, b.Email, "")
		require.NoError(t, err)

		ab, err := svc.AreFriends(ctx, a.ID, b.ID)
		require.NoError(t, err)
		ba, err := svc.AreFriends(ctx, b.ID, a.ID)
		require.NoError(t, err)
		assert.True(t, ab)
		assert.True(t, ba)
		assert.Equal(t, ab, ba)
	})
}

func TestFriendService_AddFriend(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email leaves the store unchanged", func(t *testing.T) {
		users := newMemUserStore()
		friends := newMemFriendStore()
		svc := NewFriendService(friends, users)
		a := seedUser(t, users, "alice", "alice@example.com")

		before := friends.count()
		_, err := svc.AddFriend(ctx, a.ID, "nobody@example.com", "")
		assert.True(t, errors.Is(err, apperrors.ErrUserNotFound))
		assert.Equal(t, before, friends.count())
	})

	t.Run("second add fails with exactly one relation kept", func(t *testing.T) {
		users := newMemUserStore()
		friends := newMemFriendStore()
		svc := NewFriendService(friends, users)
		a := seedUser(t, users, "alice", "alice@example.com")
		b := seedUser(t, users, "bob", "bob@example.com")

		_, err := svc.AddFriend(ctx, a.ID, b.Email, "")
		require.NoError(t, err)

		_, err = svc.AddFriend(ctx, a.ID, b.Email, "")
		assert.True(t, errors.Is(err, apperrors.ErrAlreadyFriends))
		assert.Equal(t, 1, friends.count())
	})

	t.Run("duplicate detected in the reverse direction too", func(t *testing.T) {
		users := newMemUserStore()
		friends := newMemFriendStore()
		svc := NewFriendService(friends, users)
		a := seedUser(t, users, "alice", "alice@example.com")
		b := seedUser(t, users, "bob", "bob@example.com")

		_, err := svc.AddFriend(ctx, a.ID, b.Email, "")
		require.NoError(t, err)

		_, err = svc.AddFriend(ctx, b.ID, a.Email, "")
		assert.True(t, errors.Is(err, apperrors.ErrAlreadyFriends))
		assert.Equal(t, 1, friends.count())
	})

	t.Run("resolves target by id when no email is given", func(t *testing.T) {
		users := newMemUserStore()
		friends := newMemFriendStore()
		svc := NewFriendService(friends, users)
		a := seedUser(t, users, "alice", "alice@example.com")
		b := seedUser(t, users, "bob", "bob@example.com")

		f, err := svc.AddFriend(ctx, a.ID, "", b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, f.FriendID)
	})

	t.Run("requires an email or an id", func(t *testing.T) {
		users := newMemUserStore()
		friends := newMemFriendStore()
		svc := NewFriendService(friends, users)
		a := seedUser(t, users, "alice", "alice@example.com")

		_, err := svc.AddFriend(ctx, a.ID, "", "")
		assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.CodeOf(err))
	})

	t.Run("cannot add yourself", func(t *testing.T) {
		users := newMemUserStore()
		friends := newMemFriendStore()
		svc := NewFriendService(friends, users)
		a := seedUser(t, users, "alice", "alice@example.com")

		_, err := svc.AddFriend(ctx, a.ID, a.Email, "")
		assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.CodeOf(err))
		assert.Equal(t, 0, friends.count())
	})

	t.Run("relation is accepted immediately", func(t *testing.T) {
		users := newMemUserStore()
		friends := newMemFriendStore()
		svc := NewFriendService(friends, users)
		a := seedUser(t, users, "alice", "alice@example.com")
		b := seedUser(t, users, "bob", "bob@example.com")

		f, err := svc.AddFriend(ctx, a.ID, b.Email, "")
		require.NoError(t, err)
		assert.Equal(t, models.FriendshipAccepted, f.Status)
		assert.Equal(t, a.ID, f.UserID)
		assert.Equal(t, b.ID, f.FriendID)
	})
}

func TestFriendService_ListFriends(t *testing.T) {
	ctx := context.Background()
	users := newMemUserStore()
	friends := newMemFriendStore()
	svc := NewFriendService(friends, users)

	a := seedUser(t, users, "alice", "alice@example.com")
	b := seedUser(t, users, "bob", "bob@example.com")
	c := seedUser(t, users, "carol", "carol@example.com")

	_, err := svc.AddFriend(ctx, a.ID, b.Email, "")
	require.NoError(t, err)
	_, err = svc.AddFriend(ctx, c.ID, a.Email, "")
	require.NoError(t, err)

	// a appears in both storage orderings; the list still covers both.
	list, err := svc.ListFriends(ctx, a.ID)
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{b.ID, c.ID}, ids)
}
