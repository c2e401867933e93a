package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"neocomm-backend/internal/apperrors"
	"neocomm-backend/internal/models"
)

// In-memory store fakes mirroring the repository SQL semantics, so the
// services can be exercised without a database.

type memUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*models.User)}
}

func (m *memUserStore) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailTaken
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *memUserStore) UpdateProfile(_ context.Context, userID string, username, status *string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	if username != nil {
		u.Username = *username
	}
	if status != nil {
		u.Status = status
	}
	cp := *u
	return &cp, nil
}

type memFriendStore struct {
	mu        sync.Mutex
	relations []*models.Friendship
}

func newMemFriendStore() *memFriendStore {
	return &memFriendStore{}
}

func (m *memFriendStore) Exists(_ context.Context, a, b string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.relations {
		if f.Status != models.FriendshipAccepted {
			continue
		}
		if (f.UserID == a && f.FriendID == b) || (f.UserID == b && f.FriendID == a) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memFriendStore) Create(_ context.Context, f *models.Friendship) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.relations {
		if (existing.UserID == f.UserID && existing.FriendID == f.FriendID) ||
			(existing.UserID == f.FriendID && existing.FriendID == f.UserID) {
			return apperrors.ErrAlreadyFriends
		}
	}
	cp := *f
	m.relations = append(m.relations, &cp)
	return nil
}

func (m *memFriendStore) ListFriends(_ context.Context, userID string) ([]*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]struct{})
	var ids []string
	for _, f := range m.relations {
		var other string
		switch userID {
		case f.UserID:
			other = f.FriendID
		case f.FriendID:
			other = f.UserID
		default:
			continue
		}
		if _, dup := seen[other]; !dup {
			seen[other] = struct{}{}
			ids = append(ids, other)
		}
	}
	sort.Strings(ids)
	profiles := make([]*models.Profile, 0, len(ids))
	for _, id := range ids {
		profiles = append(profiles, &models.Profile{ID: id})
	}
	return profiles, nil
}

func (m *memFriendStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.relations)
}

type memMessageStore struct {
	mu       sync.Mutex
	users    *memUserStore
	messages []*models.Message
	clock    time.Time
}

func newMemMessageStore(users *memUserStore) *memMessageStore {
	return &memMessageStore{users: users, clock: time.Now()}
}

func (m *memMessageStore) Create(ctx context.Context, id, senderID, receiverID, content string) (*models.Message, error) {
	sender, err := m.users.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	receiver, err := m.users.GetByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Monotonic server-assigned timestamps, like the database clock.
	m.clock = m.clock.Add(time.Millisecond)
	msg := &models.Message{
		ID:                     id,
		SenderID:               senderID,
		ReceiverID:             receiverID,
		Content:                content,
		SentAt:                 m.clock,
		SenderUsername:         sender.Username,
		SenderProfilePicture:   sender.ProfilePicture,
		ReceiverUsername:       receiver.Username,
		ReceiverProfilePicture: receiver.ProfilePicture,
	}
	m.messages = append(m.messages, msg)
	cp := *msg
	return &cp, nil
}

func (m *memMessageStore) ListConversation(_ context.Context, a, b string) ([]*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Message
	for _, msg := range m.messages {
		if (msg.SenderID == a && msg.ReceiverID == b) || (msg.SenderID == b && msg.ReceiverID == a) {
			cp := *msg
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SentAt.Equal(out[j].SentAt) {
			return out[i].SentAt.Before(out[j].SentAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type recordingDispatcher struct {
	mu        sync.Mutex
	delivered []*models.Message
}

func (d *recordingDispatcher) BroadcastMessage(msg *models.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delivered = append(d.delivered, msg)
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.delivered)
}
