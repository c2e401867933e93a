package services

import (
	"context"
	"time"

	"neocomm-backend/internal/apperrors"
	"neocomm-backend/internal/models"

	"github.com/google/uuid"
)

// FriendshipStore is the persistence surface the friend service needs
type FriendshipStore interface {
	Exists(ctx context.Context, a, b string) (bool, error)
	Create(ctx context.Context, f *models.Friendship) error
	ListFriends(ctx context.Context, userID string) ([]*models.Profile, error)
}

// FriendService handles friendship-related business logic
type FriendService struct {
	friendRepo FriendshipStore
	userRepo   UserStore
}

// NewFriendService creates a new friend service
func NewFriendService(friendRepo FriendshipStore, userRepo UserStore) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// AreFriends reports whether an accepted relation links a and b,
// in either storage ordering
func (s *FriendService) AreFriends(ctx context.Context, a, b string) (bool, error) {
	return s.friendRepo.Exists(ctx, a, b)
}

// AddFriend resolves the target by email or by id and inserts an
// accepted relation. Acceptance is immediate; there is no request/accept
// phase. The existence check and the insert are two separate steps; the
// repository's unique constraint catches the duplicate race.
func (s *FriendService) AddFriend(ctx context.Context, requesterID, email, targetID string) (*models.Friendship, error) {
	var (
		target *models.User
		err    error
	)
	switch {
	case email != "":
		target, err = s.userRepo.GetByEmail(ctx, email)
	case targetID != "":
		target, err = s.userRepo.GetByID(ctx, targetID)
	default:
		return nil, apperrors.InvalidArg("email or friend_id is required")
	}
	if err != nil {
		return nil, err
	}

	if target.ID == requesterID {
		return nil, apperrors.InvalidArg("cannot add yourself as a friend")
	}

	exists, err := s.friendRepo.Exists(ctx, requesterID, target.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrAlreadyFriends
	}

	friendship := &models.Friendship{
		ID:        uuid.New().String(),
		UserID:    requesterID,
		FriendID:  target.ID,
		Status:    models.FriendshipAccepted,
		CreatedAt: time.Now(),
	}

	if err := s.friendRepo.Create(ctx, friendship); err != nil {
		return nil, err
	}

	return friendship, nil
}

// ListFriends returns the profile-hydrated friends of a user
func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]*models.Profile, error) {
	return s.friendRepo.ListFriends(ctx, userID)
}
