package services

import (
	"context"

	"neocomm-backend/internal/apperrors"
	"neocomm-backend/internal/models"

	"github.com/google/uuid"
)

// MessageStore is the persistence surface the message service needs
type MessageStore interface {
	Create(ctx context.Context, id, senderID, receiverID, content string) (*models.Message, error)
	ListConversation(ctx context.Context, a, b string) ([]*models.Message, error)
}

// Dispatcher pushes a newly persisted message to live connections
type Dispatcher interface {
	BroadcastMessage(msg *models.Message)
}

// MessageService handles the friendship-gated message write path
type MessageService struct {
	messageRepo MessageStore
	friendRepo  FriendshipStore
	dispatcher  Dispatcher
}

// NewMessageService creates a new message service
func NewMessageService(messageRepo MessageStore, friendRepo FriendshipStore, dispatcher Dispatcher) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		friendRepo:  friendRepo,
		dispatcher:  dispatcher,
	}
}

// Send persists a message after confirming the sender and receiver are
// friends, then hands the hydrated row to the dispatcher. The friendship
// check and the insert are not transactional; the gate is best-effort.
// Dispatch failures never surface to the caller: the write is already
// durable by the time fan-out starts.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID, content string) (*models.Message, error) {
	if receiverID == "" {
		return nil, apperrors.InvalidArg("receiver_id is required")
	}
	if content == "" {
		return nil, apperrors.InvalidArg("content is required")
	}

	friends, err := s.friendRepo.Exists(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, apperrors.ErrNotFriends
	}

	msg, err := s.messageRepo.Create(ctx, uuid.New().String(), senderID, receiverID, content)
	if err != nil {
		return nil, err
	}

	s.dispatcher.BroadcastMessage(msg)

	return msg, nil
}

// Conversation returns every message between the two users in both
// directions, ordered by persisted timestamp. Each call is a fresh query.
func (s *MessageService) Conversation(ctx context.Context, userID, friendID string) ([]*models.Message, error) {
	if friendID == "" {
		return nil, apperrors.InvalidArg("friend id is required")
	}
	return s.messageRepo.ListConversation(ctx, userID, friendID)
}
