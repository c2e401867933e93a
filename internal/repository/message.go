package repository

import (
	"context"
	"fmt"

	"neocomm-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageRepository handles database operations for messages
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create persists a message and returns it hydrated with both parties'
// display attributes. Insert and hydration run as a single statement so
// the caller never observes companion data from a different point in time.
// The sent_at timestamp is assigned by the database on insert.
func (r *MessageRepository) Create(ctx context.Context, id, senderID, receiverID, content string) (*models.Message, error) {
	query := `
		WITH inserted_message AS (
			INSERT INTO messages (id, sender_id, receiver_id, content)
			VALUES ($1, $2, $3, $4)
			RETURNING id, sender_id, receiver_id, content, sent_at
		)
		SELECT m.id, m.sender_id, m.receiver_id, m.content, m.sent_at,
		       sender.username, sender.profile_picture,
		       receiver.username, receiver.profile_picture
		FROM inserted_message m
		JOIN users sender ON m.sender_id = sender.id
		JOIN users receiver ON m.receiver_id = receiver.id
	`
	var msg models.Message
	err := r.db.QueryRow(ctx, query, id, senderID, receiverID, content).Scan(
		&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Content, &msg.SentAt,
		&msg.SenderUsername, &msg.SenderProfilePicture,
		&msg.ReceiverUsername, &msg.ReceiverProfilePicture,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return &msg, nil
}

// ListConversation returns every message exchanged between a and b, in
// either direction, ordered by ascending sent_at with the message id as a
// tiebreak so both parties observe the identical sequence.
func (r *MessageRepository) ListConversation(ctx context.Context, a, b string) ([]*models.Message, error) {
	query := `
		SELECT m.id, m.sender_id, m.receiver_id, m.content, m.sent_at,
		       u1.username, u1.profile_picture,
		       u2.username, u2.profile_picture
		FROM messages m
		JOIN users u1 ON m.sender_id = u1.id
		JOIN users u2 ON m.receiver_id = u2.id
		WHERE (m.sender_id = $1 AND m.receiver_id = $2)
		   OR (m.sender_id = $2 AND m.receiver_id = $1)
		ORDER BY m.sent_at ASC, m.id ASC
	`
	rows, err := r.db.Query(ctx, query, a, b)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}
	defer rows.Close()

	messages := make([]*models.Message, 0)
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(
			&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Content, &msg.SentAt,
			&msg.SenderUsername, &msg.SenderProfilePicture,
			&msg.ReceiverUsername, &msg.ReceiverProfilePicture,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read message rows: %w", err)
	}
	return messages, nil
}
