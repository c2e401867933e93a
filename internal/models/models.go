package models

import "time"

// User represents a registered user
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Status         *string   `json:"status,omitempty"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Profile is the public view of a user, joined into friend lists
// and message hydration
type Profile struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Status         *string `json:"status,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

// Friendship represents an accepted relation between two users.
// The pair is unordered: either column ordering satisfies both directions.
type Friendship struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FriendID  string    `json:"friend_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// FriendshipAccepted is the only status a relation can hold; acceptance
// is immediate, there is no pending phase.
const FriendshipAccepted = "accepted"

// Message is an immutable chat message, hydrated with both parties'
// display attributes when read back from the store.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	SentAt     time.Time `json:"sent_at"`

	SenderUsername         string  `json:"sender_username"`
	SenderProfilePicture   *string `json:"sender_profile_picture"`
	ReceiverUsername       string  `json:"receiver_username"`
	ReceiverProfilePicture *string `json:"receiver_profile_picture"`
}
