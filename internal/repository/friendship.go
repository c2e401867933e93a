package repository

import (
	"context"
	"errors"
	"fmt"

	"neocomm-backend/internal/apperrors"
	"neocomm-backend/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FriendshipRepository handles database operations for friendships
type FriendshipRepository struct {
	db *pgxpool.Pool
}

// NewFriendshipRepository creates a new friendship repository
func NewFriendshipRepository(db *pgxpool.Pool) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

// Exists reports whether an accepted relation links a and b.
// The check covers both storage orderings, so it is commutative.
func (r *FriendshipRepository) Exists(ctx context.Context, a, b string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM friends
			WHERE status = 'accepted'
			  AND ((user_id = $1 AND friend_id = $2)
			    OR (user_id = $2 AND friend_id = $1))
		)
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, a, b).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}
	return exists, nil
}

// Create inserts a new accepted relation. The unique index on the
// normalized pair backstops the caller's check-then-write: a concurrent
// duplicate insert surfaces as ErrAlreadyFriends rather than a raw
// constraint error.
func (r *FriendshipRepository) Create(ctx context.Context, f *models.Friendship) error {
	query := `
		INSERT INTO friends (id, user_id, friend_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, f.ID, f.UserID, f.FriendID, f.Status, f.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.ErrAlreadyFriends
		}
		return fmt.Errorf("failed to create friendship: %w", err)
	}
	return nil
}

// ListFriends returns the profiles of every user linked to userID,
// regardless of which column the relation was stored under.
func (r *FriendshipRepository) ListFriends(ctx context.Context, userID string) ([]*models.Profile, error) {
	query := `
		SELECT DISTINCT u.id, u.username, u.email, u.status, u.profile_picture
		FROM users u
		INNER JOIN friends f
		ON (f.user_id = $1 AND f.friend_id = u.id)
		OR (f.friend_id = $1 AND f.user_id = u.id)
		ORDER BY u.username
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	friends := make([]*models.Profile, 0)
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Username, &p.Email, &p.Status, &p.ProfilePicture); err != nil {
			return nil, fmt.Errorf("failed to scan friend row: %w", err)
		}
		friends = append(friends, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read friend rows: %w", err)
	}
	return friends, nil
}
