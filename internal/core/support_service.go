package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SupportService stores user-submitted support comments. Any authenticated
// user may create one; listing and deletion are admin operations enforced at
// the web layer.
type SupportService interface {
	Create(ctx context.Context, userID, name, email, message string) (*SupportComment, error)
	ListAll(ctx context.Context) ([]SupportComment, error)
	Delete(ctx context.Context, id string) error
}

type supportService struct {
	pool *pgxpool.Pool
}

func NewSupportService(pool *pgxpool.Pool) SupportService {
	return &supportService{pool: pool}
}

func (s *supportService) Create(ctx context.Context, userID, name, email, message string) (*SupportComment, error) {
	c := &SupportComment{
		ID:      uuid.NewString(),
		UserID:  userID,
		Name:    name,
		Email:   email,
		Message: message,
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO support_comments (id, user_id, name, email, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, c.ID, c.UserID, c.Name, c.Email, c.Message).Scan(&c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create support comment: %w", err)
	}
	return c, nil
}

func (s *supportService) ListAll(ctx context.Context) ([]SupportComment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, name, email, message, created_at
		FROM support_comments
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query support comments: %w", err)
	}
	defer rows.Close()

	var comments []SupportComment
	for rows.Next() {
		var c SupportComment
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Message, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan support comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (s *supportService) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM support_comments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete support comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
