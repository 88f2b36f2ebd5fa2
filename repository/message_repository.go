package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/M-RajaBabu/TalkToMe-sub001/internal/apperr"
	"github.com/M-RajaBabu/TalkToMe-sub001/internal/chat"
)

type MessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Save(ctx context.Context, msg *chat.Message) error {
	query := `
	INSERT INTO messages (id, user_id, role, content, modality, language, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		msg.ID,
		msg.UserID,
		msg.Role,
		msg.Content,
		msg.Modality,
		msg.Language,
		msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: save message: %v", apperr.ErrStorage, err)
	}
	return nil
}

// ListByUser returns the user's most recent messages, oldest first.
func (r *MessageRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*chat.Message, error) {
	query := `
	SELECT id, user_id, role, content, modality, language, created_at
	FROM (
		SELECT id, user_id, role, content, modality, language, created_at
		FROM messages
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	) recent
	ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list messages: %v", apperr.ErrStorage, err)
	}
	defer rows.Close()

	messages := []*chat.Message{}
	for rows.Next() {
		msg := &chat.Message{}
		if err := rows.Scan(
			&msg.ID,
			&msg.UserID,
			&msg.Role,
			&msg.Content,
			&msg.Modality,
			&msg.Language,
			&msg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scan message: %v", apperr.ErrStorage, err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list messages: %v", apperr.ErrStorage, err)
	}
	return messages, nil
}

func (r *MessageRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM messages WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: count messages: %v", apperr.ErrUnavailable, err)
	}
	return count, nil
}

func (r *MessageRepository) ExistsByUserAndModality(ctx context.Context, userID uuid.UUID, modality chat.Modality) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM messages WHERE user_id = $1 AND modality = $2)`

	var exists bool
	err := r.db.QueryRow(ctx, query, userID, modality).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: modality lookup: %v", apperr.ErrUnavailable, err)
	}
	return exists, nil
}

func (r *MessageRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM messages WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("%w: delete messages: %v", apperr.ErrStorage, err)
	}
	return nil
}
