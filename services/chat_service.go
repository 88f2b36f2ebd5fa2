package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/M-RajaBabu/TalkToMe-sub001/internal/apperr"
	"github.com/M-RajaBabu/TalkToMe-sub001/internal/chat"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// MessageRepository persists conversation turns.
type MessageRepository interface {
	Save(ctx context.Context, msg *chat.Message) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*chat.Message, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type ChatService struct {
	repo MessageRepository
	now  func() time.Time
}

func NewChatService(repo MessageRepository) *ChatService {
	return &ChatService{
		repo: repo,
		now:  time.Now,
	}
}

// SaveMessage persists one conversation turn. The assistant's replies are
// generated on the client and posted back, so both roles arrive this way.
func (s *ChatService) SaveMessage(ctx context.Context, userID uuid.UUID, req *chat.SaveMessageRequest) (*chat.Message, error) {
	if req == nil || strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("message content is required: %w", apperr.ErrInvalidInput)
	}
	if !chat.ValidRole(req.Role) {
		return nil, fmt.Errorf("unknown role %q: %w", req.Role, apperr.ErrInvalidInput)
	}
	modality := req.Modality
	if modality == "" {
		modality = chat.ModalityText
	}
	if !chat.ValidModality(modality) {
		return nil, fmt.Errorf("unknown modality %q: %w", req.Modality, apperr.ErrInvalidInput)
	}

	msg := &chat.Message{
		ID:        uuid.New(),
		UserID:    userID,
		Role:      req.Role,
		Content:   req.Content,
		Modality:  modality,
		Language:  req.Language,
		CreatedAt: s.now(),
	}

	if err := s.repo.Save(ctx, msg); err != nil {
		return nil, fmt.Errorf("save message: %w", err)
	}
	return msg, nil
}

// GetHistory returns the user's recent messages, oldest first.
func (s *ChatService) GetHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*chat.Message, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	messages, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	return messages, nil
}

// PurgeUser removes all of the user's messages. Called from the account
// deletion path.
func (s *ChatService) PurgeUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("purge messages: %w", err)
	}
	return nil
}
