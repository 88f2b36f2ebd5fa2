package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/M-RajaBabu/TalkToMe-sub001/internal/apperr"
	"github.com/M-RajaBabu/TalkToMe-sub001/internal/chat"
	"github.com/M-RajaBabu/TalkToMe-sub001/internal/streak"
)

// StreakRepository is the persistence surface the streak engine needs.
// Save must be atomic per user key; the pgx implementation upserts in a
// single statement.
type StreakRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*streak.Record, error)
	Save(ctx context.Context, rec *streak.Record) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

// MessageStats supplies the aggregate facts badge rules depend on.
type MessageStats interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	ExistsByUserAndModality(ctx context.Context, userID uuid.UUID, modality chat.Modality) (bool, error)
}

type StreakService struct {
	repo  StreakRepository
	stats MessageStats
	now   func() time.Time
}

func NewStreakService(repo StreakRepository, stats MessageStats) *StreakService {
	return &StreakService{
		repo:  repo,
		stats: stats,
		now:   time.Now,
	}
}

// GetStatus returns the user's streak snapshot, creating and persisting the
// default record on first access.
func (s *StreakService) GetStatus(ctx context.Context, userID uuid.UUID) (*streak.Status, error) {
	rec, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return rec.Snapshot(), nil
}

// RecordActivity is the only mutating operation. It applies any
// client-supplied streak overrides, marks today in the activity window,
// evaluates badges against the message aggregates, and persists the result.
// Re-invoking within the same calendar day neither duplicates the day marker
// nor re-awards badges.
func (s *StreakService) RecordActivity(ctx context.Context, userID uuid.UUID, req *streak.UpdateRequest) (*streak.Status, error) {
	rec, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()

	rec.ApplyOverrides(req)
	if req == nil || req.LastPracticeDate == nil {
		rec.LastPracticeDate = now
	}
	// The longest-streak floor is the only reconciliation applied to
	// client-supplied values.
	if rec.CurrentStreak > rec.LongestStreak {
		rec.LongestStreak = rec.CurrentStreak
	}

	rec.RecentActivity = streak.MarkDay(rec.RecentActivity, now)

	earned := streak.EvaluateBadges(rec, s.collectFacts(ctx, userID))
	if len(earned) > 0 {
		rec.Badges = streak.MergeBadges(rec.Badges, earned)
		logrus.Printf("user %s earned badges %v", userID, earned)
	}

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("record activity: %w", err)
	}
	return rec.Snapshot(), nil
}

// Clear deletes the user's streak record. Clearing a user without one is not
// an error; a later access starts over from the defaults.
func (s *StreakService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("clear streak: %w", err)
	}
	return nil
}

func (s *StreakService) loadOrCreate(ctx context.Context, userID uuid.UUID) (*streak.Record, error) {
	rec, err := s.repo.FindByUser(ctx, userID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("load streak: %w", err)
	}

	rec = streak.NewRecord(userID, s.now())
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("create streak: %w", err)
	}
	return rec, nil
}

// collectFacts gathers the badge inputs from the message collaborator. A
// failed lookup leaves the corresponding fact unknown instead of failing the
// request; the badge is re-evaluated on the next call.
func (s *StreakService) collectFacts(ctx context.Context, userID uuid.UUID) streak.Facts {
	facts := streak.Facts{}

	if count, err := s.stats.CountByUser(ctx, userID); err != nil {
		logrus.Warnf("message count unavailable for user %s: %v", userID, err)
	} else {
		facts.MessageCount = count
		facts.MessageCountKnown = true
	}

	if hasVoice, err := s.stats.ExistsByUserAndModality(ctx, userID, chat.ModalityVoice); err != nil {
		logrus.Warnf("voice modality lookup failed for user %s: %v", userID, err)
	} else {
		facts.HasVoiceMessage = hasVoice
		facts.HasVoiceKnown = true
	}

	return facts
}
