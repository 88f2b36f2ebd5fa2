// Package repository contains the pgx-backed persistence layer. Services
// depend on small interfaces they declare themselves; these types are the
// Postgres implementations wired up in main.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/M-RajaBabu/TalkToMe-sub001/internal/apperr"
	"github.com/M-RajaBabu/TalkToMe-sub001/internal/streak"
)

type StreakRepository struct {
	db *pgxpool.Pool
}

func NewStreakRepository(db *pgxpool.Pool) *StreakRepository {
	return &StreakRepository{db: db}
}

func (r *StreakRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*streak.Record, error) {
	query := `
	SELECT id, user_id, current_streak, longest_streak, last_practice_date,
	       recent_activity, badges, created_at, updated_at
	FROM streaks
	WHERE user_id = $1
	`

	rec := &streak.Record{}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.CurrentStreak,
		&rec.LongestStreak,
		&rec.LastPracticeDate,
		&rec.RecentActivity,
		&rec.Badges,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("streak for user %s: %w", userID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: find streak: %v", apperr.ErrStorage, err)
	}

	if rec.RecentActivity == nil {
		rec.RecentActivity = []string{}
	}
	if rec.Badges == nil {
		rec.Badges = []string{}
	}
	return rec, nil
}

// Save upserts the full record. The single-statement upsert is what keeps
// concurrent RecordActivity calls for the same user from losing updates:
// Postgres serializes them on the row.
func (r *StreakRepository) Save(ctx context.Context, rec *streak.Record) error {
	query := `
	INSERT INTO streaks (id, user_id, current_streak, longest_streak, last_practice_date,
	                     recent_activity, badges, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	ON CONFLICT (user_id) DO UPDATE
	SET current_streak = EXCLUDED.current_streak,
	    longest_streak = EXCLUDED.longest_streak,
	    last_practice_date = EXCLUDED.last_practice_date,
	    recent_activity = EXCLUDED.recent_activity,
	    badges = EXCLUDED.badges,
	    updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query,
		rec.ID,
		rec.UserID,
		rec.CurrentStreak,
		rec.LongestStreak,
		rec.LastPracticeDate,
		rec.RecentActivity,
		rec.Badges,
	)
	if err != nil {
		return fmt.Errorf("%w: save streak: %v", apperr.ErrStorage, err)
	}
	return nil
}

// DeleteByUser removes the user's record. Deleting a missing record is fine.
func (r *StreakRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM streaks WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("%w: delete streak: %v", apperr.ErrStorage, err)
	}
	return nil
}
