// Package streak holds the streak record model and the pure logic that
// maintains the rolling activity window and awards badges.
package streak

import (
	"time"

	"github.com/google/uuid"
)

// Record is the per-user streak row. RecentActivity holds ISO day markers
// ("2006-01-02") for the trailing 7 calendar days; Badges only ever grows.
type Record struct {
	ID               uuid.UUID `json:"id" db:"id"`
	UserID           uuid.UUID `json:"user_id" db:"user_id"`
	CurrentStreak    int       `json:"current_streak" db:"current_streak"`
	LongestStreak    int       `json:"longest_streak" db:"longest_streak"`
	LastPracticeDate time.Time `json:"last_practice_date" db:"last_practice_date"`
	RecentActivity   []string  `json:"recent_activity" db:"recent_activity"`
	Badges           []string  `json:"badges" db:"badges"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// NewRecord returns the default record persisted on first access.
func NewRecord(userID uuid.UUID, now time.Time) *Record {
	return &Record{
		ID:               uuid.New(),
		UserID:           userID,
		CurrentStreak:    1,
		LongestStreak:    1,
		LastPracticeDate: now,
		RecentActivity:   []string{},
		Badges:           []string{},
	}
}

// UpdateRequest carries the client-supplied streak values. The client owns
// day-to-day continuation logic (increment vs. reset); nil means "leave
// unchanged". The activity window and badges are always derived server-side.
type UpdateRequest struct {
	CurrentStreak    *int       `json:"current_streak,omitempty"`
	LongestStreak    *int       `json:"longest_streak,omitempty"`
	LastPracticeDate *time.Time `json:"last_practice_date,omitempty"`
}

// Status is the snapshot returned by the streak endpoints.
type Status struct {
	CurrentStreak    int       `json:"current_streak"`
	LongestStreak    int       `json:"longest_streak"`
	LastPracticeDate time.Time `json:"last_practice_date"`
	RecentActivity   []string  `json:"recent_activity"`
	Badges           []string  `json:"badges"`
}

// Snapshot builds a Status from the record.
func (r *Record) Snapshot() *Status {
	activity := make([]string, len(r.RecentActivity))
	copy(activity, r.RecentActivity)
	badges := make([]string, len(r.Badges))
	copy(badges, r.Badges)
	return &Status{
		CurrentStreak:    r.CurrentStreak,
		LongestStreak:    r.LongestStreak,
		LastPracticeDate: r.LastPracticeDate,
		RecentActivity:   activity,
		Badges:           badges,
	}
}

// ApplyOverrides copies any supplied values verbatim into the record.
// It performs no reconciliation between current and longest; the service
// applies the longest-streak floor after all overrides are in.
func (r *Record) ApplyOverrides(req *UpdateRequest) {
	if req == nil {
		return
	}
	if req.CurrentStreak != nil {
		r.CurrentStreak = *req.CurrentStreak
	}
	if req.LongestStreak != nil {
		r.LongestStreak = *req.LongestStreak
	}
	if req.LastPracticeDate != nil {
		r.LastPracticeDate = *req.LastPracticeDate
	}
}
