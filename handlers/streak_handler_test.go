package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/M-RajaBabu/TalkToMe-sub001/internal/apperr"
	"github.com/M-RajaBabu/TalkToMe-sub001/internal/chat"
	"github.com/M-RajaBabu/TalkToMe-sub001/internal/streak"
	"github.com/M-RajaBabu/TalkToMe-sub001/middleware"
	"github.com/M-RajaBabu/TalkToMe-sub001/services"
)

type memStreakRepo struct {
	records map[uuid.UUID]*streak.Record
}

func (m *memStreakRepo) FindByUser(_ context.Context, userID uuid.UUID) (*streak.Record, error) {
	rec, ok := m.records[userID]
	if !ok {
		return nil, fmt.Errorf("streak: %w", apperr.ErrNotFound)
	}
	clone := *rec
	clone.RecentActivity = append([]string{}, rec.RecentActivity...)
	clone.Badges = append([]string{}, rec.Badges...)
	return &clone, nil
}

func (m *memStreakRepo) Save(_ context.Context, rec *streak.Record) error {
	clone := *rec
	clone.RecentActivity = append([]string{}, rec.RecentActivity...)
	clone.Badges = append([]string{}, rec.Badges...)
	m.records[rec.UserID] = &clone
	return nil
}

func (m *memStreakRepo) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	delete(m.records, userID)
	return nil
}

type memStats struct {
	count    int
	hasVoice bool
}

func (m *memStats) CountByUser(_ context.Context, _ uuid.UUID) (int, error) {
	return m.count, nil
}

func (m *memStats) ExistsByUserAndModality(_ context.Context, _ uuid.UUID, _ chat.Modality) (bool, error) {
	return m.hasVoice, nil
}

func newStreakTestHandler(stats *memStats) *StreakHandler {
	repo := &memStreakRepo{records: make(map[uuid.UUID]*streak.Record)}
	return NewStreakHandler(services.NewStreakService(repo, stats))
}

func authedRequest(method, target string, body string, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestGetStreak_CreatesDefaults(t *testing.T) {
	handler := newStreakTestHandler(&memStats{})

	rr := httptest.NewRecorder()
	handler.GetStreak(rr, authedRequest(http.MethodGet, "/api/v1/streak", "", uuid.New()))

	require.Equal(t, http.StatusOK, rr.Code)

	var status streak.Status
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, 1, status.CurrentStreak)
	assert.Equal(t, 1, status.LongestStreak)
	assert.Empty(t, status.Badges)
}

func TestGetStreak_Unauthenticated(t *testing.T) {
	handler := newStreakTestHandler(&memStats{})

	rr := httptest.NewRecorder()
	handler.GetStreak(rr, httptest.NewRequest(http.MethodGet, "/api/v1/streak", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUpdateStreak_RecordsActivityAndBadges(t *testing.T) {
	handler := newStreakTestHandler(&memStats{count: 150, hasVoice: true})
	userID := uuid.New()

	body := `{"current_streak": 7}`
	rr := httptest.NewRecorder()
	handler.UpdateStreak(rr, authedRequest(http.MethodPost, "/api/v1/streak", body, userID))

	require.Equal(t, http.StatusOK, rr.Code)

	var status streak.Status
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, 7, status.CurrentStreak)
	assert.Equal(t, 7, status.LongestStreak)
	assert.Equal(t, []string{streak.DayMarker(time.Now())}, status.RecentActivity)
	assert.ElementsMatch(t, []string{streak.BadgeStreak7, streak.BadgeMessages100, streak.BadgeVoice1}, status.Badges)
}

func TestUpdateStreak_EmptyBodyMarksToday(t *testing.T) {
	handler := newStreakTestHandler(&memStats{})
	userID := uuid.New()

	rr := httptest.NewRecorder()
	handler.UpdateStreak(rr, authedRequest(http.MethodPost, "/api/v1/streak", "", userID))

	require.Equal(t, http.StatusOK, rr.Code)

	var status streak.Status
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Len(t, status.RecentActivity, 1)
}

func TestUpdateStreak_RejectsMalformedBody(t *testing.T) {
	handler := newStreakTestHandler(&memStats{})

	rr := httptest.NewRecorder()
	handler.UpdateStreak(rr, authedRequest(http.MethodPost, "/api/v1/streak", `{"current_streak": "seven"}`, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestClearStreak_ThenFreshStatus(t *testing.T) {
	handler := newStreakTestHandler(&memStats{count: 200})
	userID := uuid.New()

	rr := httptest.NewRecorder()
	handler.UpdateStreak(rr, authedRequest(http.MethodPost, "/api/v1/streak", `{"current_streak": 7}`, userID))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	handler.ClearStreak(rr, authedRequest(http.MethodDelete, "/api/v1/streak", "", userID))
	require.Equal(t, http.StatusOK, rr.Code)

	// Clearing a missing record still succeeds.
	rr = httptest.NewRecorder()
	handler.ClearStreak(rr, authedRequest(http.MethodDelete, "/api/v1/streak", "", userID))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	handler.GetStreak(rr, authedRequest(http.MethodGet, "/api/v1/streak", "", userID))
	require.Equal(t, http.StatusOK, rr.Code)

	var status streak.Status
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, 1, status.CurrentStreak)
	assert.Empty(t, status.Badges)
}
