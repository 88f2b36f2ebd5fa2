package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/M-RajaBabu/TalkToMe-sub001/internal/apperr"
	"github.com/M-RajaBabu/TalkToMe-sub001/internal/chat"
	"github.com/M-RajaBabu/TalkToMe-sub001/internal/streak"
	"github.com/M-RajaBabu/TalkToMe-sub001/internal/user"
)

const testSecret = "unit-test-secret-key-32-characters"

type fakeUserRepo struct {
	byID    map[uuid.UUID]*user.User
	byEmail map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	if _, exists := f.byEmail[u.Email]; exists {
		return fmt.Errorf("email %s: %w", u.Email, apperr.ErrConflict)
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("user: %w", apperr.ErrNotFound)
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", apperr.ErrNotFound)
	}
	return u, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	u, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
	}
	delete(f.byEmail, u.Email)
	delete(f.byID, id)
	return nil
}

func newTestAuthService(users *fakeUserRepo, messages *fakeMessageRepo, streaks *fakeStreakRepo) *AuthService {
	chatSvc := NewChatService(messages)
	streakSvc := NewStreakService(streaks, &fakeMessageStats{})
	return NewAuthService(users, chatSvc, streakSvc, testSecret, time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), newFakeMessageRepo(), newFakeStreakRepo())

	resp, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email:    "Learner@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "learner@example.com", resp.User.Email)
	assert.Equal(t, "learner", resp.User.DisplayName, "display name falls back to the email local part")
	assert.NotEmpty(t, resp.Token)

	// The token subject is the user id, signed with the configured secret.
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	assert.Equal(t, resp.User.ID.String(), claims.Subject)

	login, err := svc.Login(context.Background(), &user.LoginRequest{
		Email:    "learner@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(context.Background(), &user.LoginRequest{
		Email:    "learner@example.com",
		Password: "wrong-horse",
	})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = svc.Login(context.Background(), &user.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized, "unknown email must look like a bad password")
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), newFakeMessageRepo(), newFakeStreakRepo())

	_, err := svc.Register(context.Background(), &user.RegisterRequest{Email: "not-an-email", Password: "long-enough"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = svc.Register(context.Background(), &user.RegisterRequest{Email: "a@b.com", Password: "short"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), newFakeMessageRepo(), newFakeStreakRepo())

	_, err := svc.Register(context.Background(), &user.RegisterRequest{Email: "dup@example.com", Password: "long-enough"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &user.RegisterRequest{Email: "dup@example.com", Password: "long-enough"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestDeleteAccountPurgesOwnedData(t *testing.T) {
	users := newFakeUserRepo()
	messages := newFakeMessageRepo()
	streaks := newFakeStreakRepo()
	svc := newTestAuthService(users, messages, streaks)

	resp, err := svc.Register(context.Background(), &user.RegisterRequest{Email: "bye@example.com", Password: "long-enough"})
	require.NoError(t, err)
	userID := resp.User.ID

	require.NoError(t, messages.Save(context.Background(), &chat.Message{
		ID: uuid.New(), UserID: userID, Role: chat.RoleUser, Content: "hola", Modality: chat.ModalityText,
	}))
	require.NoError(t, streaks.Save(context.Background(), streak.NewRecord(userID, time.Now())))

	require.NoError(t, svc.DeleteAccount(context.Background(), userID))

	assert.Empty(t, messages.byUser[userID])
	assert.NotContains(t, streaks.records, userID)
	_, err = svc.GetProfile(context.Background(), userID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
