package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/M-RajaBabu/TalkToMe-sub001/internal/chat"
	"github.com/M-RajaBabu/TalkToMe-sub001/middleware"
	"github.com/M-RajaBabu/TalkToMe-sub001/services"
)

type ChatHandler struct {
	chatService   *services.ChatService
	streakService *services.StreakService
}

func NewChatHandler(chatService *services.ChatService, streakService *services.StreakService) *ChatHandler {
	return &ChatHandler{
		chatService:   chatService,
		streakService: streakService,
	}
}

// SaveMessage persists one conversation turn. A saved user turn also counts
// as practice activity, so the streak engine runs on that path.
func (h *ChatHandler) SaveMessage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req chat.SaveMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	msg, err := h.chatService.SaveMessage(ctx, userID, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	if msg.Role == chat.RoleUser {
		if _, err := h.streakService.RecordActivity(ctx, userID, nil); err != nil {
			// The message is already saved; activity tracking failing
			// should not fail the chat path.
			logrus.Warnf("record activity after message save failed for user %s: %v", userID, err)
		}
	}

	respondWithJSON(w, http.StatusCreated, msg)
}

// GetHistory returns the caller's recent messages, oldest first.
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	messages, err := h.chatService.GetHistory(ctx, userID, limit)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, messages)
}
