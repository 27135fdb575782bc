package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vedran77/messagely/internal/domain"
	"github.com/vedran77/messagely/internal/transport/http/middleware"
)

type UserDirectory interface {
	ListAll(ctx context.Context) ([]domain.UserSummary, error)
	GetProfile(ctx context.Context, username string) (domain.UserProfile, error)
}

type MessageResolver interface {
	MessagesFrom(ctx context.Context, username string) ([]domain.SentMessage, error)
	MessagesTo(ctx context.Context, username string) ([]domain.ReceivedMessage, error)
}

type UserHandler struct {
	users    UserDirectory
	messages MessageResolver
	log      *slog.Logger
}

func NewUserHandler(users UserDirectory, messages MessageResolver, log *slog.Logger) *UserHandler {
	return &UserHandler{users: users, messages: messages, log: log}
}

// logger tags entries with the authenticated caller.
func (h *UserHandler) logger(r *http.Request) *slog.Logger {
	if username, ok := middleware.GetUsername(r.Context()); ok {
		return h.log.With("requested_by", username)
	}
	return h.log
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListAll(r.Context())
	if err != nil {
		h.logger(r).Error("list users", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	log := h.logger(r)
	log.Debug("get user", "username", username)

	user, err := h.users.GetProfile(r.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "No such user: "+username)
		} else {
			log.Error("get user", "username", username, "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *UserHandler) MessagesFrom(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	log := h.logger(r)
	log.Debug("messages from", "username", username)

	msgs, err := h.messages.MessagesFrom(r.Context(), username)
	if err != nil {
		log.Error("messages from", "username", username, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

func (h *UserHandler) MessagesTo(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	log := h.logger(r)
	log.Debug("messages to", "username", username)

	msgs, err := h.messages.MessagesTo(r.Context(), username)
	if err != nil {
		log.Error("messages to", "username", username, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}
