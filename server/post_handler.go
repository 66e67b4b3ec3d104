package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"FitPulse/core/blog"
	"FitPulse/logger"
	"FitPulse/model"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// CreatePostRequest represents the blog post creation body.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// newPostID returns a fresh correlation token in the post-<32 hex> format.
func newPostID() string {
	u := uuid.New()
	return fmt.Sprintf("post-%x", u[:])
}

// CreatePostHandler persists a history entry for the new post and broadcasts
// a post-added event carrying the same payload.
func (h *APIHandler) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	email, err := GetEmailFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.Content == "" {
		http.Error(w, "Title and content are required", http.StatusBadRequest)
		return
	}

	event := model.PostEvent{
		ID:        newPostID(),
		Title:     req.Title,
		Content:   req.Content,
		Status:    "active",
		EventName: "created",
	}

	h.publisher.Publish(r.Context(), blog.Channel, blog.EventPostAdded, event)

	entry := &model.History{
		Email:     email,
		PostID:    event.ID,
		Title:     event.Title,
		Content:   event.Content,
		Status:    event.Status,
		EventName: event.EventName,
	}
	if err := h.historyRepo.Create(entry); err != nil {
		logger.Error("[Post] failed to persist history entry", logger.ErrorField(err))
		http.Error(w, "Failed to create post", http.StatusInternalServerError)
		return
	}

	logger.Info("[Post] post created",
		logger.String("postId", event.ID), logger.String("email", email))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(event)
}

// UpdatePostHandler broadcasts a deactivate (PUT) or delete (DELETE) event for
// the post. The persisted history entry is deliberately left untouched: only
// creation is recorded, later lifecycle events exist on the wire alone.
func (h *APIHandler) UpdatePostHandler(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]
	if postID == "" {
		http.Error(w, "Post id is required", http.StatusBadRequest)
		return
	}

	event := model.PostEvent{ID: postID}
	var eventName string
	if r.Method == http.MethodDelete {
		event.EventName = "deleted"
		eventName = blog.EventPostDeleted
	} else {
		event.EventName = "deactivated"
		eventName = blog.EventPostDeactivated
	}

	h.publisher.Publish(r.Context(), blog.Channel, eventName, event)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(event)
}

// HistoryHandler lists every post the user ever created, in insertion order,
// including posts whose delete event has since been broadcast.
func (h *APIHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	email, err := GetEmailFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	entries, err := h.historyRepo.ListByEmail(email)
	if err != nil {
		logger.Error("[History] failed to list history", logger.ErrorField(err))
		http.Error(w, "Failed to load history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    entries,
	})
}
