package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"FitPulse/config"
	"FitPulse/core/auth"
	"FitPulse/core/blog"
	"FitPulse/model"
	"FitPulse/repository"
)

// NewsProvider fetches current headlines. *news.Client implements it.
type NewsProvider interface {
	TopHeadlines(ctx context.Context, query, category string) ([]model.Headline, error)
}

// MealPlanProvider generates meal plans. *mealplan.Client implements it.
type MealPlanProvider interface {
	Generate(ctx context.Context, timeFrame string, targetCalories int64, diet string) (json.RawMessage, error)
}

// APIHandler handles all API requests.
type APIHandler struct {
	userRepo    repository.UserRepository
	historyRepo repository.HistoryRepository
	sessions    auth.SessionStore
	news        NewsProvider
	mealPlanner MealPlanProvider
	publisher   blog.Publisher
	cfg         *config.Config
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(
	userRepo repository.UserRepository,
	historyRepo repository.HistoryRepository,
	sessions auth.SessionStore,
	news NewsProvider,
	mealPlanner MealPlanProvider,
	publisher blog.Publisher,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		userRepo:    userRepo,
		historyRepo: historyRepo,
		sessions:    sessions,
		news:        news,
		mealPlanner: mealPlanner,
		publisher:   publisher,
		cfg:         cfg,
	}
}

// upstreamContext bounds an outbound provider call.
func (h *APIHandler) upstreamContext(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := h.cfg.UpstreamTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return context.WithTimeout(r.Context(), timeout)
}

// GetUserIDFromContext extracts the user ID from the request context.
func GetUserIDFromContext(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value("userID").(int64)
	if !ok {
		return 0, fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// GetEmailFromContext extracts the user email from the request context.
func GetEmailFromContext(ctx context.Context) (string, error) {
	email, ok := ctx.Value("email").(string)
	if !ok {
		return "", fmt.Errorf("email not found in context")
	}
	return email, nil
}
