package mealplan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"FitPulse/logger"
)

// ErrUnavailable is returned when the meal plan provider cannot be reached or
// answers with a non-OK status. The call is never retried.
var ErrUnavailable = errors.New("meal plan provider unavailable")

// Client queries a spoonacular compatible meal planner endpoint.
type Client struct {
	BaseURL    string
	APIKey     string
	Hash       string
	HTTPClient *http.Client
}

// NewClient creates a meal plan client with a bounded request timeout.
func NewClient(baseURL, apiKey, hash string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Hash:       hash,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Generate requests a meal plan and returns the provider's response verbatim.
// The blob is cached by the caller and never refreshed, so nothing here
// inspects its structure beyond checking that it is JSON.
func (c *Client) Generate(ctx context.Context, timeFrame string, targetCalories int64, diet string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("timeFrame", timeFrame)
	params.Set("targetCalories", strconv.FormatInt(targetCalories, 10))
	params.Set("diet", diet)
	params.Set("hash", c.Hash)
	params.Set("apiKey", c.APIKey)
	endpoint := fmt.Sprintf("%s/mealplanner/generate?%s", c.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create meal plan request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logger.Warn("[MealPlan] request failed", logger.ErrorField(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("[MealPlan] provider returned error status", logger.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read meal plan response: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: malformed response body", ErrUnavailable)
	}

	return json.RawMessage(body), nil
}
