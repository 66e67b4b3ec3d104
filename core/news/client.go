package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"FitPulse/logger"
	"FitPulse/model"
)

// ErrUnavailable is returned when the news provider cannot be reached or
// answers with a non-OK status. Callers do not retry.
var ErrUnavailable = errors.New("news provider unavailable")

// Client queries a newsapi.org compatible top-headlines endpoint.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a news client with a bounded request timeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type articlesResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		Description string `json:"description"`
		Author      string `json:"author"`
	} `json:"articles"`
}

// TopHeadlines fetches current headlines for the query and category.
func (c *Client) TopHeadlines(ctx context.Context, query, category string) ([]model.Headline, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("category", category)
	params.Set("apiKey", c.APIKey)
	endpoint := fmt.Sprintf("%s/v2/top-headlines?%s", c.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create headlines request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logger.Warn("[News] request failed", logger.ErrorField(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("[News] provider returned error status", logger.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var result articlesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode headlines response: %w", err)
	}

	headlines := make([]model.Headline, 0, len(result.Articles))
	for _, article := range result.Articles {
		headlines = append(headlines, model.Headline{
			Title:       article.Title,
			URL:         article.URL,
			URLToImage:  article.URLToImage,
			Description: article.Description,
			Author:      article.Author,
		})
	}
	return headlines, nil
}
