package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"FitPulse/config"
	"FitPulse/model"
	"FitPulse/repository"

	"github.com/stretchr/testify/require"
)

// stubUserRepo is an in-memory UserRepository.
type stubUserRepo struct {
	users     map[string]*model.User
	nextID    int64
	updated   []model.User
	updateErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*model.User), nextID: 1}
}

func (s *stubUserRepo) CreateUser(user *model.User) (int64, error) {
	if _, ok := s.users[user.Email]; ok {
		return 0, repository.ErrDuplicateEmail
	}
	cp := *user
	cp.ID = s.nextID
	s.nextID++
	s.users[user.Email] = &cp
	return cp.ID, nil
}

func (s *stubUserRepo) GetUserByID(id int64) (*model.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) GetUserByEmail(email string) (*model.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *stubUserRepo) UpdateProfile(user *model.User) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	cp := *user
	s.updated = append(s.updated, cp)
	s.users[user.Email] = &cp
	return nil
}

// stubHistoryRepo is an in-memory HistoryRepository.
type stubHistoryRepo struct {
	entries []model.History
	nextID  int64
}

func newStubHistoryRepo() *stubHistoryRepo {
	return &stubHistoryRepo{nextID: 1}
}

func (s *stubHistoryRepo) Create(entry *model.History) error {
	entry.ID = s.nextID
	s.nextID++
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *stubHistoryRepo) ListByEmail(email string) ([]model.History, error) {
	var out []model.History
	for _, e := range s.entries {
		if e.Email == email {
			out = append(out, e)
		}
	}
	return out, nil
}

// stubSessions is an in-memory SessionStore.
type stubSessions struct {
	sessions map[string]int64
}

func newStubSessions() *stubSessions {
	return &stubSessions{sessions: make(map[string]int64)}
}

func (s *stubSessions) Save(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error {
	s.sessions[sessionID] = userID
	return nil
}

func (s *stubSessions) Exists(ctx context.Context, sessionID string) (bool, error) {
	_, ok := s.sessions[sessionID]
	return ok, nil
}

func (s *stubSessions) Delete(ctx context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

// stubNews is a canned NewsProvider.
type stubNews struct {
	headlines []model.Headline
	err       error
	calls     int
}

func (s *stubNews) TopHeadlines(ctx context.Context, query, category string) ([]model.Headline, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.headlines, nil
}

// stubPlanner is a canned MealPlanProvider.
type stubPlanner struct {
	plan  json.RawMessage
	err   error
	calls int
}

func (s *stubPlanner) Generate(ctx context.Context, timeFrame string, targetCalories int64, diet string) (json.RawMessage, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.plan, nil
}

// publishedEvent records one Publish call.
type publishedEvent struct {
	Channel string
	Event   string
	Payload interface{}
}

// recordingPublisher captures broadcasts instead of delivering them.
type recordingPublisher struct {
	events []publishedEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, channel, event string, payload interface{}) {
	p.events = append(p.events, publishedEvent{Channel: channel, Event: event, Payload: payload})
}

// fixture bundles an APIHandler with all its stubbed collaborators.
type fixture struct {
	users    *stubUserRepo
	history  *stubHistoryRepo
	sessions *stubSessions
	news     *stubNews
	planner  *stubPlanner
	pub      *recordingPublisher
	api      *APIHandler
}

func newFixture() *fixture {
	f := &fixture{
		users:    newStubUserRepo(),
		history:  newStubHistoryRepo(),
		sessions: newStubSessions(),
		news:     &stubNews{},
		planner:  &stubPlanner{plan: json.RawMessage(`{"meals":[]}`)},
		pub:      &recordingPublisher{},
	}
	cfg := &config.Config{
		JWTSecret:       "test-secret",
		SessionTTL:      time.Hour,
		NewsQuery:       "fitness",
		NewsCategory:    "health",
		FoodTimeFrame:   "week",
		UpstreamTimeout: 2 * time.Second,
	}
	f.api = NewAPIHandler(f.users, f.history, f.sessions, f.news, f.planner, f.pub, cfg)
	return f
}

// seedUser inserts a user directly into the stub repo.
func (f *fixture) seedUser(t *testing.T, email, name, passwordHash string) *model.User {
	t.Helper()
	user := &model.User{Email: email, Name: name, PasswordHash: passwordHash}
	_, err := f.users.CreateUser(user)
	require.NoError(t, err)
	return f.users.users[email]
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// asUser stamps the request context the way AuthMiddleware would.
func asUser(req *http.Request, userID int64, email string) *http.Request {
	ctx := context.WithValue(req.Context(), "userID", userID)
	ctx = context.WithValue(ctx, "email", email)
	ctx = context.WithValue(ctx, "sessionID", "sess-1")
	return req.WithContext(ctx)
}

// decodeBody decodes a JSON response body into a map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
