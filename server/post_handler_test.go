package server

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"FitPulse/core/blog"
	"FitPulse/model"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postIDPattern = regexp.MustCompile(`^post-[0-9a-f]{32}$`)

func TestCreatePost(t *testing.T) {
	f := newFixture()

	rec := httptest.NewRecorder()
	req := asUser(jsonRequest(t, http.MethodPost, "/api/posts", map[string]string{
		"title": "Leg day", "content": "Squats and lunges.",
	}), 1, "a@x.com")
	f.api.CreatePostHandler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	postID, _ := body["id"].(string)
	assert.Regexp(t, postIDPattern, postID)
	assert.Equal(t, "created", body["event_name"])
	assert.Equal(t, "active", body["status"])

	// Exactly one persisted entry, snapshotting the post.
	require.Len(t, f.history.entries, 1)
	entry := f.history.entries[0]
	assert.Equal(t, "a@x.com", entry.Email)
	assert.Equal(t, postID, entry.PostID)
	assert.Equal(t, "Leg day", entry.Title)
	assert.Equal(t, "Squats and lunges.", entry.Content)
	assert.Equal(t, "active", entry.Status)
	assert.Equal(t, "created", entry.EventName)

	// One broadcast with the same payload.
	require.Len(t, f.pub.events, 1)
	assert.Equal(t, blog.Channel, f.pub.events[0].Channel)
	assert.Equal(t, blog.EventPostAdded, f.pub.events[0].Event)
	event := f.pub.events[0].Payload.(model.PostEvent)
	assert.Equal(t, postID, event.ID)
	assert.Equal(t, "Leg day", event.Title)
}

func TestCreatePostValidation(t *testing.T) {
	f := newFixture()

	rec := httptest.NewRecorder()
	req := asUser(jsonRequest(t, http.MethodPost, "/api/posts", map[string]string{
		"title": "", "content": "body",
	}), 1, "a@x.com")
	f.api.CreatePostHandler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.history.entries)
	assert.Empty(t, f.pub.events)
}

func TestDeletePostBroadcastsWithoutTouchingHistory(t *testing.T) {
	f := newFixture()

	// Create a post first.
	rec := httptest.NewRecorder()
	f.api.CreatePostHandler(rec, asUser(jsonRequest(t, http.MethodPost, "/api/posts", map[string]string{
		"title": "T", "content": "C",
	}), 1, "a@x.com"))
	require.Equal(t, http.StatusOK, rec.Code)
	postID := decodeBody(t, rec)["id"].(string)
	require.Len(t, f.history.entries, 1)
	created := f.history.entries[0]

	// Delete broadcasts only.
	rec = httptest.NewRecorder()
	req := asUser(jsonRequest(t, http.MethodDelete, "/api/posts/"+postID, nil), 1, "a@x.com")
	req = mux.SetURLVars(req, map[string]string{"id": postID})
	f.api.UpdatePostHandler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, f.pub.events, 2)
	assert.Equal(t, blog.EventPostDeleted, f.pub.events[1].Event)
	event := f.pub.events[1].Payload.(model.PostEvent)
	assert.Equal(t, postID, event.ID)
	assert.Equal(t, "deleted", event.EventName)

	// The stored entry is neither removed nor rewritten.
	require.Len(t, f.history.entries, 1)
	assert.Equal(t, created, f.history.entries[0])
}

func TestDeactivatePostBroadcast(t *testing.T) {
	f := newFixture()

	rec := httptest.NewRecorder()
	req := asUser(jsonRequest(t, http.MethodPut, "/api/posts/post-abc", nil), 1, "a@x.com")
	req = mux.SetURLVars(req, map[string]string{"id": "post-abc"})
	f.api.UpdatePostHandler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, f.pub.events, 1)
	assert.Equal(t, blog.EventPostDeactivated, f.pub.events[0].Event)
	event := f.pub.events[0].Payload.(model.PostEvent)
	assert.Equal(t, "post-abc", event.ID)
	assert.Equal(t, "deactivated", event.EventName)

	body := decodeBody(t, rec)
	assert.Equal(t, "deactivated", body["event_name"])
}

func TestHistoryHandlerInsertionOrder(t *testing.T) {
	f := newFixture()

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		rec := httptest.NewRecorder()
		f.api.CreatePostHandler(rec, asUser(jsonRequest(t, http.MethodPost, "/api/posts", map[string]string{
			"title": title, "content": "c",
		}), 1, "a@x.com"))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// Another user's posts stay out of the listing.
	rec := httptest.NewRecorder()
	f.api.CreatePostHandler(rec, asUser(jsonRequest(t, http.MethodPost, "/api/posts", map[string]string{
		"title": "other", "content": "c",
	}), 2, "b@x.com"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	f.api.HistoryHandler(rec, asUser(httptest.NewRequest(http.MethodGet, "/api/personal", nil), 1, "a@x.com"))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	entries := body["data"].([]interface{})
	require.Len(t, entries, 3)
	for i, title := range titles {
		entry := entries[i].(map[string]interface{})
		assert.Equal(t, title, entry["title"])
	}
}

func TestNewPostIDFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := newPostID()
		assert.Regexp(t, postIDPattern, id)
		assert.False(t, seen[id], "duplicate post id %s", id)
		seen[id] = true
	}
}
