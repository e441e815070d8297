package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"connectme/internal/models"
	"connectme/internal/session"
	"connectme/internal/store"
	"connectme/internal/upload"

	"github.com/gorilla/mux"
)

func setupRouter(t *testing.T, delay time.Duration) (*mux.Router, *Handler) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub()
	sess := session.New(store.New(store.Seed()), upload.NewUploader(delay, ""), hub.UploadListener)
	t.Cleanup(sess.Close)

	h := NewHandler(ctx, sess, hub)
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return router, h
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestGetUserFallsBackToSentinel(t *testing.T) {
	router, _ := setupRouter(t, time.Hour)

	tests := []struct {
		name     string
		path     string
		wantName string
	}{
		{name: "Known user", path: "/api/users/2", wantName: "Maya Patel"},
		{name: "Unknown user", path: "/api/users/9999", wantName: "Unknown User"},
		{name: "Current user", path: "/api/me", wantName: "Laukik"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, router, http.MethodGet, tt.path, "")
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d", rr.Code)
			}
			var u models.User
			if err := json.NewDecoder(rr.Body).Decode(&u); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if u.Name != tt.wantName {
				t.Errorf("name = %q, want %q", u.Name, tt.wantName)
			}
		})
	}
}

func TestCreatePostFlow(t *testing.T) {
	router, h := setupRouter(t, time.Hour)

	rr := do(t, router, http.MethodPost, "/api/posts", `{"content":"  ","tags":"#x"}`)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"changed":false`) {
		t.Fatalf("blank post: %d %s", rr.Code, rr.Body.String())
	}
	if v := h.session.View(); v.DraftTags != "#x" {
		t.Errorf("draft lost on no-op: %+v", v)
	}

	rr = do(t, router, http.MethodPost, "/api/posts", `{"content":"Hello Go","tags":"#a #b notag"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Changed bool        `json:"changed"`
		Post    models.Post `json:"post"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Changed || resp.Post.ID != 3 || resp.Post.UserID != 3 {
		t.Errorf("post = %+v", resp.Post)
	}
	if len(resp.Post.Tags) != 2 || resp.Post.Tags[0] != "a" || resp.Post.Tags[1] != "b" {
		t.Errorf("tags = %v", resp.Post.Tags)
	}
	if v := h.session.View(); v.DraftContent != "" || v.DraftTags != "" {
		t.Errorf("draft not consumed: %+v", v)
	}

	rr = do(t, router, http.MethodGet, "/api/posts", "")
	var posts []models.Post
	if err := json.NewDecoder(rr.Body).Decode(&posts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(posts) != 3 || posts[0].ID != 3 || posts[1].ID != 1 {
		t.Errorf("feed order = %v", []int{posts[0].ID, posts[1].ID})
	}
}

func TestCreatePostBadBody(t *testing.T) {
	router, _ := setupRouter(t, time.Hour)
	rr := do(t, router, http.MethodPost, "/api/posts", `{not json`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rr.Code)
	}
}

func TestLikeAndFollowToggle(t *testing.T) {
	router, _ := setupRouter(t, time.Hour)

	rr := do(t, router, http.MethodPost, "/api/posts/1/like", "")
	if !strings.Contains(rr.Body.String(), `"likes":43`) {
		t.Errorf("first like: %s", rr.Body.String())
	}
	rr = do(t, router, http.MethodPost, "/api/posts/1/like", "")
	if !strings.Contains(rr.Body.String(), `"likes":42`) {
		t.Errorf("second like: %s", rr.Body.String())
	}

	rr = do(t, router, http.MethodPost, "/api/posts/77/like", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"changed":false`) {
		t.Errorf("missing post: %d %s", rr.Code, rr.Body.String())
	}

	rr = do(t, router, http.MethodPost, "/api/users/2/follow", "")
	if !strings.Contains(rr.Body.String(), `"followers":1025`) {
		t.Errorf("follow: %s", rr.Body.String())
	}
	rr = do(t, router, http.MethodPost, "/api/users/3/follow", "")
	if !strings.Contains(rr.Body.String(), `"changed":false`) || !strings.Contains(rr.Body.String(), `"followers":158`) {
		t.Errorf("self follow: %s", rr.Body.String())
	}
}

func TestAddComment(t *testing.T) {
	router, h := setupRouter(t, time.Hour)

	do(t, router, http.MethodPost, "/api/posts/2/commenting", "")
	if v := h.session.View(); v.CommentingOnPost != 2 {
		t.Fatalf("commenting on = %d", v.CommentingOnPost)
	}

	rr := do(t, router, http.MethodPost, "/api/posts/2/comments", `{"content":"Which trail?"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"id":2`) {
		t.Errorf("comment = %s", rr.Body.String())
	}
	if v := h.session.View(); v.CommentingOnPost != 0 || v.CommentDraft != "" {
		t.Errorf("comment state not cleared: %+v", v)
	}

	rr = do(t, router, http.MethodPost, "/api/posts/2/comments", `{"content":"   "}`)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"changed":false`) {
		t.Errorf("blank comment: %d %s", rr.Code, rr.Body.String())
	}
}

func TestSearchEndpoint(t *testing.T) {
	router, _ := setupRouter(t, time.Hour)

	rr := do(t, router, http.MethodGet, "/api/search?q=", "")
	if strings.TrimSpace(rr.Body.String()) != "null" {
		t.Errorf("blank search = %s", rr.Body.String())
	}

	rr = do(t, router, http.MethodGet, "/api/search?q=zzzz", "")
	var empty models.SearchResult
	if err := json.NewDecoder(rr.Body).Decode(&empty); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if empty.Users == nil || empty.Posts == nil || len(empty.Users)+len(empty.Posts) != 0 {
		t.Errorf("zero-match search = %+v", empty)
	}

	rr = do(t, router, http.MethodGet, "/api/search?q=MAYA", "")
	var res models.SearchResult
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Users) != 1 || res.Users[0].Name != "Maya Patel" {
		t.Errorf("search MAYA = %+v", res)
	}

	rr = do(t, router, http.MethodPut, "/api/session/search", `{"query":"hiking"}`)
	if !strings.Contains(rr.Body.String(), `"hiking"`) || !strings.Contains(rr.Body.String(), `"id":2`) {
		t.Errorf("session search = %s", rr.Body.String())
	}
}

func TestSessionEndpoints(t *testing.T) {
	router, _ := setupRouter(t, time.Hour)

	rr := do(t, router, http.MethodPut, "/api/session/tab", `{"tab":"notifications"}`)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"active_tab":"notifications"`) {
		t.Errorf("set tab: %d %s", rr.Code, rr.Body.String())
	}
	rr = do(t, router, http.MethodPut, "/api/session/tab", `{"tab":"nope"}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unknown tab status = %d", rr.Code)
	}

	do(t, router, http.MethodPut, "/api/session/draft", `{"content":"draft","tags":"#t"}`)
	rr = do(t, router, http.MethodPost, "/api/posts", "")
	if rr.Code != http.StatusCreated || !strings.Contains(rr.Body.String(), `"tags":["t"]`) {
		t.Errorf("post from draft: %d %s", rr.Code, rr.Body.String())
	}

	rr = do(t, router, http.MethodGet, "/api/notifications", "")
	var feed []models.NotificationView
	if err := json.NewDecoder(rr.Body).Decode(&feed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(feed) != 3 || feed[1].Actor.Name != "Maya Patel" {
		t.Errorf("notifications = %+v", feed)
	}

	rr = do(t, router, http.MethodGet, "/api/users/3/profile", "")
	var profile models.ProfileView
	if err := json.NewDecoder(rr.Body).Decode(&profile); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !profile.IsCurrentUser || profile.PostCount != 1 {
		t.Errorf("profile = %+v", profile)
	}
}

func TestUploadEndpoints(t *testing.T) {
	router, h := setupRouter(t, 10*time.Millisecond)

	rr := do(t, router, http.MethodPost, "/api/uploads", "")
	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d", rr.Code)
	}

	deadline := time.Now().Add(2 * time.Second)
	for h.session.Uploading() {
		if time.Now().After(deadline) {
			t.Fatal("upload did not finish")
		}
		time.Sleep(5 * time.Millisecond)
	}

	rr = do(t, router, http.MethodGet, "/api/session", "")
	if !strings.Contains(rr.Body.String(), upload.DefaultPlaceholder) {
		t.Errorf("preview missing: %s", rr.Body.String())
	}

	rr = do(t, router, http.MethodDelete, "/api/uploads/preview", "")
	if rr.Code != http.StatusNoContent {
		t.Errorf("clear preview status = %d", rr.Code)
	}
	if v := h.session.View(); v.ImagePreview != "" {
		t.Errorf("preview not cleared: %+v", v)
	}
}

func TestUnknownPostIs404(t *testing.T) {
	router, _ := setupRouter(t, time.Hour)
	if rr := do(t, router, http.MethodGet, "/api/posts/99", ""); rr.Code != http.StatusNotFound {
		t.Errorf("status = %d", rr.Code)
	}
	if rr := do(t, router, http.MethodGet, "/api/posts/2", ""); rr.Code != http.StatusOK {
		t.Errorf("status = %d", rr.Code)
	}
}

func TestConcurrentCreatePostKeepsOwnContent(t *testing.T) {
	router, _ := setupRouter(t, time.Hour)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			content := fmt.Sprintf("post-%d", i)
			rr := do(t, router, http.MethodPost, "/api/posts", fmt.Sprintf(`{"content":%q}`, content))
			var resp struct {
				Post models.Post `json:"post"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				errs <- err.Error()
				return
			}
			if resp.Post.Content != content {
				errs <- fmt.Sprintf("sent %q, created %q", content, resp.Post.Content)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
}
