package session

import (
	"context"
	"log"
	"sync"

	"connectme/internal/models"
	"connectme/internal/store"
	"connectme/internal/upload"
)

// Tab is a top-level view of the app
type Tab string

const (
	TabHome          Tab = "home"
	TabSearch        Tab = "search"
	TabNotifications Tab = "notifications"
	TabProfile       Tab = "profile"
)

// Valid reports whether t names a known tab.
func (t Tab) Valid() bool {
	switch t {
	case TabHome, TabSearch, TabNotifications, TabProfile:
		return true
	}
	return false
}

// Listener is notified about upload progress
type Listener func(eventType string, up *upload.Upload)

// Upload event types
const (
	EventUploadStarted   = "upload_started"
	EventUploadComplete  = "upload_complete"
	EventUploadCancelled = "upload_cancelled"
)

// View is a copy of the session's UI state
type View struct {
	ActiveTab        Tab    `json:"active_tab"`
	DraftContent     string `json:"draft_content"`
	DraftTags        string `json:"draft_tags"`
	ImagePreview     string `json:"image_preview,omitempty"`
	Uploading        bool   `json:"uploading"`
	CommentDraft     string `json:"comment_draft"`
	CommentingOnPost int    `json:"commenting_on_post,omitempty"`
	SearchQuery      string `json:"search_query"`
}

// Session is the viewer's UI-local state layered over a shared store.
// Inputs are consumed only when the operation they feed succeeds.
type Session struct {
	store    *store.Store
	uploader *upload.Uploader
	listener Listener

	mu           sync.Mutex
	tab          Tab
	content      string
	tags         string
	preview      string
	pending      *upload.Upload
	comment      string
	commentingOn int
	query        string
	closed       bool
}

// New creates a session on the home tab.
func New(st *store.Store, up *upload.Uploader, listener Listener) *Session {
	return &Session{
		store:    st,
		uploader: up,
		listener: listener,
		tab:      TabHome,
	}
}

// Store returns the underlying content store
func (s *Session) Store() *store.Store {
	return s.store
}

// SetTab switches the active tab. Unknown tabs are ignored.
func (s *Session) SetTab(t Tab) bool {
	if !t.Valid() {
		return false
	}
	s.mu.Lock()
	s.tab = t
	s.mu.Unlock()
	return true
}

// SetDraft replaces the pending post content and tag input.
func (s *Session) SetDraft(content, tags string) {
	s.mu.Lock()
	s.content = content
	s.tags = tags
	s.mu.Unlock()
}

// AttachImage sets the image preview directly.
func (s *Session) AttachImage(ref string) {
	s.mu.Lock()
	s.preview = ref
	s.mu.Unlock()
}

// ClearPreview removes the attached image preview.
func (s *Session) ClearPreview() {
	s.mu.Lock()
	s.preview = ""
	s.mu.Unlock()
}

// SubmitPost creates a post from the draft. On success the draft content,
// tags and image preview are cleared; on a no-op they are left as they were.
func (s *Session) SubmitPost() (models.Post, bool) {
	return s.SubmitPostWith(nil, nil, nil)
}

// SubmitPostWith is SubmitPost with the non-nil inputs replacing the draft
// first, all in one step. A no-op keeps the replaced draft.
func (s *Session) SubmitPostWith(content, tags, image *string) (models.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if content != nil {
		s.content = *content
	}
	if tags != nil {
		s.tags = *tags
	}
	if image != nil {
		s.preview = *image
	}

	post, ok := s.store.CreatePost(s.content, s.tags, s.preview)
	if !ok {
		return post, false
	}
	s.content = ""
	s.tags = ""
	s.preview = ""
	return post, true
}

// ToggleCommenting selects postID as the post being commented on, or clears
// the selection if it is already selected.
func (s *Session) ToggleCommenting(postID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.commentingOn == postID {
		s.commentingOn = 0
		return
	}
	s.commentingOn = postID
}

// SetCommentDraft replaces the pending comment text.
func (s *Session) SetCommentDraft(content string) {
	s.mu.Lock()
	s.comment = content
	s.mu.Unlock()
}

// SubmitComment adds the pending comment to postID. On success the comment
// draft and the commenting selection are cleared.
func (s *Session) SubmitComment(postID int) (models.Comment, bool) {
	return s.SubmitCommentWith(postID, nil)
}

// SubmitCommentWith is SubmitComment with a non-nil content replacing the
// comment draft first, in the same step.
func (s *Session) SubmitCommentWith(postID int, content *string) (models.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if content != nil {
		s.comment = *content
	}
	comment, ok := s.store.AddComment(postID, s.comment)
	if !ok {
		return comment, false
	}
	s.comment = ""
	s.commentingOn = 0
	return comment, true
}

// StartUpload begins a simulated upload. The uploading flag is visible
// immediately; on completion the result becomes the image preview. Starting
// a new upload cancels the previous one.
func (s *Session) StartUpload(ctx context.Context) *upload.Upload {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	if s.pending != nil {
		s.pending.Cancel()
	}
	up := s.uploader.Start(ctx, s.finishUpload)
	s.pending = up
	// under the lock so "started" always precedes "complete"
	s.notify(EventUploadStarted, up)
	s.mu.Unlock()

	go s.watchCancel(up)
	return up
}

// watchCancel clears the uploading flag when the pending upload is cancelled
// from outside the session, e.g. by its context.
func (s *Session) watchCancel(up *upload.Upload) {
	<-up.Done()
	if up.Status() != upload.Cancelled {
		return
	}

	s.mu.Lock()
	if s.pending != up {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	s.mu.Unlock()

	log.Printf("Upload %s stopped before completing", up.ID)
	s.notify(EventUploadCancelled, up)
}

func (s *Session) finishUpload(up *upload.Upload) {
	ref, ok := up.Result()
	if !ok {
		return
	}

	s.mu.Lock()
	if s.closed || s.pending != up {
		s.mu.Unlock()
		log.Printf("Ignoring stale upload %s", up.ID)
		return
	}
	s.pending = nil
	s.preview = ref
	s.mu.Unlock()

	s.notify(EventUploadComplete, up)
}

func (s *Session) notify(eventType string, up *upload.Upload) {
	if s.listener != nil {
		s.listener(eventType, up)
	}
}

// Uploading reports whether an upload is in progress.
func (s *Session) Uploading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// SetSearchQuery stores the search input.
func (s *Session) SetSearchQuery(q string) {
	s.mu.Lock()
	s.query = q
	s.mu.Unlock()
}

// SearchResults evaluates the stored query against the current snapshot.
// It returns nil when no search is active.
func (s *Session) SearchResults() *models.SearchResult {
	s.mu.Lock()
	q := s.query
	s.mu.Unlock()
	return s.store.Snapshot().Search(q)
}

// View returns a copy of the UI state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		ActiveTab:        s.tab,
		DraftContent:     s.content,
		DraftTags:        s.tags,
		ImagePreview:     s.preview,
		Uploading:        s.pending != nil,
		CommentDraft:     s.comment,
		CommentingOnPost: s.commentingOn,
		SearchQuery:      s.query,
	}
}

// Close tears the session down. A pending upload is cancelled and any
// resolution that still arrives is ignored.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.pending != nil {
		s.pending.Cancel()
		s.pending = nil
	}
}
