package store

import (
	"log"
	"sync"

	"connectme/internal/models"
	"connectme/internal/utils"
)

// Event types emitted after a mutation changed the store
const (
	EventPostCreated    = "post_created"
	EventPostReaction   = "post_reaction"
	EventCommentCreated = "comment_created"
	EventFollow         = "follow"
)

// Event describes a successful mutation
type Event struct {
	Type    string
	PostID  int
	Post    *models.Post
	Comment *models.Comment
	User    *models.User
}

// Handler receives events emitted by the store
type Handler func(Event)

// Store owns the current snapshot and serializes every mutation.
type Store struct {
	mu    sync.Mutex
	state *State

	hmu      sync.RWMutex
	handlers map[string][]Handler
}

// New creates a store starting from the given snapshot.
func New(initial *State) *Store {
	if initial == nil {
		initial = Seed()
	}
	return &Store{
		state:    initial,
		handlers: map[string][]Handler{},
	}
}

// Snapshot returns the current state. Callers must not modify it.
func (s *Store) Snapshot() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Sync runs fn with the current state while mutations are held off. Every
// event is emitted either before fn starts or after it returns, so a listener
// registered inside fn sees exactly the changes missing from the snapshot.
func (s *Store) Sync(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// On registers h for events of the given type. Handlers run while the store
// is locked, in mutation order; they must not call back into the Store.
func (s *Store) On(eventType string, h Handler) {
	s.hmu.Lock()
	s.handlers[eventType] = append(s.handlers[eventType], h)
	s.hmu.Unlock()
}

func (s *Store) emit(ev Event) {
	s.hmu.RLock()
	hs := s.handlers[ev.Type]
	s.hmu.RUnlock()
	for _, h := range hs {
		h(ev)
	}
}

// CreatePost applies State.CreatePost to the current snapshot.
func (s *Store) CreatePost(content, tagString, image string) (models.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, post, ok := s.state.CreatePost(content, tagString, image)
	if !ok {
		return post, false
	}
	s.state = next
	log.Printf("Post %d created by user %d (%d tags)", post.ID, post.UserID, len(post.Tags))
	s.emit(Event{Type: EventPostCreated, PostID: post.ID, Post: &post})
	return post, true
}

// ToggleLike applies State.ToggleLike to the current snapshot.
func (s *Store) ToggleLike(postID int) (models.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, post, ok := s.state.ToggleLike(postID)
	if !ok {
		return post, false
	}
	s.state = next
	s.emit(Event{Type: EventPostReaction, PostID: post.ID, Post: &post})
	return post, true
}

// AddComment applies State.AddComment to the current snapshot.
func (s *Store) AddComment(postID int, content string) (models.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, comment, ok := s.state.AddComment(postID, content)
	if !ok {
		return comment, false
	}
	s.state = next
	log.Printf("Comment %d added to post %d: %q", comment.ID, postID, utils.Truncate(comment.Content, 40))
	s.emit(Event{Type: EventCommentCreated, PostID: postID, Comment: &comment})
	return comment, true
}

// ToggleFollow applies State.ToggleFollow to the current snapshot.
func (s *Store) ToggleFollow(userID int) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, user, ok := s.state.ToggleFollow(userID)
	if !ok {
		return user, false
	}
	s.state = next
	s.emit(Event{Type: EventFollow, User: &user})
	return user, true
}
