package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"connectme/internal/models"
	"connectme/internal/repos"
	"connectme/internal/session"

	"github.com/gorilla/mux"
)

type Handler struct {
	// lifetime of uploads; request contexts end too early
	ctx     context.Context
	session *session.Session
	repos   *repos.Repos
	hub     *Hub
}

func NewHandler(ctx context.Context, sess *session.Session, hub *Hub) *Handler {
	h := &Handler{
		ctx:     ctx,
		session: sess,
		repos:   repos.NewRepos(sess.Store()),
		hub:     hub,
	}
	hub.Watch(sess.Store())
	// start hub run loop for safe broadcasting
	go h.hub.Run()
	return h
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()

	// --- Users ---
	api.HandleFunc("/me", h.Me).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}", h.GetUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}/profile", h.GetProfile).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}/follow", h.Follow).Methods(http.MethodPost)

	// --- Posts ---
	api.HandleFunc("/posts", h.GetPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts", h.CreatePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id:[0-9]+}", h.GetPost).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id:[0-9]+}/like", h.LikePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id:[0-9]+}/comments", h.AddComment).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id:[0-9]+}/commenting", h.ToggleCommenting).Methods(http.MethodPost)

	// --- Search & notifications ---
	api.HandleFunc("/search", h.Search).Methods(http.MethodGet)
	api.HandleFunc("/notifications", h.GetNotifications).Methods(http.MethodGet)

	// --- Session ---
	api.HandleFunc("/session", h.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/session/tab", h.SetTab).Methods(http.MethodPut)
	api.HandleFunc("/session/draft", h.SetDraft).Methods(http.MethodPut)
	api.HandleFunc("/session/search", h.SetSearch).Methods(http.MethodPut)

	// --- Uploads ---
	api.HandleFunc("/uploads", h.StartUpload).Methods(http.MethodPost)
	api.HandleFunc("/uploads/preview", h.ClearPreview).Methods(http.MethodDelete)

	router.HandleFunc("/ws", h.ServeWS)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: encode response: %v", err)
	}
}

// pathID reads the {id} route variable; the route pattern guarantees digits
func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

// decodeOptional decodes a JSON body; an empty body leaves v untouched
func decodeOptional(r *http.Request, v interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return json.NewDecoder(r.Body).Decode(v)
}

//
// ===================== USERS =====================
//

// GET /api/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.repos.Users.Current())
}

// GET /api/users/{id}
// Unknown ids answer with the "Unknown User" record, not 404.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.repos.Users.GetByID(pathID(r)))
}

// GET /api/users/{id}/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.repos.Users.Profile(pathID(r)))
}

// POST /api/users/{id}/follow
func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	user, changed := h.session.Store().ToggleFollow(id)
	if !changed {
		user = h.repos.Users.GetByID(id)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"changed": changed,
		"user":    user,
	})
}

//
// ===================== POSTS =====================
//

// GET /api/posts
func (h *Handler) GetPosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.repos.Posts.List())
}

// GET /api/posts/{id}
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, ok := h.repos.Posts.Get(pathID(r))
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// POST /api/posts
// Fields present in the body replace the session draft before submitting.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content *string `json:"content"`
		Tags    *string `json:"tags"`
		Image   *string `json:"image"`
	}
	if err := decodeOptional(r, &req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	post, ok := h.session.SubmitPostWith(req.Content, req.Tags, req.Image)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{"changed": false})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"changed": true,
		"post":    post,
	})
}

// POST /api/posts/{id}/like
func (h *Handler) LikePost(w http.ResponseWriter, r *http.Request) {
	post, changed := h.session.Store().ToggleLike(pathID(r))
	resp := map[string]interface{}{"changed": changed}
	if changed {
		resp["post"] = post
	}
	writeJSON(w, http.StatusOK, resp)
}

//
// ===================== COMMENTS =====================
//

// POST /api/posts/{id}/comments
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content *string `json:"content"`
	}
	if err := decodeOptional(r, &req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	comment, ok := h.session.SubmitCommentWith(pathID(r), req.Content)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{"changed": false})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"changed": true,
		"comment": comment,
	})
}

// POST /api/posts/{id}/commenting
func (h *Handler) ToggleCommenting(w http.ResponseWriter, r *http.Request) {
	h.session.ToggleCommenting(pathID(r))
	writeJSON(w, http.StatusOK, h.session.View())
}

//
// ===================== SEARCH & NOTIFICATIONS =====================
//

// GET /api/search?q=
// A blank query answers null: no search is active.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.repos.Posts.Search(r.URL.Query().Get("q")))
}

// GET /api/notifications
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.repos.Notifications.Feed())
}

//
// ===================== SESSION =====================
//

// GET /api/session
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.View())
}

// PUT /api/session/tab
func (h *Handler) SetTab(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tab string `json:"tab"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if !h.session.SetTab(session.Tab(req.Tab)) {
		http.Error(w, "unknown tab", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.session.View())
}

// PUT /api/session/draft
func (h *Handler) SetDraft(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
		Tags    string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	h.session.SetDraft(req.Content, req.Tags)
	writeJSON(w, http.StatusOK, h.session.View())
}

// PUT /api/session/search
func (h *Handler) SetSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	h.session.SetSearchQuery(req.Query)
	writeJSON(w, http.StatusOK, struct {
		Query   string               `json:"query"`
		Results *models.SearchResult `json:"results"`
	}{req.Query, h.session.SearchResults()})
}

//
// ===================== UPLOADS =====================
//

// POST /api/uploads
func (h *Handler) StartUpload(w http.ResponseWriter, r *http.Request) {
	up := h.session.StartUpload(h.ctx)
	if up == nil {
		http.Error(w, "session closed", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"id":        up.ID,
		"uploading": true,
	})
}

// DELETE /api/uploads/preview
func (h *Handler) ClearPreview(w http.ResponseWriter, r *http.Request) {
	h.session.ClearPreview()
	w.WriteHeader(http.StatusNoContent)
}
