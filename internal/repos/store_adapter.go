package repos

import (
	"connectme/internal/models"
	"connectme/internal/store"
)

// StoreAdapter serves every repo from the current store snapshot
type StoreAdapter struct {
	Store *store.Store
}

func NewStoreAdapter(st *store.Store) *StoreAdapter {
	return &StoreAdapter{Store: st}
}

// NewRepos wires all repos to one adapter
func NewRepos(st *store.Store) *Repos {
	a := NewStoreAdapter(st)
	return &Repos{Users: a, Posts: a, Notifications: a}
}

// UserRepo
func (a *StoreAdapter) GetByID(id int) models.User {
	return a.Store.Snapshot().UserByID(id)
}

func (a *StoreAdapter) Current() models.User {
	return a.Store.Snapshot().CurrentUser()
}

func (a *StoreAdapter) Profile(id int) models.ProfileView {
	return a.Store.Snapshot().Profile(id)
}

// PostRepo
func (a *StoreAdapter) List() []models.Post {
	return a.Store.Snapshot().Posts
}

func (a *StoreAdapter) Get(id int) (models.Post, bool) {
	return a.Store.Snapshot().PostByID(id)
}

func (a *StoreAdapter) Search(query string) *models.SearchResult {
	return a.Store.Snapshot().Search(query)
}

// NotificationRepo
func (a *StoreAdapter) Feed() []models.NotificationView {
	return a.Store.Snapshot().NotificationFeed()
}
