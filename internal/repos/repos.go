package repos

import (
	"connectme/internal/models"
)

// UserRepo defines read access to users
type UserRepo interface {
	GetByID(id int) models.User
	Current() models.User
	Profile(id int) models.ProfileView
}

// PostRepo defines read access to the feed
type PostRepo interface {
	List() []models.Post
	Get(id int) (models.Post, bool)
	Search(query string) *models.SearchResult
}

// NotificationRepo defines read access to notifications
type NotificationRepo interface {
	Feed() []models.NotificationView
}

// Repos groups repository interfaces for convenience
type Repos struct {
	Users         UserRepo
	Posts         PostRepo
	Notifications NotificationRepo
}
