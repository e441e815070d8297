package store

import (
	"strings"

	"connectme/internal/models"
)

// UserByID returns the user with the given id, or models.UnknownUser.
func (s *State) UserByID(id int) models.User {
	if i := s.userIndex(id); i >= 0 {
		return s.Users[i]
	}
	return models.UnknownUser
}

// CurrentUser returns the acting user.
func (s *State) CurrentUser() models.User {
	return s.UserByID(s.CurrentUserID)
}

// PostByID returns the post with the given id.
func (s *State) PostByID(id int) (models.Post, bool) {
	if i := s.postIndex(id); i >= 0 {
		return s.Posts[i], true
	}
	return models.Post{}, false
}

// PostsByUser returns the posts authored by userID in feed order.
func (s *State) PostsByUser(userID int) []models.Post {
	posts := []models.Post{}
	for _, p := range s.Posts {
		if p.UserID == userID {
			posts = append(posts, p)
		}
	}
	return posts
}

// Profile builds the profile page of a user. Unknown ids yield the sentinel user.
func (s *State) Profile(userID int) models.ProfileView {
	user := s.UserByID(userID)
	posts := s.PostsByUser(user.ID)
	return models.ProfileView{
		User:          user,
		Posts:         posts,
		PostCount:     len(posts),
		IsCurrentUser: user.ID != 0 && user.ID == s.CurrentUserID,
	}
}

// NotificationFeed resolves the actor of every notification.
func (s *State) NotificationFeed() []models.NotificationView {
	out := make([]models.NotificationView, 0, len(s.Notifications))
	for _, n := range s.Notifications {
		out = append(out, models.NotificationView{Notification: n, Actor: s.UserByID(n.UserID)})
	}
	return out
}

// Search runs Search over the snapshot's users and posts.
func (s *State) Search(query string) *models.SearchResult {
	return Search(query, s.Users, s.Posts)
}

// Search matches query case-insensitively as a substring of user names,
// usernames and bios, and of post content and tags. Input order is preserved.
// A blank query returns nil, which callers treat as "no active search".
func Search(query string, users []models.User, posts []models.Post) *models.SearchResult {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	q := strings.ToLower(query)

	result := &models.SearchResult{
		Users: []models.User{},
		Posts: []models.Post{},
	}
	for _, u := range users {
		if contains(u.Name, q) || contains(u.Username, q) || contains(u.Bio, q) {
			result.Users = append(result.Users, u)
		}
	}
	for _, p := range posts {
		if contains(p.Content, q) || anyTagContains(p.Tags, q) {
			result.Posts = append(result.Posts, p)
		}
	}
	return result
}

// contains expects q already lower-cased.
func contains(s, q string) bool {
	return strings.Contains(strings.ToLower(s), q)
}

func anyTagContains(tags []string, q string) bool {
	for _, t := range tags {
		if contains(t, q) {
			return true
		}
	}
	return false
}
