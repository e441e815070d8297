package models

// JustNow is the display timestamp given to every post and comment created at runtime.
const JustNow = "Just now"

// User represents a member of the network
type User struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar,omitempty"`
	Bio       string `json:"bio"`
	Followers int    `json:"followers"`
	Following int    `json:"following"`
	// Relationship of the current user to this user only.
	IsFollowedByCurrentUser bool `json:"is_followed_by_current_user"`
}

// UnknownUser is returned by lookups that miss.
var UnknownUser = User{Name: "Unknown User"}

// Post represents a feed entry
type Post struct {
	ID                 int       `json:"id"`
	UserID             int       `json:"user_id"`
	Content            string    `json:"content"`
	Image              string    `json:"image,omitempty"`
	Likes              int       `json:"likes"`
	LikedByCurrentUser bool      `json:"liked_by_current_user"`
	Comments           []Comment `json:"comments"`
	Timestamp          string    `json:"timestamp"`
	Tags               []string  `json:"tags"`
}

// Comment represents a comment embedded in a post
type Comment struct {
	ID        int    `json:"id"`
	UserID    int    `json:"user_id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// NotificationType is the kind of activity a notification reports
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
)

// Notification is a read-only activity entry
type Notification struct {
	ID        int              `json:"id"`
	Type      NotificationType `json:"type"`
	UserID    int              `json:"user_id"`
	Content   string           `json:"content"`
	Timestamp string           `json:"timestamp"`
}

// NotificationView pairs a notification with its resolved actor
type NotificationView struct {
	Notification
	Actor User `json:"actor"`
}

// SearchResult holds the users and posts matching a query.
// A nil *SearchResult means no search is active.
type SearchResult struct {
	Users []User `json:"users"`
	Posts []Post `json:"posts"`
}

// ProfileView is a user together with the posts they authored
type ProfileView struct {
	User          User   `json:"user"`
	Posts         []Post `json:"posts"`
	PostCount     int    `json:"post_count"`
	IsCurrentUser bool   `json:"is_current_user"`
}
