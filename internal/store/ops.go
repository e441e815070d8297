package store

import (
	"connectme/internal/models"
	"connectme/internal/utils"
)

// State is an immutable snapshot of the content store.
// Operations return a new *State and leave the receiver untouched.
type State struct {
	Users         []models.User
	Posts         []models.Post
	Notifications []models.Notification
	CurrentUserID int
}

// CreatePost prepends a post authored by the current user.
// It is a no-op when content is blank and no image is attached.
//
// Ids are len(posts)+1, which only holds while the store has a single writer
// and no delete operation.
func (s *State) CreatePost(content, tagString, image string) (*State, models.Post, bool) {
	if ok, _ := utils.ValidatePostData(content, image); !ok {
		return s, models.Post{}, false
	}

	post := models.Post{
		ID:        len(s.Posts) + 1,
		UserID:    s.CurrentUserID,
		Content:   content,
		Image:     image,
		Likes:     0,
		Comments:  []models.Comment{},
		Timestamp: models.JustNow,
		Tags:      utils.ParseTags(tagString),
	}

	posts := make([]models.Post, 0, len(s.Posts)+1)
	posts = append(posts, post)
	posts = append(posts, s.Posts...)

	next := *s
	next.Posts = posts
	return &next, post, true
}

// ToggleLike flips the current user's like on a post.
func (s *State) ToggleLike(postID int) (*State, models.Post, bool) {
	i := s.postIndex(postID)
	if i < 0 {
		return s, models.Post{}, false
	}

	post := s.Posts[i]
	if post.LikedByCurrentUser {
		post.Likes--
	} else {
		post.Likes++
	}
	post.LikedByCurrentUser = !post.LikedByCurrentUser

	return s.withPost(i, post), post, true
}

// AddComment appends a comment by the current user to a post.
// Blank content or an unknown post leaves the state unchanged.
func (s *State) AddComment(postID int, content string) (*State, models.Comment, bool) {
	if ok, _ := utils.ValidateCommentData(content); !ok {
		return s, models.Comment{}, false
	}
	i := s.postIndex(postID)
	if i < 0 {
		return s, models.Comment{}, false
	}

	post := s.Posts[i]
	comment := models.Comment{
		ID:        len(post.Comments) + 1,
		UserID:    s.CurrentUserID,
		Content:   content,
		Timestamp: models.JustNow,
	}

	// fresh backing array so older snapshots never see the new comment
	comments := make([]models.Comment, 0, len(post.Comments)+1)
	comments = append(comments, post.Comments...)
	post.Comments = append(comments, comment)

	return s.withPost(i, post), comment, true
}

// ToggleFollow flips the current user's follow on another user.
func (s *State) ToggleFollow(userID int) (*State, models.User, bool) {
	if userID == s.CurrentUserID {
		return s, models.User{}, false
	}
	i := s.userIndex(userID)
	if i < 0 {
		return s, models.User{}, false
	}

	user := s.Users[i]
	if user.IsFollowedByCurrentUser {
		user.Followers--
	} else {
		user.Followers++
	}
	user.IsFollowedByCurrentUser = !user.IsFollowedByCurrentUser

	users := make([]models.User, len(s.Users))
	copy(users, s.Users)
	users[i] = user

	next := *s
	next.Users = users
	return &next, user, true
}

func (s *State) withPost(i int, post models.Post) *State {
	posts := make([]models.Post, len(s.Posts))
	copy(posts, s.Posts)
	posts[i] = post

	next := *s
	next.Posts = posts
	return &next
}

func (s *State) postIndex(id int) int {
	for i := range s.Posts {
		if s.Posts[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) userIndex(id int) int {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return i
		}
	}
	return -1
}
