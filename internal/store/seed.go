package store

import "connectme/internal/models"

// SeedCurrentUserID is the seed user acting as the viewer.
const SeedCurrentUserID = 3

func seedUsers() []models.User {
	return []models.User{
		{
			ID:        1,
			Name:      "Alex Johnson",
			Username:  "@alexj",
			Avatar:    "https://res.cloudinary.com/dhuonrrh9/image/upload/v1742707503/eren-yeager-pfp-with-cloudy-sky-p4ff16eninzqrgui_sz2rr4.jpg",
			Bio:       "Digital artist and photography enthusiast",
			Followers: 245,
			Following: 182,
		},
		{
			ID:        2,
			Name:      "Maya Patel",
			Username:  "@maya_creates",
			Avatar:    "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcQZLeJiagbpgM7yfGciyY6yJ7bKyUpdoDBEUw&s",
			Bio:       "Travel blogger | Food lover | Adventure seeker",
			Followers: 1024,
			Following: 567,
		},
		{
			ID:        3,
			Name:      "Laukik",
			Username:  "@current_user",
			Avatar:    "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcTYt2HYmxgDf4nKpUZy4-2-bhcvFa2xBUqylQ&s",
			Bio:       "This is your profile!",
			Followers: 158,
			Following: 203,
		},
	}
}

func seedPosts() []models.Post {
	return []models.Post{
		{
			ID:      1,
			UserID:  1,
			Content: "Just finished my latest digital artwork! What do you think?",
			Image:   "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcQBgJAekoveYXSbgOF-sR3Y7mU_Fdpql3M9CA&s",
			Likes:   42,
			Comments: []models.Comment{
				{ID: 1, UserID: 2, Content: "This is amazing! Love the colors!", Timestamp: "2h ago"},
				{ID: 2, UserID: 3, Content: "Great work as always!", Timestamp: "1h ago"},
			},
			Timestamp: "3h ago",
			Tags:      []string{"digitalart", "creativity"},
		},
		{
			ID:      2,
			UserID:  2,
			Content: "Exploring the beautiful trails this weekend. The views were breathtaking!",
			Image:   "https://images.unsplash.com/photo-1745503262235-611b59926297?q=80&w=1970&auto=format&fit=crop&ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D",
			Likes:   78,
			Comments: []models.Comment{
				{ID: 3, UserID: 1, Content: "Wow! Where is this?", Timestamp: "5h ago"},
			},
			Timestamp: "6h ago",
			Tags:      []string{"nature", "hiking", "weekend"},
		},
	}
}

func seedNotifications() []models.Notification {
	return []models.Notification{
		{ID: 1, Type: models.NotificationLike, UserID: 1, Content: "liked your post", Timestamp: "1h ago"},
		{ID: 2, Type: models.NotificationComment, UserID: 2, Content: "commented on your post", Timestamp: "3h ago"},
		{ID: 3, Type: models.NotificationFollow, UserID: 1, Content: "started following you", Timestamp: "1d ago"},
	}
}

// Seed returns a fresh copy of the demo data set.
func Seed() *State {
	return &State{
		Users:         seedUsers(),
		Posts:         seedPosts(),
		Notifications: seedNotifications(),
		CurrentUserID: SeedCurrentUserID,
	}
}
