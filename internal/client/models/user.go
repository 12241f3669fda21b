package models

// User is a member of the network.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	IsActive  bool   `json:"is_active"`
}

// FollowedUser is an entry of the followed-users list.
type FollowedUser struct {
	UserId    int64
	Email     string
	Username  string
	CreatedAt string
}

// RegisterRequest is the sign-up form.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

// Credentials are exchanged for a bearer token.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile is a user page: the user, their posts and whether the current
// user follows them.
type Profile struct {
	User        User
	Posts       []Post
	IsFollowing bool
	IsSelf      bool
}
