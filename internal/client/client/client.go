package client

import (
	"context"

	"github.com/dmitrijs2005/gophsocial/internal/client/models"
)

type Client interface {
	Close() error
	Health(ctx context.Context) error

	CreateToken(ctx context.Context, creds models.Credentials) (string, error)
	RegisterUser(ctx context.Context, req models.RegisterRequest) error
	ActivateUser(ctx context.Context, token string) error

	ListUsers(ctx context.Context, search string, offset, limit int) ([]models.User, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	FollowedUsers(ctx context.Context) ([]models.FollowedUser, error)
	Follow(ctx context.Context, id int64) error
	Unfollow(ctx context.Context, id int64) error

	Feed(ctx context.Context, search string) ([]models.Post, error)
	CreatePost(ctx context.Context, post models.NewPost) (*models.Post, error)
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	PostsByUser(ctx context.Context, userID int64) ([]models.Post, error)
	CreateComment(ctx context.Context, postID int64, content string) (*models.Comment, error)
}
