package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophsocial/internal/client/models"
	"github.com/dmitrijs2005/gophsocial/internal/client/session"
	"github.com/dmitrijs2005/gophsocial/internal/client/tokenstore"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func tokenFor(t *testing.T, userID int64) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      userID,
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test"))
	require.NoError(t, err)
	return tok
}

// sessionCtx provides a session to ctx, signed in as userID when > 0.
func sessionCtx(t *testing.T, userID int64) (context.Context, *session.Session, *tokenstore.Memory) {
	t.Helper()
	store := tokenstore.NewMemory()
	s := session.New(store, nil, nil)
	ctx, release, err := session.Provide(context.Background(), s)
	require.NoError(t, err)
	t.Cleanup(release)

	if userID > 0 {
		_, err := s.Login(ctx, tokenFor(t, userID))
		require.NoError(t, err)
	}
	return ctx, s, store
}

// ---- fake client ----

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	mu sync.Mutex

	CloseErr  error
	HealthErr error

	CreateTokenRet string
	CreateTokenErr error
	RegisterErr    error
	ActivateErr    error

	Users       map[int64]models.User
	GetUserErr  error
	Current     models.User
	CurrentErr  error
	FollowedRet []models.FollowedUser
	FollowedErr error
	FollowErr   error

	FeedRet        []models.Post
	FeedErr        error
	PostsByUserRet map[int64][]models.Post
	PostsErr       error
	PostErr        error
	CreatePostErr  error
	CommentErr     error

	LastCreds    models.Credentials
	LastRegister models.RegisterRequest
	LastActivate string
	LastSearch   string
	LastNewPost  models.NewPost
	LastComment  string
	Followed     []int64
	Unfollowed   []int64
}

func (f *fakeClient) Close() error                     { return f.CloseErr }
func (f *fakeClient) Health(ctx context.Context) error { return f.HealthErr }

func (f *fakeClient) CreateToken(ctx context.Context, creds models.Credentials) (string, error) {
	f.LastCreds = creds
	return f.CreateTokenRet, f.CreateTokenErr
}

func (f *fakeClient) RegisterUser(ctx context.Context, req models.RegisterRequest) error {
	f.LastRegister = req
	return f.RegisterErr
}

func (f *fakeClient) ActivateUser(ctx context.Context, token string) error {
	f.LastActivate = token
	return f.ActivateErr
}

func (f *fakeClient) ListUsers(ctx context.Context, search string, offset, limit int) ([]models.User, error) {
	return nil, nil
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.User, error) {
	if f.CurrentErr != nil {
		return nil, f.CurrentErr
	}
	u := f.Current
	return &u, nil
}

func (f *fakeClient) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if f.GetUserErr != nil {
		return nil, f.GetUserErr
	}
	u := f.Users[id]
	return &u, nil
}

func (f *fakeClient) FollowedUsers(ctx context.Context) ([]models.FollowedUser, error) {
	return f.FollowedRet, f.FollowedErr
}

func (f *fakeClient) Follow(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Followed = append(f.Followed, id)
	return f.FollowErr
}

func (f *fakeClient) Unfollow(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Unfollowed = append(f.Unfollowed, id)
	return f.FollowErr
}

func (f *fakeClient) Feed(ctx context.Context, search string) ([]models.Post, error) {
	f.LastSearch = search
	return f.FeedRet, f.FeedErr
}

func (f *fakeClient) CreatePost(ctx context.Context, post models.NewPost) (*models.Post, error) {
	f.LastNewPost = post
	if f.CreatePostErr != nil {
		return nil, f.CreatePostErr
	}
	return &models.Post{Id: 1, Title: post.Title, Content: post.Content, Tags: post.Tags}, nil
}

func (f *fakeClient) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	if f.PostErr != nil {
		return nil, f.PostErr
	}
	return &models.Post{Id: id}, nil
}

func (f *fakeClient) PostsByUser(ctx context.Context, userID int64) ([]models.Post, error) {
	return f.PostsByUserRet[userID], f.PostsErr
}

func (f *fakeClient) CreateComment(ctx context.Context, postID int64, content string) (*models.Comment, error) {
	f.LastComment = content
	if f.CommentErr != nil {
		return nil, f.CommentErr
	}
	return &models.Comment{Id: 1, PostId: postID, Content: content}, nil
}
