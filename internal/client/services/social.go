package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/gophsocial/internal/client/client"
	"github.com/dmitrijs2005/gophsocial/internal/client/models"
	"github.com/dmitrijs2005/gophsocial/internal/client/session"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
)

var ErrSelfFollow = errors.New("you cannot follow yourself")

// Dashboard is the signed-in user's own page.
type Dashboard struct {
	Me       models.User
	Posts    []models.Post
	Followed []models.FollowedUser
}

type SocialService interface {
	Feed(ctx context.Context, search string) ([]models.Post, error)
	Post(ctx context.Context, id int64) (*models.Post, error)
	CreatePost(ctx context.Context, title, content string, tags []string) (*models.Post, error)
	Comment(ctx context.Context, postID int64, content string) (*models.Comment, error)
	Profile(ctx context.Context, userID int64) (*models.Profile, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
	Follow(ctx context.Context, userID int64) error
	Unfollow(ctx context.Context, userID int64) error
	Followed(ctx context.Context) ([]models.FollowedUser, error)
	Me(ctx context.Context) (*models.User, error)
}

type socialService struct {
	client client.Client
	log    logging.Logger
}

func NewSocialService(c client.Client, log logging.Logger) SocialService {
	if log == nil {
		log = logging.Nop{}
	}
	return &socialService{client: c, log: log}
}

func (s *socialService) fail(ctx context.Context, op string, err error) error {
	if errors.Is(err, client.ErrUnavailable) {
		s.log.Warn(ctx, op+" failed", "error", err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *socialService) Feed(ctx context.Context, search string) ([]models.Post, error) {
	posts, err := s.client.Feed(ctx, search)
	if err != nil {
		return nil, s.fail(ctx, "load feed", err)
	}
	return posts, nil
}

func (s *socialService) Post(ctx context.Context, id int64) (*models.Post, error) {
	p, err := s.client.GetPost(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "load post", err)
	}
	return p, nil
}

func (s *socialService) CreatePost(ctx context.Context, title, content string, tags []string) (*models.Post, error) {
	np := models.NewPost{Title: title, Content: content, Tags: tags}
	if err := validatePost(np); err != nil {
		return nil, fmt.Errorf("invalid post: %w", err)
	}

	p, err := s.client.CreatePost(ctx, np)
	if err != nil {
		return nil, s.fail(ctx, "create post", err)
	}
	s.log.Info(ctx, "post created", "post_id", p.Id)
	return p, nil
}

func (s *socialService) Comment(ctx context.Context, postID int64, content string) (*models.Comment, error) {
	if err := validateComment(content); err != nil {
		return nil, fmt.Errorf("invalid comment: %w", err)
	}

	c, err := s.client.CreateComment(ctx, postID, content)
	if err != nil {
		return nil, s.fail(ctx, "add comment", err)
	}
	return c, nil
}

// Profile loads the user, their posts and the follow status in parallel.
func (s *socialService) Profile(ctx context.Context, userID int64) (*models.Profile, error) {
	me, err := currentIdentity(ctx)
	if err != nil {
		return nil, err
	}

	var (
		user     *models.User
		posts    []models.Post
		followed []models.FollowedUser
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.client.GetUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = s.client.PostsByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		followed, err = s.client.FollowedUsers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.fail(ctx, "load profile", err)
	}

	return &models.Profile{
		User:        *user,
		Posts:       posts,
		IsFollowing: follows(followed, userID),
		IsSelf:      me.ID == userID,
	}, nil
}

func (s *socialService) Dashboard(ctx context.Context) (*Dashboard, error) {
	me, err := currentIdentity(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.client.CurrentUser(gctx)
		if err == nil {
			d.Me = *u
		}
		return err
	})
	g.Go(func() error {
		var err error
		d.Posts, err = s.client.PostsByUser(gctx, me.ID)
		return err
	})
	g.Go(func() error {
		var err error
		d.Followed, err = s.client.FollowedUsers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.fail(ctx, "load dashboard", err)
	}
	return d, nil
}

func (s *socialService) Follow(ctx context.Context, userID int64) error {
	me, err := currentIdentity(ctx)
	if err != nil {
		return err
	}
	if me.ID == userID {
		return ErrSelfFollow
	}
	if err := s.client.Follow(ctx, userID); err != nil {
		return s.fail(ctx, "follow", err)
	}
	s.log.Info(ctx, "followed user", "user_id", userID)
	return nil
}

func (s *socialService) Unfollow(ctx context.Context, userID int64) error {
	if err := s.client.Unfollow(ctx, userID); err != nil {
		return s.fail(ctx, "unfollow", err)
	}
	s.log.Info(ctx, "unfollowed user", "user_id", userID)
	return nil
}

func (s *socialService) Followed(ctx context.Context) ([]models.FollowedUser, error) {
	users, err := s.client.FollowedUsers(ctx)
	if err != nil {
		return nil, s.fail(ctx, "load followed users", err)
	}
	return users, nil
}

func (s *socialService) Me(ctx context.Context) (*models.User, error) {
	u, err := s.client.CurrentUser(ctx)
	if err != nil {
		return nil, s.fail(ctx, "load current user", err)
	}
	return u, nil
}

// currentIdentity returns the signed-in user of the session in ctx.
func currentIdentity(ctx context.Context) (session.UserIdentity, error) {
	s, err := session.FromContext(ctx)
	if err != nil {
		return session.UserIdentity{}, err
	}
	id, ok := s.Identity()
	if !ok {
		return session.UserIdentity{}, client.ErrUnauthorized
	}
	return id, nil
}

func follows(list []models.FollowedUser, userID int64) bool {
	for _, f := range list {
		if f.UserId == userID {
			return true
		}
	}
	return false
}
