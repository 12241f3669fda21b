package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophsocial/internal/client/client"
	"github.com/dmitrijs2005/gophsocial/internal/client/models"
	"github.com/dmitrijs2005/gophsocial/internal/client/session"
	"github.com/stretchr/testify/require"
)

func TestFeed(t *testing.T) {
	fc := &fakeClient{FeedRet: []models.Post{{Id: 1}, {Id: 2}}}
	svc := NewSocialService(fc, nil)

	posts, err := svc.Feed(context.Background(), "go")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, "go", fc.LastSearch)

	fc.FeedErr = client.ErrUnavailable
	_, err = svc.Feed(context.Background(), "")
	require.ErrorIs(t, err, client.ErrUnavailable)
}

func TestCreatePost(t *testing.T) {
	fc := &fakeClient{}
	svc := NewSocialService(fc, nil)

	_, err := svc.CreatePost(context.Background(), "", "body", nil)
	require.Error(t, err)

	p, err := svc.CreatePost(context.Background(), "Title", "body", []string{"go"})
	require.NoError(t, err)
	require.Equal(t, "Title", p.Title)
	require.Equal(t, []string{"go"}, fc.LastNewPost.Tags)
}

func TestComment(t *testing.T) {
	fc := &fakeClient{}
	svc := NewSocialService(fc, nil)

	_, err := svc.Comment(context.Background(), 3, "")
	require.Error(t, err)

	c, err := svc.Comment(context.Background(), 3, "nice")
	require.NoError(t, err)
	require.Equal(t, int64(3), c.PostId)
}

func TestProfile(t *testing.T) {
	ctx, _, _ := sessionCtx(t, 1)
	fc := &fakeClient{
		Users:          map[int64]models.User{2: {ID: 2, Username: "bob"}},
		PostsByUserRet: map[int64][]models.Post{2: {{Id: 10}}},
		FollowedRet:    []models.FollowedUser{{UserId: 2}},
	}
	svc := NewSocialService(fc, nil)

	p, err := svc.Profile(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, "bob", p.User.Username)
	require.Len(t, p.Posts, 1)
	require.True(t, p.IsFollowing)
	require.False(t, p.IsSelf)

	p, err = svc.Profile(ctx, 1)
	require.NoError(t, err)
	require.True(t, p.IsSelf)
	require.False(t, p.IsFollowing)
}

func TestProfile_AnyFailureFails(t *testing.T) {
	ctx, _, _ := sessionCtx(t, 1)
	fc := &fakeClient{Users: map[int64]models.User{2: {ID: 2}}, FollowedErr: client.ErrUnavailable}

	_, err := NewSocialService(fc, nil).Profile(ctx, 2)
	require.ErrorIs(t, err, client.ErrUnavailable)
}

func TestProfile_RequiresSignedInSession(t *testing.T) {
	ctx, _, _ := sessionCtx(t, 0)
	_, err := NewSocialService(&fakeClient{}, nil).Profile(ctx, 2)
	require.ErrorIs(t, err, client.ErrUnauthorized)

	_, err = NewSocialService(&fakeClient{}, nil).Profile(context.Background(), 2)
	require.ErrorIs(t, err, session.ErrNoSession)
}

func TestDashboard(t *testing.T) {
	ctx, _, _ := sessionCtx(t, 1)
	fc := &fakeClient{
		Current:        models.User{ID: 1, Username: "alice"},
		PostsByUserRet: map[int64][]models.Post{1: {{Id: 1}, {Id: 2}}},
		FollowedRet:    []models.FollowedUser{{UserId: 2}},
	}

	d, err := NewSocialService(fc, nil).Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, "alice", d.Me.Username)
	require.Len(t, d.Posts, 2)
	require.Len(t, d.Followed, 1)
}

func TestFollowUnfollow(t *testing.T) {
	ctx, _, _ := sessionCtx(t, 1)
	fc := &fakeClient{}
	svc := NewSocialService(fc, nil)

	require.ErrorIs(t, svc.Follow(ctx, 1), ErrSelfFollow)
	require.NoError(t, svc.Follow(ctx, 2))
	require.NoError(t, svc.Unfollow(ctx, 2))
	require.Equal(t, []int64{2}, fc.Followed)
	require.Equal(t, []int64{2}, fc.Unfollowed)

	fc.FollowErr = &client.APIError{Status: 409, Message: "already following"}
	require.Error(t, svc.Follow(ctx, 3))
}

func TestMeAndFollowed(t *testing.T) {
	fc := &fakeClient{Current: models.User{ID: 7}, FollowedRet: []models.FollowedUser{{UserId: 8}}}
	svc := NewSocialService(fc, nil)

	me, err := svc.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(7), me.ID)

	f, err := svc.Followed(context.Background())
	require.NoError(t, err)
	require.Len(t, f, 1)

	fc.CurrentErr = client.ErrUnauthorized
	_, err = svc.Me(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
}
