package directory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophsocial/internal/client/models"
	"github.com/stretchr/testify/require"
)

type listCall struct {
	Search string
	Offset int
	Limit  int
}

// fakeLister serves a fixed directory of n users.
type fakeLister struct {
	mu    sync.Mutex
	n     int
	err   error
	calls []listCall
}

func (f *fakeLister) ListUsers(_ context.Context, search string, offset, limit int) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, listCall{search, offset, limit})
	if f.err != nil {
		return nil, f.err
	}
	var out []models.User
	for i := offset; i < f.n && len(out) < limit; i++ {
		out = append(out, models.User{ID: int64(i + 1)})
	}
	return out, nil
}

func (f *fakeLister) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestPager_FetchOverfetchesByOne(t *testing.T) {
	f := &fakeLister{n: 30}
	p := New(f, 12, nil)

	page, err := p.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Users, 12)
	require.True(t, page.HasMore)
	require.Equal(t, listCall{"", 0, 13}, f.calls[0])
	require.Equal(t, Cursor{Offset: 0, Limit: 12, LastPageSize: 13}, p.Cursor())
	require.Equal(t, 1, page.Number())
}

func TestPager_ExactPageHasNoMore(t *testing.T) {
	p := New(&fakeLister{n: 12}, 12, nil)

	page, err := p.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Users, 12)
	require.False(t, page.HasMore)
}

func TestPager_EmptyResponse(t *testing.T) {
	p := New(&fakeLister{}, 12, nil)

	page, err := p.Fetch(context.Background())
	require.NoError(t, err)
	require.Empty(t, page.Users)
	require.False(t, page.HasMore)
	require.Zero(t, p.Cursor().LastPageSize)
}

func TestPager_Walk(t *testing.T) {
	ctx := context.Background()
	f := &fakeLister{n: 30}
	p := New(f, 12, nil)

	_, err := p.Fetch(ctx)
	require.NoError(t, err)

	page, err := p.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, 12, page.Offset)
	require.Equal(t, int64(13), page.Users[0].ID)
	require.True(t, page.HasMore)

	page, err = p.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, 24, page.Offset)
	require.Len(t, page.Users, 6)
	require.False(t, page.HasMore)
	require.Equal(t, 3, page.Number())

	calls := f.callCount()
	page, err = p.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, 24, page.Offset, "next without more is a no-op")
	require.Equal(t, calls, f.callCount(), "and issues no request")

	page, err = p.Previous(ctx)
	require.NoError(t, err)
	require.Equal(t, 12, page.Offset)

	page, err = p.Previous(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, page.Offset)

	calls = f.callCount()
	page, err = p.Previous(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, page.Offset)
	require.Equal(t, calls, f.callCount())
}

func TestPager_SearchResetsOffset(t *testing.T) {
	ctx := context.Background()
	f := &fakeLister{n: 30}
	p := New(f, 12, nil)

	_, err := p.Fetch(ctx)
	require.NoError(t, err)
	_, err = p.Next(ctx)
	require.NoError(t, err)

	page, err := p.Search(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, 0, page.Offset)
	require.Equal(t, "bob", page.Search)
	require.Equal(t, listCall{"bob", 0, 13}, f.calls[len(f.calls)-1])
}

func TestPager_SetLimit(t *testing.T) {
	ctx := context.Background()
	f := &fakeLister{n: 30}
	p := New(f, 0, nil)
	require.Equal(t, 12, p.Cursor().Limit)

	_, err := p.SetLimit(ctx, 0)
	require.ErrorIs(t, err, ErrInvalidLimit)

	page, err := p.SetLimit(ctx, 5)
	require.NoError(t, err)
	require.Len(t, page.Users, 5)
	require.Equal(t, listCall{"", 0, 6}, f.calls[len(f.calls)-1])
}

func TestPager_ErrorKeepsPage(t *testing.T) {
	ctx := context.Background()
	f := &fakeLister{n: 30}
	p := New(f, 12, nil)

	first, err := p.Fetch(ctx)
	require.NoError(t, err)

	f.err = errors.New("down")
	_, err = p.Fetch(ctx)
	require.ErrorIs(t, err, f.err)
	require.Equal(t, first, p.Current())
}

func TestPager_FailedMoveKeepsCursor(t *testing.T) {
	ctx := context.Background()
	f := &fakeLister{n: 30}
	p := New(f, 12, nil)

	_, err := p.Fetch(ctx)
	require.NoError(t, err)

	f.err = errors.New("down")
	page, err := p.Next(ctx)
	require.ErrorIs(t, err, f.err)
	require.Equal(t, 0, page.Offset)
	require.Equal(t, 0, p.Cursor().Offset)
	require.Equal(t, 0, p.Current().Offset)

	f.err = nil
	page, err = p.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, 12, page.Offset, "retry lands on the second page")
	require.Equal(t, int64(13), page.Users[0].ID)
	require.Equal(t, 12, p.Cursor().Offset)

	f.err = errors.New("down")
	_, err = p.Previous(ctx)
	require.ErrorIs(t, err, f.err)
	require.Equal(t, 12, p.Cursor().Offset)
	require.Equal(t, 12, p.Current().Offset)

	f.err = nil
	page, err = p.Previous(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, page.Offset)
}

func TestPager_FailedSearchKeepsQuery(t *testing.T) {
	ctx := context.Background()
	f := &fakeLister{n: 30}
	p := New(f, 12, nil)

	_, err := p.Fetch(ctx)
	require.NoError(t, err)
	_, err = p.Next(ctx)
	require.NoError(t, err)

	f.err = errors.New("down")
	_, err = p.Search(ctx, "bob")
	require.Error(t, err)
	_, err = p.SetLimit(ctx, 5)
	require.Error(t, err)
	require.Equal(t, Cursor{Offset: 12, Limit: 12, LastPageSize: 13}, p.Cursor())
	require.Empty(t, p.Current().Search)
}

func TestPager_SmallDirectories(t *testing.T) {
	tests := []struct {
		name       string
		n          int
		firstMore  bool
		secondSize int
	}{
		{name: "one past a page", n: 13, firstMore: true, secondSize: 1},
		{name: "less than a page", n: 5, firstMore: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := &fakeLister{n: tt.n}
			p := New(f, 12, nil)

			first, err := p.Fetch(ctx)
			require.NoError(t, err)
			require.Equal(t, tt.firstMore, first.HasMore)
			require.Len(t, first.Users, min(tt.n, 12))

			calls := f.callCount()
			page, err := p.Next(ctx)
			require.NoError(t, err)

			if !tt.firstMore {
				require.Equal(t, first, page, "next does nothing")
				require.Equal(t, calls, f.callCount())
				return
			}

			require.Equal(t, 12, page.Offset)
			require.Len(t, page.Users, tt.secondSize)
			require.False(t, page.HasMore)

			page, err = p.Previous(ctx)
			require.NoError(t, err)
			require.Equal(t, first, page, "previous returns to the first page")
		})
	}
}

type pendingCall struct {
	search string
	reply  chan []models.User
}

// gatedLister blocks every request until the test replies.
type gatedLister struct {
	calls chan pendingCall
}

func (g *gatedLister) ListUsers(_ context.Context, search string, _, _ int) ([]models.User, error) {
	c := pendingCall{search: search, reply: make(chan []models.User)}
	g.calls <- c
	return <-c.reply, nil
}

func TestPager_StaleResponseDiscarded(t *testing.T) {
	ctx := context.Background()
	g := &gatedLister{calls: make(chan pendingCall)}
	p := New(g, 12, nil)

	type result struct {
		page Page
		err  error
	}
	slow := make(chan result, 1)
	go func() {
		page, err := p.Search(ctx, "a")
		slow <- result{page, err}
	}()
	first := <-g.calls
	require.Equal(t, "a", first.search)

	fast := make(chan result, 1)
	go func() {
		page, err := p.Search(ctx, "ab")
		fast <- result{page, err}
	}()
	second := <-g.calls
	second.reply <- []models.User{{ID: 2, Username: "ab"}}
	r := <-fast
	require.NoError(t, r.err)

	first.reply <- []models.User{{ID: 1, Username: "a"}}
	r = <-slow
	require.ErrorIs(t, r.err, ErrStaleResponse)

	cur := p.Current()
	require.Equal(t, "ab", cur.Search)
	require.Len(t, cur.Users, 1)
	require.Equal(t, int64(2), cur.Users[0].ID)
	require.Equal(t, 1, p.Cursor().LastPageSize)
}
