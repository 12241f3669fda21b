// Package directory pages through the user directory.
//
// The Pager asks the API for one user more than it shows; the extra row
// only tells whether a next page exists. Every request is numbered and a
// response that is not for the newest request is dropped, so a slow reply
// can never overwrite a newer one.
package directory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophsocial/internal/client/models"
	"github.com/dmitrijs2005/gophsocial/internal/common"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
)

var (
	// ErrStaleResponse is returned when a newer request superseded this one.
	ErrStaleResponse = errors.New("stale response discarded")

	ErrInvalidLimit = errors.New("limit must be positive")
)

// UserLister is the part of the API client the Pager needs.
type UserLister interface {
	ListUsers(ctx context.Context, search string, offset, limit int) ([]models.User, error)
}

// Cursor is the position of the pager.
type Cursor struct {
	Offset       int
	Limit        int
	LastPageSize int
}

// Page is one screen of users.
type Page struct {
	Users   []models.User
	Offset  int
	Limit   int
	Search  string
	HasMore bool
}

// Number is the 1-based page number.
func (p Page) Number() int {
	if p.Limit <= 0 {
		return 1
	}
	return p.Offset/p.Limit + 1
}

type Pager struct {
	lister UserLister
	log    logging.Logger

	mu     sync.Mutex
	offset int
	limit  int
	search string
	seq    uint64

	page         Page
	lastPageSize int
}

// New returns a pager positioned at the first page. A non-positive limit
// falls back to common.DefaultPageSize.
func New(lister UserLister, limit int, log logging.Logger) *Pager {
	if limit <= 0 {
		limit = common.DefaultPageSize
	}
	if log == nil {
		log = logging.Nop{}
	}
	return &Pager{
		lister: lister,
		log:    log,
		limit:  limit,
		page:   Page{Limit: limit},
	}
}

// query is what one request asks for. It becomes the cursor only once
// the request succeeds.
type query struct {
	offset int
	limit  int
	search string
}

// Fetch loads the page at the current cursor.
func (p *Pager) Fetch(ctx context.Context) (Page, error) {
	p.mu.Lock()
	q := query{offset: p.offset, limit: p.limit, search: p.search}
	p.mu.Unlock()

	return p.fetch(ctx, q)
}

func (p *Pager) fetch(ctx context.Context, q query) (Page, error) {
	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	users, err := p.lister.ListUsers(ctx, q.search, q.offset, q.limit+1)

	p.mu.Lock()
	defer p.mu.Unlock()

	if seq != p.seq {
		p.log.Debug(ctx, "dropping stale directory response", "seq", seq, "latest", p.seq)
		return p.page, ErrStaleResponse
	}
	if err != nil {
		p.log.Warn(ctx, "failed to load users", "offset", q.offset, "search", q.search, "error", err)
		return p.page, fmt.Errorf("list users: %w", err)
	}

	p.offset, p.limit, p.search = q.offset, q.limit, q.search
	p.lastPageSize = len(users)

	page := Page{Offset: q.offset, Limit: q.limit, Search: q.search, HasMore: len(users) == q.limit+1}
	if len(users) > q.limit {
		users = users[:q.limit]
	}
	page.Users = users
	p.page = page

	return page, nil
}

// Next moves one page forward when the last fetch reported more results.
// Otherwise it returns the current page without a request. A failed
// request leaves the pager on the current page.
func (p *Pager) Next(ctx context.Context) (Page, error) {
	p.mu.Lock()
	if !p.page.HasMore {
		page := p.page
		p.mu.Unlock()
		return page, nil
	}
	q := query{offset: p.offset + p.limit, limit: p.limit, search: p.search}
	p.mu.Unlock()

	return p.fetch(ctx, q)
}

// Previous moves one page back, never below the first page.
func (p *Pager) Previous(ctx context.Context) (Page, error) {
	p.mu.Lock()
	if p.offset == 0 {
		page := p.page
		p.mu.Unlock()
		return page, nil
	}
	q := query{offset: max(p.offset-p.limit, 0), limit: p.limit, search: p.search}
	p.mu.Unlock()

	return p.fetch(ctx, q)
}

// Search filters by term and restarts from the first page.
func (p *Pager) Search(ctx context.Context, term string) (Page, error) {
	p.mu.Lock()
	q := query{offset: 0, limit: p.limit, search: term}
	p.mu.Unlock()

	return p.fetch(ctx, q)
}

// SetLimit changes the page size and restarts from the first page.
func (p *Pager) SetLimit(ctx context.Context, limit int) (Page, error) {
	if limit <= 0 {
		return p.Current(), ErrInvalidLimit
	}

	p.mu.Lock()
	q := query{offset: 0, limit: limit, search: p.search}
	p.mu.Unlock()

	return p.fetch(ctx, q)
}

// Current returns the last applied page.
func (p *Pager) Current() Page {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

func (p *Pager) Cursor() Cursor {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Cursor{Offset: p.offset, Limit: p.limit, LastPageSize: p.lastPageSize}
}
