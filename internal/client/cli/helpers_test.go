package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophsocial/internal/client/directory"
	"github.com/dmitrijs2005/gophsocial/internal/client/models"
	"github.com/dmitrijs2005/gophsocial/internal/client/services"
	"github.com/dmitrijs2005/gophsocial/internal/client/session"
	"github.com/dmitrijs2005/gophsocial/internal/client/tokenstore"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newMemStore() *tokenstore.Memory { return tokenstore.NewMemory() }

func testToken(t *testing.T, id int64, username string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      id,
		"username": username,
		"email":    username + "@example.com",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test"))
	require.NoError(t, err)
	return tok
}

// captureOutput redirects printlnFn into a buffer for the test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&buf, a...) }
	t.Cleanup(func() { printlnFn = orig })
	return &buf
}

// stubPasswords makes getPassword return pws in order.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(io.Writer, string) ([]byte, error) {
		if i >= len(pws) {
			return nil, io.EOF
		}
		pw := []byte(pws[i])
		i++
		return pw, nil
	}
	t.Cleanup(func() { getPassword = orig })
}

// ---- fake auth ----

type fakeAuth struct {
	mu sync.Mutex

	token     string
	loginErr  error
	lastEmail string
	lastPass  string

	regReq models.RegisterRequest
	regErr error

	activated   string
	activateErr error

	pingErr error
	pings   int
	closed  bool
}

func (f *fakeAuth) Login(ctx context.Context, email string, password []byte) (session.UserIdentity, error) {
	f.lastEmail, f.lastPass = email, string(password)
	if f.loginErr != nil {
		return session.UserIdentity{}, f.loginErr
	}
	s, err := session.FromContext(ctx)
	if err != nil {
		return session.UserIdentity{}, err
	}
	return s.Login(ctx, f.token)
}

func (f *fakeAuth) Register(_ context.Context, req models.RegisterRequest) error {
	f.regReq = req
	return f.regErr
}

func (f *fakeAuth) Activate(_ context.Context, token string) error {
	f.activated = token
	return f.activateErr
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	s, err := session.FromContext(ctx)
	if err != nil {
		return err
	}
	return s.Logout(ctx)
}

func (f *fakeAuth) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeAuth) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

func (f *fakeAuth) Close(context.Context) error { f.closed = true; return nil }

// ---- fake social ----

type fakeSocial struct {
	calls []string
	err   error

	feed      []models.Post
	post      models.Post
	profile   models.Profile
	dash      services.Dashboard
	followed  []models.FollowedUser
	newPost   models.NewPost
	comment   string
	lastID    int64
	lastQuery string
}

func (f *fakeSocial) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeSocial) Feed(_ context.Context, search string) ([]models.Post, error) {
	f.lastQuery = search
	return f.feed, f.record("feed")
}

func (f *fakeSocial) Post(_ context.Context, id int64) (*models.Post, error) {
	f.lastID = id
	if err := f.record("post"); err != nil {
		return nil, err
	}
	p := f.post
	return &p, nil
}

func (f *fakeSocial) CreatePost(_ context.Context, title, content string, tags []string) (*models.Post, error) {
	f.newPost = models.NewPost{Title: title, Content: content, Tags: tags}
	if err := f.record("newpost"); err != nil {
		return nil, err
	}
	return &models.Post{Id: 99, Title: title}, nil
}

func (f *fakeSocial) Comment(_ context.Context, postID int64, content string) (*models.Comment, error) {
	f.lastID, f.comment = postID, content
	if err := f.record("comment"); err != nil {
		return nil, err
	}
	return &models.Comment{PostId: postID, Content: content}, nil
}

func (f *fakeSocial) Profile(_ context.Context, userID int64) (*models.Profile, error) {
	f.lastID = userID
	if err := f.record("profile"); err != nil {
		return nil, err
	}
	p := f.profile
	return &p, nil
}

func (f *fakeSocial) Dashboard(context.Context) (*services.Dashboard, error) {
	if err := f.record("dashboard"); err != nil {
		return nil, err
	}
	d := f.dash
	return &d, nil
}

func (f *fakeSocial) Follow(_ context.Context, userID int64) error {
	f.lastID = userID
	return f.record("follow")
}

func (f *fakeSocial) Unfollow(_ context.Context, userID int64) error {
	f.lastID = userID
	return f.record("unfollow")
}

func (f *fakeSocial) Followed(context.Context) ([]models.FollowedUser, error) {
	return f.followed, f.record("following")
}

func (f *fakeSocial) Me(context.Context) (*models.User, error) {
	return &f.dash.Me, f.record("me")
}

// ---- fake directory ----

type fakeLister struct {
	n     int
	calls int
	// failOn lists 1-based call numbers that fail.
	failOn map[int]bool
}

func (f *fakeLister) ListUsers(_ context.Context, search string, offset, limit int) ([]models.User, error) {
	f.calls++
	if f.failOn[f.calls] {
		return nil, errors.New("directory down")
	}
	var out []models.User
	for i := offset; i < f.n && len(out) < limit; i++ {
		out = append(out, models.User{ID: int64(i + 1), Username: fmt.Sprintf("%s%d", search, i+1)})
	}
	return out, nil
}

// ---- app ----

type testApp struct {
	*App
	ctx    context.Context
	auth   *fakeAuth
	social *fakeSocial
	lister *fakeLister
	store  *tokenstore.Memory
}

// newTestApp builds an App over fakes reading input; signedIn > 0 starts
// the session as that user.
func newTestApp(t *testing.T, input string, signedIn int64) *testApp {
	t.Helper()

	store := newMemStore()
	if signedIn > 0 {
		require.NoError(t, store.Save(context.Background(), testToken(t, signedIn, "alice")))
	}

	fa := &fakeAuth{token: testToken(t, 1, "alice")}
	fs := &fakeSocial{}
	fl := &fakeLister{n: 8}

	a := &App{
		log:           logging.Nop{},
		store:         store,
		session:       session.New(store, nil, nil),
		authService:   fa,
		socialService: fs,
		pager:         directory.New(fl, 3, nil),
		reader:        rdr(input),
		out:           io.Discard,
	}
	a.router = a.routes()

	ctx, release, err := session.Provide(context.Background(), a.session)
	require.NoError(t, err)
	t.Cleanup(release)

	return &testApp{App: a, ctx: ctx, auth: fa, social: fs, lister: fl, store: store}
}
