package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophsocial/internal/client/models"
	"github.com/dmitrijs2005/gophsocial/internal/common"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
	"github.com/google/uuid"
)

const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL   string
	http      *http.Client
	transport http.RoundTripper
	timeout   time.Duration
	log       logging.Logger
}

type Option func(*HTTPClient)

// WithTimeout bounds every request. Zero means no client-side limit.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) { c.transport = rt }
}

func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		transport: http.DefaultTransport,
		log:       logging.Nop{},
	}
	for _, o := range opts {
		o(c)
	}
	c.http = &http.Client{Transport: &authTransport{base: c.transport, tokens: tokens}}
	return c, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request done",
		"method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(start))

	if resp.StatusCode >= 400 {
		return statusError(resp.StatusCode, errorMessage(resp.Body))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", ErrUnavailable, ctx.Err())
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func errorMessage(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var env envelope
	if err := json.Unmarshal(b, &env); err == nil && env.Error != "" {
		return env.Error
	}
	return strings.TrimSpace(string(b))
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, strconv.FormatInt(id, 10))
}

func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

// CreateToken exchanges credentials for a bearer token.
func (c *HTTPClient) CreateToken(ctx context.Context, creds models.Credentials) (string, error) {
	var token string
	if err := c.do(ctx, http.MethodPost, "/auth/token", nil, creds, &token); err != nil {
		return "", err
	}
	if token == "" {
		return "", errors.New("server returned an empty token")
	}
	return token, nil
}

func (c *HTTPClient) RegisterUser(ctx context.Context, req models.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/user", nil, req, nil)
}

func (c *HTTPClient) ActivateUser(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPut, "/users/activate/"+url.PathEscape(token), nil, nil, nil)
}

func (c *HTTPClient) ListUsers(ctx context.Context, search string, offset, limit int) ([]models.User, error) {
	q := url.Values{}
	q.Set("search", search)
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))

	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/all-users", q, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/users/current-user", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, idPath("/users/%s", id), nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) FollowedUsers(ctx context.Context) ([]models.FollowedUser, error) {
	var users []models.FollowedUser
	if err := c.do(ctx, http.MethodGet, "/users/followed-users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) Follow(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, idPath("/users/%s/follow", id), nil, nil, nil)
}

func (c *HTTPClient) Unfollow(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, idPath("/users/%s/unfollow", id), nil, nil, nil)
}

func (c *HTTPClient) Feed(ctx context.Context, search string) ([]models.Post, error) {
	var q url.Values
	if search != "" {
		q = url.Values{"search": {search}}
	}
	var posts []models.Post
	if err := c.do(ctx, http.MethodGet, "/users/feed", q, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, post models.NewPost) (*models.Post, error) {
	if post.Tags == nil {
		post.Tags = []string{}
	}
	var p models.Post
	if err := c.do(ctx, http.MethodPost, "/posts", nil, post, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	var p models.Post
	if err := c.do(ctx, http.MethodGet, idPath("/posts/%s", id), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) PostsByUser(ctx context.Context, userID int64) ([]models.Post, error) {
	var posts []models.Post
	if err := c.do(ctx, http.MethodGet, idPath("/posts/user/%s", userID), nil, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *HTTPClient) CreateComment(ctx context.Context, postID int64, content string) (*models.Comment, error) {
	in := struct {
		Content string `json:"content"`
	}{Content: content}

	var cm models.Comment
	if err := c.do(ctx, http.MethodPost, idPath("/posts/%s/comments", postID), nil, in, &cm); err != nil {
		return nil, err
	}
	return &cm, nil
}
