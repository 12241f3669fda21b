package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/gophsocial/internal/common"
	"github.com/google/uuid"
)

// TokenSource yields the bearer token, if any. tokenstore.Store satisfies it.
type TokenSource interface {
	Read(ctx context.Context) (token string, ok bool, err error)
}

// authTransport decorates requests with the bearer token and a request id.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())

	if r.Header.Get(common.RequestIDHeaderName) == "" {
		r.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}

	if t.tokens != nil && r.Header.Get(common.AuthorizationHeaderName) == "" {
		token, ok, err := t.tokens.Read(r.Context())
		if err != nil {
			return nil, err
		}
		if ok && token != "" {
			r.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
		}
	}

	return t.base.RoundTrip(r)
}
