// Package common contains constants and small helpers shared by the
// gophsocial client packages.
package common

const (
	// AuthorizationHeaderName carries the bearer token on outbound API calls.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme prefixes the token in the Authorization header.
	BearerScheme = "Bearer"

	// RequestIDHeaderName tags every outbound API call with a unique id.
	RequestIDHeaderName = "X-Request-ID"

	// TokenKey is the single key under which the session token is persisted.
	TokenKey = "token"

	// DefaultPageSize is the number of users shown per directory page.
	DefaultPageSize = 12
)
