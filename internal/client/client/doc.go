// Package client talks to the blog REST API.
//
// # Overview
//
// Client is the transport-agnostic contract used by the services and the
// user directory pager. HTTPClient implements it over net/http:
//  1. Every request carries an X-Request-ID and, when a token is stored,
//     an "Authorization: Bearer" header (see TokenSource).
//  2. Successful payloads are unwrapped from the {"data": ...} envelope.
//  3. Failures are mapped to sentinel errors.
//
// # Error Handling
//
// Callers match with errors.Is: ErrUnauthorized (401/403), ErrNotFound
// (404) and ErrUnavailable (5xx, transport failures, deadlines). Other 4xx
// responses surface as *APIError carrying the server message.
package client
