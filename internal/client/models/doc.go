// Package models holds the API payloads the client reads and writes.
//
// Field names follow the wire format of the blog API: users use snake_case
// JSON keys, posts and comments are serialised with their Go field names.
package models
