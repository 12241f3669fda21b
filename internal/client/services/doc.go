// Package services contains the application services of the client.
//
// AuthService covers sign-in, sign-up, account activation and sign-out.
// SocialService covers the feed, posts, comments, profiles and the follow
// graph. Both read the current session from the context (see
// session.Provide) and talk to the API through client.Client.
package services
