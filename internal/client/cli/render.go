package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophsocial/internal/client/directory"
	"github.com/dmitrijs2005/gophsocial/internal/client/models"
)

func printPost(p models.Post) {
	author := p.User.Username
	if author == "" {
		author = fmt.Sprintf("user #%d", p.UserId)
	}
	printlnFn(fmt.Sprintf("#%d %s  (by %s, %s)", p.Id, p.Title, author, shortDate(p.CreatedAt)))
	printlnFn("  " + strings.ReplaceAll(p.Content, "\n", "\n  "))
	if len(p.Tags) > 0 {
		printlnFn("  tags: " + strings.Join(p.Tags, ", "))
	}

	comments := p.CommentCount
	if len(p.Comments) > comments {
		comments = len(p.Comments)
	}
	printlnFn(fmt.Sprintf("  %d comment(s)", comments))
}

func printComments(cs []models.Comment) {
	for _, c := range cs {
		who := c.User.Username
		if who == "" {
			who = fmt.Sprintf("user #%d", c.UserId)
		}
		printlnFn(fmt.Sprintf("    %s (%s): %s", who, shortDate(c.CreatedAt), c.Content))
	}
}

func printUser(u models.User) {
	printlnFn(fmt.Sprintf("#%d %s <%s>  joined %s", u.ID, u.Username, u.Email, shortDate(u.CreatedAt)))
}

func printFollowed(list []models.FollowedUser) {
	if len(list) == 0 {
		printlnFn("You are not following anyone yet.")
		return
	}
	for _, f := range list {
		printlnFn(fmt.Sprintf("#%d %s <%s>", f.UserId, f.Username, f.Email))
	}
}

func printPage(p directory.Page) {
	header := fmt.Sprintf("Users, page %d", p.Number())
	if p.Search != "" {
		header += fmt.Sprintf(" matching %q", p.Search)
	}
	printlnFn(header)

	if len(p.Users) == 0 {
		printlnFn("  no users found")
	}
	for _, u := range p.Users {
		printlnFn(fmt.Sprintf("  #%d %s", u.ID, u.Username))
	}
}

// shortDate keeps the date part of an API timestamp.
func shortDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}
