package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophsocial/internal/client/models"
)

// feed shows the home timeline, optionally filtered by a search term.
func (a *App) feed(ctx context.Context, args []string) error {
	search := strings.Join(args, " ")

	posts, err := a.socialService.Feed(ctx, search)
	if err != nil {
		return err
	}

	if len(posts) == 0 {
		if search != "" {
			printlnFn(fmt.Sprintf("No posts matching %q.", search))
		} else {
			printlnFn("Your feed is empty. Find people to follow with 'users'.")
		}
		return nil
	}
	for _, p := range posts {
		printPost(p)
	}
	return nil
}

func (a *App) dashboard(ctx context.Context, _ []string) error {
	d, err := a.socialService.Dashboard(ctx)
	if err != nil {
		return err
	}

	printUser(d.Me)
	printlnFn(fmt.Sprintf("\nFollowing (%d):", len(d.Followed)))
	printFollowed(d.Followed)
	printlnFn(fmt.Sprintf("\nYour posts (%d):", len(d.Posts)))
	for _, p := range d.Posts {
		printPost(p)
	}
	return nil
}

func (a *App) showPost(ctx context.Context, args []string) error {
	id, err := idArg(args, "post <id>")
	if err != nil {
		return err
	}

	p, err := a.socialService.Post(ctx, id)
	if err != nil {
		return err
	}
	printPost(*p)
	printComments(p.Comments)
	return nil
}

func (a *App) newPost(ctx context.Context, _ []string) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}
	tags, err := getSimpleText(a.reader, "Tags (comma separated, optional)", a.out)
	if err != nil {
		return err
	}

	p, err := a.socialService.CreatePost(ctx, title, content, models.ParseTags(tags))
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Post #%d published.", p.Id))
	return nil
}

func (a *App) comment(ctx context.Context, args []string) error {
	postID, err := idArg(args, "comment <postId>")
	if err != nil {
		return err
	}
	content, err := getSimpleText(a.reader, "Your comment", a.out)
	if err != nil {
		return err
	}

	if _, err := a.socialService.Comment(ctx, postID, content); err != nil {
		return err
	}
	printlnFn("Comment added.")
	return nil
}

func (a *App) profile(ctx context.Context, args []string) error {
	id, err := idArg(args, "user <id>")
	if err != nil {
		return err
	}

	p, err := a.socialService.Profile(ctx, id)
	if err != nil {
		return err
	}

	printUser(p.User)
	switch {
	case p.IsSelf:
		printlnFn("This is you.")
	case p.IsFollowing:
		printlnFn(fmt.Sprintf("You follow %s. (unfollow %d)", p.User.Username, p.User.ID))
	default:
		printlnFn(fmt.Sprintf("You do not follow %s. (follow %d)", p.User.Username, p.User.ID))
	}

	printlnFn(fmt.Sprintf("\nPosts (%d):", len(p.Posts)))
	for _, post := range p.Posts {
		printPost(post)
	}
	return nil
}

func (a *App) follow(ctx context.Context, args []string) error {
	id, err := idArg(args, "follow <id>")
	if err != nil {
		return err
	}
	if err := a.socialService.Follow(ctx, id); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Following user #%d.", id))
	return nil
}

func (a *App) unfollow(ctx context.Context, args []string) error {
	id, err := idArg(args, "unfollow <id>")
	if err != nil {
		return err
	}
	if err := a.socialService.Unfollow(ctx, id); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Unfollowed user #%d.", id))
	return nil
}

func (a *App) following(ctx context.Context, _ []string) error {
	list, err := a.socialService.Followed(ctx)
	if err != nil {
		return err
	}
	printFollowed(list)
	return nil
}
