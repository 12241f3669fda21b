package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

const (
	routeLogin      = "login"
	routeRegister   = "register"
	routeActivate   = "activate"
	routeCheckEmail = "check-email"
	routeFeed       = "feed"
	routeDashboard  = "dashboard"
	routePost       = "post"
	routeNewPost    = "newpost"
	routeComment    = "comment"
	routeUsers      = "users"
	routeProfile    = "user"
	routeFollow     = "follow"
	routeUnfollow   = "unfollow"
	routeFollowing  = "following"
	routeWhoami     = "whoami"
	routeLogout     = "logout"
)

var errUsage = errors.New("usage")

func usageError(usage string) error {
	return fmt.Errorf("%w: %s", errUsage, usage)
}

// routes builds the route table of the app. feed is the home route.
func (a *App) routes() *router {
	r := newRouter(routeLogin, routeFeed, a.log)
	r.onRedirect = func(_, to string) {
		switch to {
		case routeLogin:
			printlnFn("Please sign in first.")
		case routeFeed:
			printlnFn("Opening your feed.")
		}
	}

	r.add(route{name: routeLogin, usage: "login", summary: "sign in", access: accessPublic, handler: a.login})
	r.add(route{name: routeRegister, usage: "register", summary: "create an account", access: accessPublic, handler: a.register})
	r.add(route{name: routeActivate, usage: "activate <token>", summary: "activate an account with the emailed token", access: accessPublic, handler: a.activate})
	r.add(route{name: routeCheckEmail, usage: "check-email", summary: "what to do after registering", access: accessPublic, handler: a.checkEmail})

	r.add(route{name: routeFeed, usage: "feed [search]", summary: "posts of the people you follow", access: accessProtected, handler: a.feed})
	r.add(route{name: routeDashboard, usage: "dashboard", summary: "your profile, posts and follows", access: accessProtected, handler: a.dashboard})
	r.add(route{name: routePost, usage: "post <id>", summary: "show a post with its comments", access: accessProtected, handler: a.showPost})
	r.add(route{name: routeNewPost, usage: "newpost", summary: "write a post", access: accessProtected, handler: a.newPost})
	r.add(route{name: routeComment, usage: "comment <postId>", summary: "comment on a post", access: accessProtected, handler: a.comment})
	r.add(route{name: routeUsers, usage: "users [search]", summary: "browse the user directory", access: accessProtected, handler: a.users})
	r.add(route{name: routeProfile, usage: "user <id>", summary: "show a user's profile", access: accessProtected, handler: a.profile}, "profile")
	r.add(route{name: routeFollow, usage: "follow <id>", summary: "follow a user", access: accessProtected, handler: a.follow})
	r.add(route{name: routeUnfollow, usage: "unfollow <id>", summary: "stop following a user", access: accessProtected, handler: a.unfollow})
	r.add(route{name: routeFollowing, usage: "following", summary: "people you follow", access: accessProtected, handler: a.following})
	r.add(route{name: routeWhoami, usage: "whoami", summary: "show the signed-in user", access: accessProtected, handler: a.whoami})
	r.add(route{name: routeLogout, usage: "logout", summary: "sign out", access: accessProtected, handler: a.logout})

	// help and exit are answered by the REPL itself; they are listed here so
	// that help shows them.
	r.add(route{name: "help", usage: "help", summary: "show this help", access: accessOpen, handler: func(context.Context, []string) error {
		printlnFn(a.help())
		return nil
	}})
	r.add(route{name: "exit", usage: "exit | quit", summary: "leave the program", access: accessOpen, handler: func(context.Context, []string) error {
		return nil
	}}, "quit")
	return r
}

// idArg parses args[0] as a positive id.
func idArg(args []string, usage string) (int64, error) {
	if len(args) != 1 {
		return 0, usageError(usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError(usage)
	}
	return id, nil
}
