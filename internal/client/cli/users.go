package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophsocial/internal/client/directory"
)

const usersPrompt = "[n]ext, [p]revious, s <term> to search, [q]uit"

// users browses the directory page by page until the user quits.
func (a *App) users(ctx context.Context, args []string) error {
	page, err := a.pager.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	printPage(page)

	for {
		line, err := getSimpleText(a.reader, usersPrompt, a.out)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		cmd, rest, _ := strings.Cut(line, " ")
		switch cmd {
		case "n", "next":
			before := a.pager.Current()
			page, err = a.pager.Next(ctx)
			if err == nil && !before.HasMore {
				printlnFn("This is the last page.")
				continue
			}
		case "p", "prev", "previous":
			before := a.pager.Current()
			page, err = a.pager.Previous(ctx)
			if err == nil && before.Offset == 0 {
				printlnFn("This is the first page.")
				continue
			}
		case "s", "search":
			page, err = a.pager.Search(ctx, strings.TrimSpace(rest))
		case "q", "quit", "":
			return nil
		default:
			printlnFn(usersPrompt)
			continue
		}

		switch {
		case errors.Is(err, directory.ErrStaleResponse):
			continue
		case err != nil:
			reportError(err)
			page = a.pager.Current()
		default:
			printPage(page)
		}
	}
}
