package cli

import (
	"context"
	"os"
	"strconv"
	"strings"

	"profilehub/internal/client/api"
)

// Users fetches the first directory page for the given search terms (joined
// with spaces; empty args clear the search). The listing is public, so this
// works while anonymous.
func (a *App) Users(ctx context.Context, args []string) error {
	a.directory.SetSearchQuery(strings.Join(args, " "))
	return a.fetchPage(ctx, 1)
}

// Page navigates to another page of the current search.
func (a *App) Page(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: page <n>")
		return nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		printlnFn("Page must be a positive number")
		return nil
	}
	return a.fetchPage(ctx, n)
}

func (a *App) fetchPage(ctx context.Context, page int) error {
	search := a.directory.Snapshot().SearchQuery

	err := a.directory.FetchUsers(ctx, api.ListQuery{
		Search:  search,
		Page:    page,
		PerPage: a.config.PerPage,
	})
	if err != nil {
		printlnFn(a.directory.Snapshot().Err)
		return err
	}

	renderPage(os.Stdout, a.directory.Snapshot().Users)
	return nil
}

// Show fetches and renders a single user's profile.
func (a *App) Show(ctx context.Context, args []string) error {
	if !a.requireAuth(ctx) {
		return nil
	}
	if len(args) == 0 {
		printlnFn("Usage: show <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		printlnFn("ID must be a positive number")
		return nil
	}

	if err := a.directory.FetchUserByID(ctx, id); err != nil {
		printlnFn(a.directory.Snapshot().Err)
		return err
	}

	if selected := a.directory.Snapshot().SelectedUser; selected != nil {
		renderUser(os.Stdout, selected)
	}
	return nil
}
