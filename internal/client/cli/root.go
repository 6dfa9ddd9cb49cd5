package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"profilehub/internal/client/state"
)

func (a *App) getStatus() string {
	snap := a.session.Snapshot()
	if snap.IsAuthenticated && snap.User != nil {
		return fmt.Sprintf("(%s)", snap.User.Email)
	}
	if snap.Token != "" {
		return "(unverified)"
	}
	return ""
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to profilehub CLI (type 'help' for commands)")

	// Resolve a persisted session before the first prompt so the status is
	// settled rather than flickering through "unverified".
	if a.session.Snapshot().Token != "" {
		if a.guard.Authorize(ctx) == state.GuardAllowed {
			snap := a.session.Snapshot()
			fmt.Printf("Welcome back, %s\n", snap.User.FullName)
		} else {
			fmt.Println("Your session has expired, please log in again.")
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
