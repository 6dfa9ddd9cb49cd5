package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"profilehub/internal/client/api"
	"profilehub/internal/client/config"
	"profilehub/internal/client/keystore"
	"profilehub/internal/client/state"
	"profilehub/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config    *config.Config
	client    api.Client
	keys      keystore.Store
	session   *state.SessionStore
	directory *state.DirectoryStore
	guard     *state.Guard
	log       logging.Logger
	reader    *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	keys, err := keystore.Open(ctx, c.KeystorePath)
	if err != nil {
		log.Error(ctx, "error initializing keystore", "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.APIBaseURL,
		api.WithTimeout(c.RequestTimeout),
		api.WithLogger(log),
	)

	session := state.NewSessionStore(apiClient, keys, log)
	directory := state.NewDirectoryStore(apiClient, log)
	guard := state.NewGuard(session, log)

	if err := session.SeedFromKeystore(ctx); err != nil {
		log.Warn(ctx, "failed to load persisted session", "error", err)
	}

	return &App{
		config:    c,
		client:    apiClient,
		keys:      keys,
		session:   session,
		directory: directory,
		guard:     guard,
		log:       log,
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.keys.Close()
	defer a.client.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().IsAuthenticated
}

// requireAuth resolves the guard synchronously: a persisted but unverified
// token is verified here, so the answer is never "still loading".
func (a *App) requireAuth(ctx context.Context) bool {
	if a.guard.Authorize(ctx) != state.GuardAllowed {
		printlnFn("Please log in first.")
		return false
	}
	return true
}
