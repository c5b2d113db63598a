// Package cli is the terminal surface of the authgate client: a small
// REPL whose command set follows the session state owned by the
// controller.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/mlevkov/authgate/internal/client/config"
	"github.com/mlevkov/authgate/internal/client/gateway"
	"github.com/mlevkov/authgate/internal/client/services"
	"github.com/mlevkov/authgate/internal/client/tokenstore"
	"github.com/mlevkov/authgate/internal/logging"

	_ "modernc.org/sqlite"
)

// sessionController is the slice of the controller the CLI needs. The
// concrete *services.Controller satisfies it; tests provide a stub.
type sessionController interface {
	Start(ctx context.Context)
	Verify(ctx context.Context)
	Login(ctx context.Context, identifier, password string) error
	Signup(ctx context.Context, username, email, password string) error
	Logout(ctx context.Context)
	State() services.State
	Identity() *gateway.Identity
}

type App struct {
	config     *config.Config
	controller sessionController
	log        logging.Logger
	reader     *bufio.Reader
	db         *sql.DB
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	db, err := tokenstore.OpenDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("client db init: %w", err)
	}

	store := tokenstore.NewSQLiteStore(db)
	gw := gateway.NewHTTPGateway(c.ServerBaseURL, store, logger, nil)
	ctrl := services.NewController(store, gw, logger, c.SignOutDelay)

	return &App{
		config:     c,
		controller: ctrl,
		log:        logger,
		reader:     bufio.NewReader(os.Stdin),
		db:         db,
	}, nil
}

// Run performs the mount-time session check and enters the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.controller.Start(ctx)
	if a.controller.State() == services.StateAuthenticated {
		printlnFn(fmt.Sprintf("Welcome back, %s!", a.controller.Identity().Username))
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.controller.State() == services.StateAuthenticated
}

func (a *App) getStatus() string {
	switch a.controller.State() {
	case services.StateAuthenticated:
		return fmt.Sprintf("(%s)", a.controller.Identity().Username)
	case services.StateVerifying:
		return "(verifying...)"
	default:
		return "(anonymous)"
	}
}
