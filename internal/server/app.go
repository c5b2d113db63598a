// Package server initializes and runs the development authentication
// server: an in-memory account store behind the HTTP endpoints the
// client talks to.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mlevkov/authgate/internal/logging"
	"github.com/mlevkov/authgate/internal/server/auth"
	"github.com/mlevkov/authgate/internal/server/config"
	"github.com/mlevkov/authgate/internal/server/httpapi"
	"github.com/mlevkov/authgate/internal/server/tokens"
	"github.com/mlevkov/authgate/internal/server/users"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	router *echo.Echo
}

func NewApp(c *config.Config) *App {
	logger := logging.NewZerologLogger(os.Stdout, c.LogLevel, c.Pretty)

	minter := tokens.NewMinter(c.JWTSecret, c.AccessTokenTTL, c.RefreshTokenTTL)
	svc := auth.NewService(users.NewRepository(), minter, tokens.NewBlacklist(), logger)

	return &App{
		config: c,
		logger: logger,
		router: httpapi.NewRouter(svc, minter),
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting server", "addr", app.config.Addr)
		errCh <- app.router.Start(app.config.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return app.router.Shutdown(shutdownCtx)
}
