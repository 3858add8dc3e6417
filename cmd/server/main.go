package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-oauth-login/accounts"
	fakeaccountrepo "github.com/jrsteele09/go-oauth-login/accounts/repofake"
	"github.com/jrsteele09/go-oauth-login/authn"
	"github.com/jrsteele09/go-oauth-login/internal/config"
	"github.com/jrsteele09/go-oauth-login/provider"
	"github.com/jrsteele09/go-oauth-login/provider/github"
	"github.com/jrsteele09/go-oauth-login/provider/google"
	"github.com/jrsteele09/go-oauth-login/server"
	fakeuserrepo "github.com/jrsteele09/go-oauth-login/users/repofake"
)

func main() {
	_ = godotenv.Load()

	c := config.New()
	configureLogging(c.GetEnv())

	for {
		if err := run(c); err != nil {
			log.Error().Err(err).Msg("error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("server stopped")
}

func run(c config.Config) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	displayAppname(c.GetAppName())

	resolver, err := newResolver()
	if err != nil {
		return err
	}

	clients := newProviderClients(c)
	if len(clients) == 0 {
		return errors.New("no provider credentials configured")
	}

	srv, err := server.New(c, newBackend(c), resolver, clients)
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// newResolver wires the account service against the in-memory repositories.
// TODO swap in persistent repositories once a datastore is chosen.
func newResolver() (accounts.Resolver, error) {
	return accounts.NewService(accounts.Repos{
		Users:    fakeuserrepo.NewFakeUserRepo(),
		Accounts: fakeaccountrepo.NewFakeAccountRepo(),
	})
}

func newBackend(c config.Config) authn.Backend {
	strategy := authn.NewJWTStrategy(c.GetAccessTokenSecret(), c.GetBaseURL(), "authenticated", c.GetAccessTokenExpiry())
	if c.GetAuthBackend() == "cookie" {
		return authn.NewCookieBackend(strategy, c.GetSessionCookieName(), c.GetSecureCookies())
	}
	return authn.NewBearerBackend(strategy)
}

// newProviderClients creates a client for each provider with configured
// credentials.
func newProviderClients(c config.Config) []provider.Client {
	var clients []provider.Client
	if c.GetGitHubClientID() != "" {
		clients = append(clients, github.New(c.GetGitHubClientID(), c.GetGitHubClientSecret(), nil))
	}
	if c.GetGoogleClientID() != "" {
		clients = append(clients, google.New(c.GetGoogleClientID(), c.GetGoogleClientSecret(), nil))
	}
	return clients
}

func configureLogging(env string) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if env == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
