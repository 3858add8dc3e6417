package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-oauth-login/accounts"
	"github.com/jrsteele09/go-oauth-login/authn"
	"github.com/jrsteele09/go-oauth-login/internal/config"
	"github.com/jrsteele09/go-oauth-login/oauthflow"
	"github.com/jrsteele09/go-oauth-login/provider"
	"github.com/jrsteele09/go-oauth-login/statetoken"
)

type Server struct {
	env     string // Environment (e.g., "development", "production")
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	backend authn.Backend
	flows   map[string]*oauthflow.Flow
}

// New creates a Server exposing one login flow per provider client, all
// sharing the same account resolver, authentication backend and state token
// codec.
func New(config config.Config, backend authn.Backend, resolver accounts.Resolver, clients []provider.Client) (*Server, error) {
	if backend == nil {
		return nil, fmt.Errorf("[Server New] authentication backend is required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("[Server New] account resolver is required")
	}
	if len(clients) == 0 {
		return nil, fmt.Errorf("[Server New] at least one provider client is required")
	}

	states := statetoken.NewCodec(config.GetStateSecret(), config.GetStateTokenLifetime())

	s := &Server{
		mux:     http.NewServeMux(),
		config:  config,
		backend: backend,
		flows:   make(map[string]*oauthflow.Flow),
	}
	s.env = config.GetEnv()

	for _, client := range clients {
		flow, err := oauthflow.New(client, resolver, states, oauthflow.Config{
			InitialRedirectURL:   config.GetInitialRedirectURL(),
			AlwaysFollowRedirect: config.GetAlwaysFollowRedirect(),
			CallbackURL:          config.GetBaseURL() + callbackPath(client.Name()),
		})
		if err != nil {
			return nil, fmt.Errorf("[Server New] failed to create %s flow: %w", client.Name(), err)
		}
		s.flows[client.Name()] = flow
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
