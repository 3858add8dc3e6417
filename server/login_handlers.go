package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	autherrors "github.com/jrsteele09/go-oauth-login/internal/errors"
	"github.com/jrsteele09/go-oauth-login/oauthflow"
	"github.com/jrsteele09/go-oauth-login/statetoken"
	"github.com/jrsteele09/go-oauth-login/users"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"

	// CodeLoginBadCredentials is the stable error code returned when a login
	// cannot be honoured. Inactive accounts answer with this same code so
	// callers cannot probe for account existence.
	CodeLoginBadCredentials = "LOGIN_BAD_CREDENTIALS"
)

// AuthorizeResponse is the payload returned when the caller did not ask to
// follow the redirect.
type AuthorizeResponse struct {
	AuthorizationURL string `json:"authorization_url"`
}

// AuthorizeHandler starts the login flow for a provider: it mints a state
// token, builds the provider authorization URL, and either redirects the
// user-agent or returns the URL as JSON.
func (s *Server) AuthorizeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flow, ok := s.flows[r.PathValue("provider")]
		if !ok {
			writeJSONError(w, "unknown_provider", "No login flow for this provider", http.StatusNotFound)
			return
		}

		q := r.URL.Query()
		followRedirect, _ := strconv.ParseBool(q.Get("follow_redirect"))

		result, err := flow.Authorize(r.Context(), oauthflow.AuthorizeRequest{
			RedirectURL:         q.Get("redirect_url"),
			FollowRedirect:      followRedirect,
			Scopes:              q["scopes"],
			CodeChallenge:       q.Get("code_challenge"),
			CodeChallengeMethod: q.Get("code_challenge_method"),
		})
		if err != nil {
			log.Error().Err(err).Str("provider", flow.Client().Name()).Msg("authorize failed")
			writeJSONError(w, "server_error", "Failed to build authorization URL", http.StatusInternalServerError)
			return
		}

		if result.FollowRedirect {
			http.Redirect(w, r, result.AuthorizationURL, http.StatusTemporaryRedirect)
			return
		}

		w.Header().Set("Content-Type", contentTypeJSON)
		_ = json.NewEncoder(w).Encode(AuthorizeResponse{AuthorizationURL: result.AuthorizationURL})
	}
}

// CallbackHandler finishes the login flow. It is the callback adapter for the
// flow: it pulls code, state and provider errors out of the callback request,
// performs the code exchange, and hands token plus raw state to the flow.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flow, ok := s.flows[r.PathValue("provider")]
		if !ok {
			writeJSONError(w, "unknown_provider", "No login flow for this provider", http.StatusNotFound)
			return
		}

		// Parse form to support both GET (query params) and POST (form_post
		// response mode); r.FormValue works for both.
		state := r.FormValue("state")
		code := r.FormValue("code")
		errorParam := r.FormValue("error")
		errorDesc := r.FormValue("error_description")

		// Check for authorization errors from the provider
		if errorParam != "" {
			log.Warn().
				Str("provider", flow.Client().Name()).
				Str("error", errorParam).
				Str("description", errorDesc).
				Msg("provider returned an authorization error")
			writeJSONError(w, errorParam, errorDesc, http.StatusBadRequest)
			return
		}

		if code == "" || state == "" {
			writeJSONError(w, "invalid_request", "Missing code or state parameter", http.StatusBadRequest)
			return
		}

		token, err := flow.Client().ExchangeCode(r.Context(), code, flow.CallbackRedirectURL())
		if err != nil {
			log.Error().Err(err).Str("provider", flow.Client().Name()).Msg("code exchange failed")
			writeJSONError(w, "code_exchange_failed", "Authorization code exchange failed", http.StatusInternalServerError)
			return
		}

		login := func(user *users.User) error {
			return s.backend.Login(r.Context(), user, w)
		}

		err = flow.Callback(r.Context(), oauthflow.CallbackInput{Token: *token, State: state}, login)
		switch {
		case err == nil:
			// The backend already wrote the response
		case errors.Is(err, statetoken.ErrInvalidStateToken):
			// Deliberately detail-free: the caller learns nothing about why
			// the state was rejected.
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, autherrors.ErrInvalidCredentials):
			writeJSONError(w, CodeLoginBadCredentials, "", http.StatusBadRequest)
		default:
			log.Error().Err(err).Str("provider", flow.Client().Name()).Msg("callback failed")
			writeJSONError(w, "server_error", "Login failed", http.StatusInternalServerError)
		}
	}
}

// writeJSONError writes an OAuth2-style error response
func writeJSONError(w http.ResponseWriter, errorCode, description string, statusCode int) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             errorCode,
		"error_description": description,
	})
}
