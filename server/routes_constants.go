package server

import "strings"

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// OAuth login flow routes, one flow per provider
	RouteAuthorize = "/auth/{provider}/authorize"
	RouteCallback  = "/auth/{provider}/callback"
)

// callbackPath returns the concrete callback path for a provider name.
func callbackPath(providerName string) string {
	return strings.Replace(RouteCallback, "{provider}", providerName, 1)
}
