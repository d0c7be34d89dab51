package rest

import (
	"net/http"
	"strings"
)

// Policy says whether a route may be reached without an identity.
type Policy int

const (
	Authenticated Policy = iota
	Public
)

func (p Policy) String() string {
	if p == Public {
		return "public"
	}
	return "authenticated"
}

// RouteRule binds a method and path pattern to a policy. A pattern ending in
// "/*" matches every path below that prefix.
type RouteRule struct {
	Method  string
	Pattern string
	Policy  Policy
}

// PublicRoutes lists every route reachable without a token. Anything not
// listed requires authentication.
var PublicRoutes = []RouteRule{
	{http.MethodPost, "/login", Public},
	{http.MethodPost, "/register", Public},
	{http.MethodGet, "/swagger-ui.html", Public},
	{http.MethodGet, "/swagger-ui/*", Public},
	{http.MethodGet, "/v3/api-docs", Public},
	{http.MethodGet, "/v3/api-docs/*", Public},
}

// PolicyFor resolves the policy of a request.
func PolicyFor(method, path string) Policy {
	for _, r := range PublicRoutes {
		if r.Method == method && r.matches(path) {
			return r.Policy
		}
	}
	return Authenticated
}

func (r RouteRule) matches(path string) bool {
	if prefix, ok := strings.CutSuffix(r.Pattern, "/*"); ok {
		return strings.HasPrefix(path, prefix+"/")
	}
	return path == r.Pattern
}
