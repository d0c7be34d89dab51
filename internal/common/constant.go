// Package common contains shared constants and sentinel errors used across
// ForoHub components.
package common

// AuthorizationHeaderName is the HTTP header that carries the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header value.
const BearerPrefix = "Bearer "

// RequestIDHeaderName is echoed back on every response and may be supplied
// by the caller to correlate logs.
const RequestIDHeaderName = "X-Request-ID"
