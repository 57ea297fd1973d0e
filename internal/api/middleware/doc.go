// Package middleware provides the HTTP middleware shared by all routes:
// request tracing with a context logger, and bearer-token authentication.
package middleware
