// Package testutil contains helper actions and recorders used across tests
// to reduce boilerplate when building fibers (delayed actions, failing
// actions, thread-safe call logs and event recorders). These helpers are
// intentionally minimal and not intended for production usage.
package testutil
