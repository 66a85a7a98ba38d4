// File: api/shutdown.go
// Package api defines unified graceful shutdown contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// GracefulShutdown is implemented by components that stop cleanly on an
// external asynchronous request.
type GracefulShutdown interface {
	// Shutdown requests termination and releases resources. It returns an
	// error when the request could not be delivered.
	Shutdown() error
}
