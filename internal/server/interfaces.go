package server

import "context"

// Server defines the lifecycle contract of the serve command.
type Server interface {
	// RunServer serves until SIGTERM, SIGINT or SIGQUIT and then shuts
	// down gracefully.
	RunServer()

	// Run serves until ctx is done and then shuts down gracefully.
	Run(ctx context.Context) error

	// Shutdown stops the control API and the workers.
	Shutdown()
}
