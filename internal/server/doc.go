// Package server runs the control API together with the background
// workers of the serve command.
//
// It owns startup, signal handling and graceful shutdown.
package server
