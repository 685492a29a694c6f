// Package workers runs the background jobs of the serve command.
// It defines the Worker interface and a Workers aggregate that starts and
// stops them together.
package workers

import "context"

// Worker is a background job bound to the lifetime of ctx.
//
// Start must not block. Stop blocks until the worker has fully terminated
// and is safe to call when Start was never called.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
