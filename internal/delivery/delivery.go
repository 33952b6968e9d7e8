// Package delivery defines the transport-facing surface of the application.
package delivery

import "context"

// Delivery is a server that accepts requests until its context ends or the
// application shuts it down through a lifecycle hook.
type Delivery interface {
	Serve(ctx context.Context) error
}
