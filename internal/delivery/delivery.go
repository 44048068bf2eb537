// Package delivery defines the contract every transport server implements.
package delivery

import "context"

// Delivery is a transport server that can be started by the bootstrap.
type Delivery interface {
	Serve(ctx context.Context) error
}
