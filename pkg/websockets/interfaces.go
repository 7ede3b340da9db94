package websockets

import (
	"context"
)

// ConnectionManager defines the interface for managing websocket connections.
type ConnectionManager interface {
	AddConnection(ctx context.Context, connectionID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
}

// Publisher defines the interface for fanning a notification out to connected
// clients. Publishing happens strictly after commit and is best effort: a
// slow or failing publisher never blocks or rolls back the mutation that
// triggered it.
type Publisher interface {
	Publish(ctx context.Context, message Message) error
}
