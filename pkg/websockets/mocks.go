package websockets

import (
	"context"
	"sync"
)

// NoOpPublisher is a publisher that does nothing. Used where no websocket
// endpoint is configured.
type NoOpPublisher struct{}

// Publish does nothing.
func (p *NoOpPublisher) Publish(ctx context.Context, message Message) error {
	return nil
}

// RecordingPublisher captures published messages for tests.
type RecordingPublisher struct {
	mu       sync.Mutex
	messages []Message
}

// Publish records the message.
func (p *RecordingPublisher) Publish(ctx context.Context, message Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, message)
	return nil
}

// Messages returns a copy of everything published so far.
func (p *RecordingPublisher) Messages() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Message{}, p.messages...)
}
