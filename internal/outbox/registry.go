package outbox

import (
	"context"
	"sync"

	"github.com/Motalib01/Ihjizely-sub000/internal/domain"
)

// Handler consumes one dispatched outbox message. Returning an error leaves
// the message pending for the next run.
type Handler func(ctx context.Context, msg domain.OutboxMessage) error

// Registry maps event type names to handlers. External subsystems
// (notifications, reporting) register here before the dispatcher starts.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string][]Handler)}
}

func (r *Registry) Register(eventType string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[eventType] = append(r.handlers[eventType], h)
}

// For returns the handlers registered for eventType.
func (r *Registry) For(eventType string) []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hs := r.handlers[eventType]
	out := make([]Handler, len(hs))
	copy(out, hs)
	return out
}
