package service

import (
	"sync"

	"go.uber.org/zap"
)

// RequestEventKind identifies what changed on a request.
type RequestEventKind string

const (
	EventRequestCreated   RequestEventKind = "created"
	EventRequestAssigned  RequestEventKind = "assigned"
	EventStatusChanged    RequestEventKind = "status_changed"
	EventResponseSent     RequestEventKind = "response_sent"
	EventRequestWithdrawn RequestEventKind = "withdrawn"
	EventDeadlineExtended RequestEventKind = "deadline_extended"
	EventDocumentUploaded RequestEventKind = "document_uploaded"
)

// RequestChanged is published after every successful request mutation.
type RequestChanged struct {
	RequestID string
	Kind      RequestEventKind
	OldStatus string
	NewStatus string
	ActorID   string
}

// RequestEventBus fans RequestChanged events out to subscribers. Delivery is
// asynchronous and best-effort: a subscriber with a full buffer drops the
// event rather than blocking the mutating request.
type RequestEventBus struct {
	mu          sync.RWMutex
	subscribers []chan RequestChanged
	logger      *zap.Logger
}

// NewRequestEventBus constructs an event bus.
func NewRequestEventBus(logger *zap.Logger) *RequestEventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestEventBus{logger: logger}
}

// Subscribe registers a new listener and returns its receive channel.
func (b *RequestEventBus) Subscribe(buffer int) <-chan RequestChanged {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan RequestChanged, buffer)
	b.mu.Lock()
	b.subscribers = append(b.subscribers, ch)
	b.mu.Unlock()
	return ch
}

// Publish delivers the event to all subscribers without blocking.
func (b *RequestEventBus) Publish(event RequestChanged) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			b.logger.Warn("request event dropped, subscriber buffer full",
				zap.String("request_id", event.RequestID),
				zap.String("kind", string(event.Kind)))
		}
	}
}
