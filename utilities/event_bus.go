package utilities

import (
	"fmt"
	"sync"
)

// EventAttemptSubmitted is published with the new attempt id (uint) after a
// test attempt has been stored.
const EventAttemptSubmitted = "attempt_submitted"

type EventHandler func(interface{})

// EventBus delivers events to subscribers asynchronously. A panicking handler
// is logged and does not affect other handlers.
type EventBus struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
	inFlight sync.WaitGroup
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(event string, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.handlers[event] = append(eb.handlers[event], handler)
}

// Publish starts every handler of the event in its own goroutine and returns
// the number started.
func (eb *EventBus) Publish(event string, data interface{}) int {
	eb.mu.RLock()
	handlers := eb.handlers[event]
	eb.mu.RUnlock()

	for _, handler := range handlers {
		eb.inFlight.Add(1)
		go eb.run(event, handler, data)
	}
	return len(handlers)
}

// Wait blocks until every handler started so far has returned.
func (eb *EventBus) Wait() {
	eb.inFlight.Wait()
}

func (eb *EventBus) run(event string, handler EventHandler, data interface{}) {
	defer eb.inFlight.Done()
	defer func() {
		if r := recover(); r != nil {
			Error("handler for %q panicked: %v", event, fmt.Sprint(r))
		}
	}()
	handler(data)
}
