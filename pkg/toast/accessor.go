package toast

import "sync"

// Accessor collects the messages raised while one request is handled.
// The middleware creates exactly one per request; it is discarded with it.
type Accessor struct {
	mu       sync.Mutex
	messages []Message
}

// NewAccessor creates an empty request-scoped accessor.
func NewAccessor() *Accessor {
	return &Accessor{}
}

// Add appends msg with its options normalized. The zero Message, an unknown
// kind and options that cannot be encoded are rejected with ErrInvalidArgument.
func (a *Accessor) Add(msg Message) error {
	msg, err := msg.validate()
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.messages = append(a.messages, msg)
	a.mu.Unlock()
	return nil
}

// Drain returns a copy of every message added so far, in insertion order.
// It does not clear the accessor.
func (a *Accessor) Drain() []Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	return cloneMessages(a.messages)
}

// Len returns the number of messages added so far.
func (a *Accessor) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.messages)
}
