package toast

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/dmitrymomot/toastkit/pkg/logger"
)

// Delivery selects when a message is shown.
type Delivery int

const (
	// DeliverNow shows the message on the current response.
	DeliverNow Delivery = iota
	// DeliverAfterRedirect shows the message on the page the client is
	// redirected to. It is dropped when the response is not a redirect.
	DeliverAfterRedirect
)

func (d Delivery) String() string {
	switch d {
	case DeliverNow:
		return "now"
	case DeliverAfterRedirect:
		return "after_redirect"
	default:
		return fmt.Sprintf("delivery(%d)", int(d))
	}
}

// Container is the per-request view over the accessor and the redirect store.
//
// Messages returns the store messages first, then the messages added during
// this request, each group in insertion order. The store is taken at most
// once per request.
type Container struct {
	accessor *Accessor
	store    Store
	w        http.ResponseWriter
	r        *http.Request
	log      *slog.Logger
	observe  func(context.Context, Event)

	mu        sync.Mutex
	taken     bool
	storeRead bool
	settled   bool
	fromStore []Message
	pending   []Message
}

// NewContainer creates a container for one request. w and r are used for
// store access only; store may be nil when redirect survival is not needed.
func NewContainer(w http.ResponseWriter, r *http.Request, accessor *Accessor, store Store) *Container {
	return newContainer(w, r, accessor, store, discardLogger(), nil)
}

func newContainer(w http.ResponseWriter, r *http.Request, accessor *Accessor, store Store, log *slog.Logger, observe func(context.Context, Event)) *Container {
	if accessor == nil {
		accessor = NewAccessor()
	}
	if observe == nil {
		observe = func(context.Context, Event) {}
	}
	return &Container{
		accessor: accessor,
		store:    store,
		w:        w,
		r:        r,
		log:      log,
		observe:  observe,
	}
}

// Add queues msg for delivery. Messages the accessor would reject are
// rejected here too, whatever the delivery.
func (c *Container) Add(msg Message, d Delivery) error {
	switch d {
	case DeliverNow:
		return c.accessor.Add(msg)
	case DeliverAfterRedirect:
		var err error
		if msg, err = msg.validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown delivery %d", ErrInvalidArgument, int(d))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.settled {
		c.log.WarnContext(c.r.Context(), "toast added after response headers were sent, dropped",
			logger.Component("toast"),
			slog.String("kind", string(msg.Kind)),
		)
		c.observe(c.r.Context(), Event{Type: EventDiscarded, Count: 1})
		return nil
	}

	c.pending = append(c.pending, msg)
	return nil
}

// Messages returns every message deliverable on this response.
// Repeated calls never re-query the store nor duplicate messages.
func (c *Container) Messages() []Message {
	c.mu.Lock()
	c.loadLocked()
	c.storeRead = true
	out := cloneMessages(c.fromStore)
	c.mu.Unlock()

	return append(out, c.accessor.Drain()...)
}

// Pending returns the messages waiting for the next redirect.
func (c *Container) Pending() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneMessages(c.pending)
}

func (c *Container) loadLocked() {
	if c.taken {
		return
	}
	c.taken = true

	if c.store == nil {
		return
	}

	ctx := c.r.Context()
	var msgs []Message
	err := safely(func() (err error) {
		msgs, err = c.store.Take(c.w, c.r)
		return err
	})
	if err != nil {
		c.log.WarnContext(ctx, "failed to load redirected toasts",
			logger.Component("toast"),
			logger.Error(err),
		)
		c.observe(ctx, Event{Type: EventFailed, Err: err})
		return
	}

	c.fromStore = msgs
	if len(msgs) > 0 {
		c.observe(ctx, Event{Type: EventRestored, Count: len(msgs)})
	}
}

// settle finalizes the store side of the request while headers can still be
// changed. It runs once.
//
// On a redirect the pending messages, plus store messages nobody has read,
// are written back and the messages for the current response are dropped.
// Otherwise pending messages are discarded. When deliver is false and the
// response is not a redirect the store is left untouched for the rest of the
// request, and its messages wait for a response that can show them.
func (c *Container) settle(redirect, deliver bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.settled {
		return
	}
	c.settled = true

	ctx := c.r.Context()

	if !redirect {
		if deliver {
			c.loadLocked()
		} else {
			// A Take after the headers are sent could not clear the store.
			c.taken = true
		}
		if n := len(c.pending); n > 0 {
			c.log.DebugContext(ctx, "discarding toasts meant for a redirect on a non-redirect response",
				logger.Component("toast"),
				logger.Count(n),
			)
			c.observe(ctx, Event{Type: EventDiscarded, Count: n})
			c.pending = nil
		}
		return
	}

	c.loadLocked()

	if n := c.accessor.Len(); n > 0 {
		c.log.DebugContext(ctx, "discarding toasts meant for the current response on a redirect",
			logger.Component("toast"),
			logger.Count(n),
		)
		c.observe(ctx, Event{Type: EventDiscarded, Count: n})
	}

	carry := c.pending
	if !c.storeRead && len(c.fromStore) > 0 {
		carry = append(cloneMessages(c.fromStore), carry...)
	}
	if len(carry) == 0 || c.store == nil {
		return
	}

	if err := safely(func() error { return c.store.Put(c.w, c.r, carry) }); err != nil {
		c.log.WarnContext(ctx, "failed to persist toasts for redirect",
			logger.Component("toast"),
			logger.Count(len(carry)),
			logger.Error(err),
		)
		c.observe(ctx, Event{Type: EventFailed, Err: err})
		return
	}
	c.observe(ctx, Event{Type: EventPersisted, Count: len(carry)})
}

// safely runs a store call, turning a panic into an error.
func safely(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: store panic: %v", ErrPersistenceUnavailable, rec)
		}
	}()
	return fn()
}
