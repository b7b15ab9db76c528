package toast

import "context"

type containerKey struct{}

// WithContainer attaches c to ctx.
func WithContainer(ctx context.Context, c *Container) context.Context {
	return context.WithValue(ctx, containerKey{}, c)
}

// FromContext returns the container attached by the middleware.
func FromContext(ctx context.Context) (*Container, bool) {
	c, ok := ctx.Value(containerKey{}).(*Container)
	return c, ok && c != nil
}

// Messages returns the deliverable messages of the request, or nil when the
// middleware is not in the chain.
func Messages(ctx context.Context) []Message {
	c, ok := FromContext(ctx)
	if !ok {
		return nil
	}
	return c.Messages()
}

// MessageOption configures a message added through the package helpers.
type MessageOption func(*messageConfig)

type messageConfig struct {
	delivery Delivery
	options  map[string]any
}

// AfterRedirect defers the message to the page the client is redirected to.
func AfterRedirect() MessageOption {
	return func(c *messageConfig) { c.delivery = DeliverAfterRedirect }
}

// WithOption sets a single display option for the rendering library.
func WithOption(key string, value any) MessageOption {
	return func(c *messageConfig) {
		if c.options == nil {
			c.options = make(map[string]any)
		}
		c.options[key] = value
	}
}

// WithOptions merges display options for the rendering library.
func WithOptions(opts map[string]any) MessageOption {
	return func(c *messageConfig) {
		for k, v := range opts {
			WithOption(k, v)(c)
		}
	}
}

// WithTitle sets the toast title.
func WithTitle(title string) MessageOption {
	return WithOption("title", title)
}

// Add queues msg on the request container found in ctx.
func Add(ctx context.Context, msg Message, d Delivery) error {
	c, ok := FromContext(ctx)
	if !ok {
		return ErrNoContainer
	}
	return c.Add(msg, d)
}

// Notify builds a message of the given kind and queues it.
func Notify(ctx context.Context, kind Kind, text string, opts ...MessageOption) error {
	var cfg messageConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return Add(ctx, Message{Kind: kind, Text: text, Options: cfg.options}, cfg.delivery)
}

func Success(ctx context.Context, text string, opts ...MessageOption) error {
	return Notify(ctx, KindSuccess, text, opts...)
}

func Error(ctx context.Context, text string, opts ...MessageOption) error {
	return Notify(ctx, KindError, text, opts...)
}

func Warning(ctx context.Context, text string, opts ...MessageOption) error {
	return Notify(ctx, KindWarning, text, opts...)
}

func Info(ctx context.Context, text string, opts ...MessageOption) error {
	return Notify(ctx, KindInfo, text, opts...)
}
