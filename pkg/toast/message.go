package toast

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
)

// Kind represents the toast severity.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindSuccess, KindError, KindWarning, KindInfo:
		return true
	default:
		return false
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
	return []byte(k), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v := Kind(b)
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, string(b))
	}
	*k = v
	return nil
}

// Message is a single toast. Treat it as immutable: the library clones
// Options whenever a message crosses an ownership boundary.
//
// Options hold JSON values. Messages entering the library are normalized to
// the types encoding/json decodes into (float64 for numbers, []any, map[string]any),
// so a message reads the same before and after a redirect.
type Message struct {
	Kind    Kind           `json:"kind"`
	Text    string         `json:"text"`
	Options map[string]any `json:"options,omitempty"`
}

// NewMessage creates a message with a normalized copy of opts. Options that
// cannot be encoded are copied as they are; adding such a message fails.
func NewMessage(kind Kind, text string, opts map[string]any) Message {
	msg := Message{Kind: kind, Text: text, Options: opts}
	if n, err := msg.normalize(); err == nil {
		return n
	}
	return msg.clone()
}

// IsZero reports whether m is the absent message.
func (m Message) IsZero() bool {
	return m.Kind == "" && m.Text == "" && len(m.Options) == 0
}

// Option returns a single per-message display option.
func (m Message) Option(key string) (any, bool) {
	v, ok := m.Options[key]
	return v, ok
}

// validate checks m before it is queued and returns it normalized.
func (m Message) validate() (Message, error) {
	if m.IsZero() {
		return m, ErrInvalidArgument
	}
	if !m.Kind.Valid() {
		return m, fmt.Errorf("%w: %w: %q", ErrInvalidArgument, ErrUnknownKind, string(m.Kind))
	}
	n, err := m.normalize()
	if err != nil {
		return m, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return n, nil
}

// normalize returns a copy of m whose options went through a JSON round trip.
func (m Message) normalize() (Message, error) {
	if len(m.Options) == 0 {
		m.Options = nil
		return m, nil
	}

	data, err := json.Marshal(m.Options)
	if err != nil {
		return m, errors.Join(ErrSerialization, err)
	}
	var opts map[string]any
	if err := json.Unmarshal(data, &opts); err != nil {
		return m, errors.Join(ErrSerialization, err)
	}
	m.Options = opts
	return m, nil
}

func (m Message) clone() Message {
	m.Options = maps.Clone(m.Options)
	return m
}

func cloneMessages(msgs []Message) []Message {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]Message, len(msgs))
	for i, m := range msgs {
		out[i] = m.clone()
	}
	return out
}
