package toast

import "errors"

var (
	// ErrInvalidArgument is returned when an absent (zero) message is added.
	ErrInvalidArgument = errors.New("toast.invalid_argument")

	// ErrSerialization indicates a message list could not be encoded or decoded.
	ErrSerialization = errors.New("toast.serialization_failed")

	// ErrPersistenceUnavailable indicates the client scope needed by a store is missing.
	ErrPersistenceUnavailable = errors.New("toast.persistence_unavailable")

	// ErrNoContainer is returned by context helpers when the middleware is not in the chain.
	ErrNoContainer = errors.New("toast.no_container")

	// ErrUnknownKind is returned when decoding a kind that is not one of the four known kinds.
	ErrUnknownKind = errors.New("toast.unknown_kind")
)
