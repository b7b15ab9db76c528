package flashstore

import "errors"

var (
	ErrNilClient = errors.New("flashstore.nil_client")
	ErrBackend   = errors.New("flashstore.backend_failed")
)
