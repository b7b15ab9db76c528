package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error"; empty Attr when err is nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Count records a message count under "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// Store records the redirect store kind under "store".
func Store(kind string) slog.Attr {
	return slog.String("store", kind)
}

// Library records the rendering library name under "library".
func Library(name string) slog.Attr {
	return slog.String("library", name)
}

// Duration records a duration under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
