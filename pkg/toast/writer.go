package toast

import "net/http"

// responseWriter calls onCommit once, right before the response headers are
// sent. The body is passed through untouched.
type responseWriter struct {
	http.ResponseWriter
	onCommit  func(status int, sniff []byte)
	committed bool
}

func (w *responseWriter) commit(status int, sniff []byte) {
	if w.committed {
		return
	}
	w.committed = true
	if w.onCommit != nil {
		w.onCommit(status, sniff)
	}
}

func (w *responseWriter) WriteHeader(code int) {
	// 1xx responses other than 101 leave the final headers open.
	if code >= 100 && code < 200 && code != http.StatusSwitchingProtocols {
		w.ResponseWriter.WriteHeader(code)
		return
	}
	w.commit(code, nil)
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(p []byte) (int, error) {
	w.commit(http.StatusOK, p)
	return w.ResponseWriter.Write(p)
}

func (w *responseWriter) Flush() {
	w.commit(http.StatusOK, nil)
	_ = http.NewResponseController(w.ResponseWriter).Flush()
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
