package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"sync"
)

// Exports of a full catalog state run to a few KB
const initialBufferSize = 4 << 10

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, initialBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}

// writeBuffered renders the body with fill before any header is sent, so a
// render failure still becomes a clean 500
func writeBuffered(w http.ResponseWriter, status int, header http.Header, fill func(*bytes.Buffer) error) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := fill(buf); err != nil {
		slog.Error("Failed to render response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	for key, values := range header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}
