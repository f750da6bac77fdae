// compression.go - HTTP compression middleware.
//
// Implements gzip compression for the text-based responses (HTML page,
// JSON listing). File downloads are left alone: the payload is opaque
// bytes that may already be compressed.
package server

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
)

// compressionResponseWriter wraps http.ResponseWriter to compress responses.
type compressionResponseWriter struct {
	http.ResponseWriter
	writer io.Writer
}

// Write compresses data before writing to the underlying writer.
func (crw *compressionResponseWriter) Write(b []byte) (int, error) {
	return crw.writer.Write(b)
}

// compressionMiddleware returns middleware that compresses HTTP responses.
func compressionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !acceptsCompression(r) || shouldSkipCompression(r) {
			next.ServeHTTP(w, r)
			return
		}

		gz := gzip.NewWriter(w)
		defer gz.Close()

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length") // Length will change with compression

		crw := &compressionResponseWriter{
			ResponseWriter: w,
			writer:         gz,
		}

		next.ServeHTTP(crw, r)
	})
}

// acceptsCompression checks if the client accepts gzip encoding.
func acceptsCompression(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
}

// shouldSkipCompression determines if compression should be skipped
// for this request.
func shouldSkipCompression(r *http.Request) bool {
	// Downloads stream raw file bytes.
	return strings.HasPrefix(r.URL.Path, "/files/")
}
