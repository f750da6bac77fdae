// download.go - File download handler.
package server

import (
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// downloadHandler handles GET /files/{name}. The named file's bytes
// are streamed inline if the safety guard passes and the file exists;
// every other case is a plain 404.
func (s *Server) downloadHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		name := strings.TrimPrefix(r.URL.Path, "/files/")
		if name == "" || !s.store.IsSafeName(name) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		info, err := os.Stat(s.store.Path(name))
		if err != nil || !info.Mode().IsRegular() {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		f, err := os.Open(s.store.Path(name))
		if err != nil {
			s.metrics.RecordDownloadError()
			http.Error(w, "storage error", http.StatusInternalServerError)
			return
		}
		defer func() { _ = f.Close() }()

		contentType := mime.TypeByExtension(filepath.Ext(name))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))

		w.WriteHeader(http.StatusOK)

		n, err := io.Copy(w, f)
		if err != nil {
			// Client went away mid-transfer; nothing useful to send.
			s.metrics.RecordDownloadError()
			return
		}
		s.metrics.RecordDownload(n)
	})
}
