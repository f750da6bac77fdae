// upload.go - Multipart upload handler.
package server

import (
	"log"
	"net/http"
)

// maxMultipartMemory bounds the in-memory buffer for multipart
// parsing; larger parts spill to temporary files.
const maxMultipartMemory = 32 << 20

// uploadHandler handles POST /upload. The body carries one or more
// file parts under the form field "file". Parts with an empty
// filename are skipped; every other part is sanitized to a flat name
// and written into the storage root, overwriting any existing file of
// the same name. Redirects to "/" on completion.
//
// There is deliberately no size, MIME-type, or disk-space validation:
// the server trusts its own LAN. A filesystem write error aborts the
// whole batch with a generic server error.
func (s *Server) uploadHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			http.Error(w, "bad multipart", http.StatusBadRequest)
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		for _, fh := range r.MultipartForm.File["file"] {
			if fh.Filename == "" {
				continue
			}

			name := SanitizeFilename(fh.Filename)

			part, err := fh.Open()
			if err != nil {
				s.metrics.RecordUploadError()
				http.Error(w, "upload failed", http.StatusInternalServerError)
				return
			}

			n, err := s.store.Save(name, part)
			_ = part.Close()
			if err != nil {
				rid := RequestIDFromContext(r.Context())
				log.Printf("rid=%s msg=save_failed name=%q err=%v", rid, name, err)
				s.metrics.RecordUploadError()
				http.Error(w, "upload failed", http.StatusInternalServerError)
				return
			}

			s.metrics.RecordUpload(n)
		}

		http.Redirect(w, r, "/", http.StatusFound)
	})
}
