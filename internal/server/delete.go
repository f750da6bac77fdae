// delete.go - File deletion handler.
//
// Delete rides on GET with a path parameter for parity with the
// browser UI, which confirms client-side and then follows a plain
// link. A crawler or prefetcher hitting these URLs would delete files;
// the UI is only reachable on the local network, but a stricter
// surface would require POST or DELETE here.
package server

import (
	"log"
	"net/http"
	"os"
	"strings"
)

// deleteHandler handles GET /delete/{name}. If the safety guard
// passes and the file exists it is removed; the response is a
// redirect to "/" regardless, so deleting an already-missing file is
// indistinguishable from success.
func (s *Server) deleteHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		name := strings.TrimPrefix(r.URL.Path, "/delete/")
		if name != "" && s.store.IsSafeName(name) {
			if info, err := os.Stat(s.store.Path(name)); err == nil && info.Mode().IsRegular() {
				if err := s.store.Delete(name); err != nil {
					rid := RequestIDFromContext(r.Context())
					log.Printf("rid=%s msg=delete_failed name=%q err=%v", rid, name, err)
				} else {
					s.metrics.RecordDelete()
				}
			}
		}

		http.Redirect(w, r, "/", http.StatusFound)
	})
}
