// files.go - JSON listing endpoint used by scripted clients.
package server

import (
	"encoding/json"
	"net/http"
)

// listingResp is the JSON shape of GET /_files_json: file names in
// lexical order plus a display size per name.
type listingResp struct {
	Names       []string          `json:"names"`
	SizesByName map[string]string `json:"sizes_by_name"`
}

// listingHandler returns the current listing as JSON. Like the index
// page, every call is a live re-scan of the storage root.
func (s *Server) listingHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		files, err := s.store.List()
		if err != nil {
			http.Error(w, "storage error", http.StatusInternalServerError)
			return
		}

		resp := listingResp{
			Names:       make([]string, 0, len(files)),
			SizesByName: make(map[string]string, len(files)),
		}
		for _, f := range files {
			resp.Names = append(resp.Names, f.Name)
			resp.SizesByName[f.Name] = f.DisplaySize
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	})
}
