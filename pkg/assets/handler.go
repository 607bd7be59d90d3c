package assets

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// Handler serves assets from src. The request path, with any prefix already
// stripped by the router, is the asset name.
func Handler(src Source) http.Handler {
	logger := slog.Default().With("component", "assets")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		name := strings.TrimPrefix(r.URL.Path, "/")
		rc, info, err := src.Open(r.Context(), name)
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidName):
			http.NotFound(w, r)
			return
		case err != nil:
			logger.Error("asset open failed", "name", name, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		defer rc.Close()

		h := w.Header()
		h.Set("Content-Type", info.ContentType)
		h.Set("X-Content-Type-Options", "nosniff")
		if info.Size > 0 {
			h.Set("Content-Length", strconv.FormatInt(info.Size, 10))
		}
		if info.ETag != "" {
			h.Set("ETag", info.ETag)
			if match := r.Header.Get("If-None-Match"); match != "" && match == info.ETag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
		if !info.ModTime.IsZero() {
			h.Set("Last-Modified", info.ModTime.UTC().Format(http.TimeFormat))
		}
		if r.Method == http.MethodHead {
			return
		}
		if _, err := io.Copy(w, rc); err != nil {
			logger.Debug("asset write aborted", "name", name, "error", err)
		}
	})
}
