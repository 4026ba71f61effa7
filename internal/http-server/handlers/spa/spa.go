// Package spa serves the single-page booking UI: existing files under the static
// directory are served as-is and every other GET falls back to index.html.
package spa

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const indexFile = "index.html"

func New(log *slog.Logger, dir string) http.HandlerFunc {
	log = log.With(slog.String("op", "handlers.spa.New"), slog.String("dir", dir))

	return func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)

		if name != "/" && !strings.HasPrefix(name, "/api/") {
			full := filepath.Join(dir, filepath.FromSlash(name))
			if serveFile(w, r, full) {
				return
			}
		}

		index := filepath.Join(dir, indexFile)
		if !serveFile(w, r, index) {
			log.Error("index page is missing", slog.String("path", index))
			http.NotFound(w, r)
		}
	}
}

// serveFile writes the regular file at name and reports whether it did.
// name must already be confined to the static dir.
func serveFile(w http.ResponseWriter, r *http.Request, name string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)

	return true
}
