package web

import (
	"embed"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

//go:embed ui
var embeddedUI embed.FS

// serveSPA serves files out of directory, or the embedded page when
// directory is empty. Unknown paths get mainIndex so client side
// routing keeps working.
func serveSPA(directory string, mainIndex string) (http.HandlerFunc, error) {
	var root fs.FS
	if directory == "" {
		sub, err := fs.Sub(embeddedUI, "ui")
		if err != nil {
			return nil, err
		}
		root = sub
	} else {
		if _, err := os.Stat(directory); err != nil {
			return nil, err
		}
		root = os.DirFS(directory)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		// Disable caching
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name == "" {
			name = mainIndex
		}

		// Can't find the requested file, serve index.
		if st, err := fs.Stat(root, name); err != nil || st.IsDir() {
			name = mainIndex
		}

		http.ServeFileFS(w, r, root, name)
	}, nil
}
