package shellcache

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// DirHandler serves a built frontend directory. Unlike http.FileServer it
// never redirects /index.html, so every manifest path answers 200.
type DirHandler struct {
	Root string
}

func (h DirHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := path.Clean("/" + r.URL.Path)
	if name == "/" {
		name = "/index.html"
	}
	full := filepath.Join(h.Root, filepath.FromSlash(name))

	f, err := os.Open(full)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
