package content

import (
	"io/fs"
	"path"
	"strings"
)

// FallbackImage is served whenever a referenced asset is missing.
const FallbackImage = "placeholder.svg"

// Image is a resolved asset reference. Fallback is true when the
// referenced file was not found and URL points at the placeholder.
type Image struct {
	URL      string `json:"url"`
	Fallback bool   `json:"fallback"`
}

// Resolver turns asset references into URLs under a base path, checking
// each one against the static file tree.
type Resolver struct {
	base   string
	static fs.FS
}

// NewResolver returns a resolver rooted at basePath. A nil static tree
// skips the existence check.
func NewResolver(basePath string, static fs.FS) *Resolver {
	base := "/" + strings.Trim(basePath, "/")
	if base != "/" {
		base += "/"
	}
	return &Resolver{base: base, static: static}
}

// URL joins ref onto the base path without checking it.
func (r *Resolver) URL(ref string) string {
	return r.base + strings.TrimLeft(ref, "/")
}

func (r *Resolver) Image(ref string) Image {
	clean := path.Clean(strings.TrimLeft(ref, "/"))
	if ref == "" || !r.exists(clean) {
		return Image{URL: r.URL(FallbackImage), Fallback: true}
	}
	return Image{URL: r.URL(clean)}
}

func (r *Resolver) exists(name string) bool {
	if r.static == nil {
		return true
	}
	if !fs.ValidPath(name) {
		return false
	}
	info, err := fs.Stat(r.static, name)
	return err == nil && !info.IsDir()
}
