package domain

import (
	"net/url"
	"path/filepath"
	"strings"
)

// Source is one image submitted for recognition: either a remote URL the
// service fetches itself, or a local file uploaded as bytes.
type Source struct {
	URL  string `json:"url,omitempty"`
	Path string `json:"path,omitempty"`
}

// ParseSource classifies a command line argument as URL or local path.
func ParseSource(arg string) Source {
	arg = strings.TrimSpace(arg)
	if u, err := url.Parse(arg); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return Source{URL: arg}
	}
	return Source{Path: filepath.Clean(arg)}
}

// IsRemote reports whether the source is fetched by the service.
func (s Source) IsRemote() bool {
	return s.URL != ""
}

// String returns the URL or path.
func (s Source) String() string {
	if s.IsRemote() {
		return s.URL
	}
	return s.Path
}
