package matching

import (
	"path"
	"strings"

	"github.com/viant/afs/url"

	"github.com/viant/checklister/matching/option"
)

// Manager decides which documents of a location are turned into checklists
type Manager struct {
	options *option.Options
}

// New creates a new matching manager with the given options
func New(opts ...option.Option) *Manager {
	return &Manager{options: option.NewOptions(opts...)}
}

// IsExcluded checks if a document should be skipped based on size and patterns
func (m *Manager) IsExcluded(location string, size int) bool {
	if m.options.MaxFileSize > 0 && size > m.options.MaxFileSize {
		return true
	}

	p := strings.ReplaceAll(url.Path(location), "\\", "/")
	if !m.isIncluded(p) {
		return true
	}
	for _, pattern := range m.options.Excludes() {
		pattern = strings.TrimSpace(pattern)
		// Skip comments or empty lines
		if pattern == "" || strings.HasPrefix(pattern, "#") {
			continue
		}
		if matches(p, pattern) {
			return true
		}
	}
	return false
}

func (m *Manager) isIncluded(p string) bool {
	for _, pattern := range m.options.Includes() {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" || strings.HasPrefix(pattern, "#") {
			continue
		}
		if matches(p, pattern) {
			return true
		}
	}
	return false
}

// matches reports whether p matches a gitignore-like pattern: "dir/" matches a
// directory segment, patterns with a slash match a path suffix, anything else
// matches the base name. Base name globs are case-insensitive.
func matches(p, pattern string) bool {
	if strings.HasSuffix(pattern, "/") {
		dir := strings.Trim(pattern, "/")
		for _, segment := range strings.Split(path.Dir(p), "/") {
			if segment == dir {
				return true
			}
		}
		return false
	}
	pattern = strings.TrimPrefix(pattern, "**/")
	if strings.Contains(pattern, "/") {
		segments := strings.Split(strings.TrimPrefix(p, "/"), "/")
		depth := len(strings.Split(pattern, "/"))
		if depth > len(segments) {
			return false
		}
		suffix := strings.Join(segments[len(segments)-depth:], "/")
		ok, _ := path.Match(pattern, suffix)
		return ok
	}
	ok, _ := path.Match(strings.ToLower(pattern), strings.ToLower(path.Base(p)))
	return ok
}
