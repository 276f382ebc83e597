// Package option configures which documents batch generation picks up.
package option

import (
	"bufio"
	"io"
	"slices"
	"strings"
)

// DefaultInclusions applies when no inclusion pattern is given.
var DefaultInclusions = []string{"*.pdf"}

// DefaultExclusions are skipped unless WithoutDefaultExclusions is used. The
// last pattern keeps generate from picking up its own output.
var DefaultExclusions = []string{
	".git/",
	".Trash/",
	"__MACOSX/",
	".DS_Store",
	"*_compliance_checklist.xlsx",
}

// Options selects documents by pattern and size.
type Options struct {
	// Inclusions replace DefaultInclusions when set.
	Inclusions []string
	// Exclusions are added to DefaultExclusions.
	Exclusions []string
	// MaxFileSize in bytes, 0 means unbounded.
	MaxFileSize int
	// SkipDefaults drops DefaultExclusions.
	SkipDefaults bool
}

// Option mutates Options.
type Option func(*Options)

// NewOptions applies opts in order.
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Options returns the Option list that rebuilds o, so a config-loaded Options
// can be layered under flag options.
func (o *Options) Options() []Option {
	var result []Option
	if len(o.Inclusions) > 0 {
		result = append(result, WithInclusionPatterns(o.Inclusions...))
	}
	if len(o.Exclusions) > 0 {
		result = append(result, WithExclusionPatterns(o.Exclusions...))
	}
	if o.MaxFileSize > 0 {
		result = append(result, WithMaxFileSize(o.MaxFileSize))
	}
	if o.SkipDefaults {
		result = append(result, WithoutDefaultExclusions())
	}
	return result
}

// Includes returns the effective inclusion patterns.
func (o *Options) Includes() []string {
	if len(o.Inclusions) == 0 {
		return DefaultInclusions
	}
	return o.Inclusions
}

// Excludes returns the effective exclusion patterns.
func (o *Options) Excludes() []string {
	if o.SkipDefaults {
		return o.Exclusions
	}
	return append(slices.Clone(DefaultExclusions), o.Exclusions...)
}

// WithInclusionPatterns adds inclusion patterns.
func WithInclusionPatterns(patterns ...string) Option {
	return func(o *Options) {
		o.Inclusions = append(o.Inclusions, patterns...)
	}
}

// WithExclusionPatterns adds exclusion patterns.
func WithExclusionPatterns(patterns ...string) Option {
	return func(o *Options) {
		o.Exclusions = append(o.Exclusions, patterns...)
	}
}

// WithMaxFileSize bounds the document size.
func WithMaxFileSize(size int) Option {
	return func(o *Options) {
		o.MaxFileSize = size
	}
}

// WithoutDefaultExclusions drops DefaultExclusions.
func WithoutDefaultExclusions() Option {
	return func(o *Options) {
		o.SkipDefaults = true
	}
}

// WithIgnoreFile adds the exclusion patterns of a .gitignore-style file.
func WithIgnoreFile(reader io.Reader) Option {
	patterns := ParseIgnoreFile(reader)
	return WithExclusionPatterns(patterns...)
}

// ParseIgnoreFile returns one pattern per line, skipping blanks and # comments.
func ParseIgnoreFile(reader io.Reader) []string {
	var patterns []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}
