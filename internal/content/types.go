// Package content cleans raw markdown articles before rendering: badge
// and metadata stripping, duplicate code block removal, and whitespace
// normalization, with a fail-open safety net that never destroys an
// article's educational substance.
package content

import (
	"fmt"
	"time"
)

// CleanupOptions controls which artifact classes Sanitize strips. Use
// DefaultCleanupOptions as a starting point; every stage is independently
// toggleable.
type CleanupOptions struct {
	// RemoveConstitutional strips spec-badge markup: badge images, bolded
	// compliance labels, badge HTML comments and inline badge elements.
	RemoveConstitutional bool
	// RemoveInstructional strips TODO/FIXME/NOTE comments, placeholder
	// bracket tags, blockquoted developer notes, and internal-only
	// frontmatter keys.
	RemoveInstructional bool
	// RemoveDigitArtifacts strips standalone numeric lines that sit
	// immediately inside code fences.
	RemoveDigitArtifacts bool
	// RemoveDuplicateCode deletes fenced code blocks whose language and
	// normalized body match an earlier block.
	RemoveDuplicateCode bool
	// NormalizeWhitespace collapses excess blank lines, trims trailing
	// whitespace, and drops empty headings and list items.
	NormalizeWhitespace bool
	// PreserveEducationalValue enables the safety check that falls back to
	// minimal cleanup when too much content would be lost.
	PreserveEducationalValue bool
}

// DefaultCleanupOptions returns the standard cleanup configuration with
// every stage enabled.
func DefaultCleanupOptions() CleanupOptions {
	return CleanupOptions{
		RemoveConstitutional:     true,
		RemoveInstructional:      true,
		RemoveDigitArtifacts:     true,
		RemoveDuplicateCode:      true,
		NormalizeWhitespace:      true,
		PreserveEducationalValue: true,
	}
}

// FrontMatter is the typed metadata block at the top of a topic article.
// Unknown keys land in Extra.
type FrontMatter struct {
	Title   string         `yaml:"title,omitempty"`
	Slug    string         `yaml:"slug,omitempty"`
	Summary string         `yaml:"summary,omitempty"`
	Tags    []string       `yaml:"tags,omitempty"`
	Author  string         `yaml:"author,omitempty"`
	Date    time.Time      `yaml:"date,omitempty"`
	Draft   bool           `yaml:"draft,omitempty"`
	Extra   map[string]any `yaml:",inline"`
}

// ErrorKind classifies content-level failures surfaced to the viewer shell.
type ErrorKind string

const (
	ErrorNotFound   ErrorKind = "not-found"
	ErrorParse      ErrorKind = "parse-error"
	ErrorValidation ErrorKind = "validation-error"
)

// Error is a typed content failure tied to an asset path.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("content %s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("content %s: %s", e.Kind, e.Path)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a typed content error.
func NewError(kind ErrorKind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}
