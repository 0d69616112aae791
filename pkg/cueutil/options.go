// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize caps the size of a document accepted for parsing (1MB).
const DefaultMaxFileSize int64 = 1 << 20

const (
	// FormatCUE treats input as CUE source.
	FormatCUE Format = iota
	// FormatJSON treats input as a JSON document.
	FormatJSON
)

type (
	// Format selects how the document bytes are interpreted.
	Format int

	parseOptions struct {
		maxFileSize int64
		concrete    bool
		filename    string
		format      Format
		required    []string
	}

	// Option configures parsing behavior.
	Option func(*parseOptions)
)

func defaultOptions() parseOptions {
	return parseOptions{
		maxFileSize: DefaultMaxFileSize,
		concrete:    true,
		format:      FormatCUE,
	}
}

// String returns the lowercase format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	default:
		return "cue"
	}
}

// WithMaxFileSize sets the maximum allowed document size.
func WithMaxFileSize(size int64) Option {
	return func(o *parseOptions) {
		o.maxFileSize = size
	}
}

// WithConcrete sets whether all values must be concrete after unification.
// Default is true.
func WithConcrete(concrete bool) Option {
	return func(o *parseOptions) {
		o.concrete = concrete
	}
}

// WithFilename sets the filename used in error messages.
func WithFilename(name string) Option {
	return func(o *parseOptions) {
		o.filename = name
	}
}

// WithFormat sets the input format. Default is FormatCUE.
func WithFormat(format Format) Option {
	return func(o *parseOptions) {
		o.format = format
	}
}

// WithRequiredFields names fields that must be present in the document
// itself, before the schema is applied. A missing field is reported as a
// *MissingFieldError rather than a schema violation.
func WithRequiredFields(fields ...string) Option {
	return func(o *parseOptions) {
		o.required = append(o.required, fields...)
	}
}
