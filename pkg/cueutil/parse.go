// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

// ParseResult contains the result of a successful parse.
type ParseResult[T any] struct {
	// Value is the decoded Go struct.
	Value *T

	// Unified is the document unified with its schema definition.
	Unified cue.Value
}

// ParseAndDecode compiles schema, compiles data in the configured format,
// checks required fields, unifies data with the definition at schemaPath,
// validates, and decodes into T.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	filename := options.filename
	if filename == "" {
		filename = "<input>"
	}

	if err := CheckFileSize(data, options.maxFileSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue, err := compileDocument(ctx, data, filename, options.format)
	if err != nil {
		return nil, err
	}

	// Non-struct documents fall through to the schema, which reports the kind mismatch.
	for _, field := range options.required {
		if userValue.IncompleteKind() != cue.StructKind {
			break
		}
		if !userValue.LookupPath(cue.ParsePath(field)).Exists() {
			return nil, &MissingFieldError{FilePath: filename, Field: field}
		}
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	unified := schemaRoot.Unify(userValue)

	if options.concrete {
		err = unified.Validate(cue.Concrete(true))
	} else {
		err = unified.Validate()
	}
	if err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}

	return &ParseResult[T]{
		Value:   &result,
		Unified: unified,
	}, nil
}

func compileDocument(ctx *cue.Context, data []byte, filename string, format Format) (cue.Value, error) {
	switch format {
	case FormatJSON:
		expr, err := cuejson.Extract(filename, data)
		if err != nil {
			// The extractor's own message repeats the file name.
			if cause := errors.Unwrap(err); cause != nil {
				return cue.Value{}, fmt.Errorf("%s: invalid JSON: %w", filename, cause)
			}
			return cue.Value{}, FormatError(err, filename)
		}
		v := ctx.BuildExpr(expr)
		if v.Err() != nil {
			return cue.Value{}, FormatError(v.Err(), filename)
		}
		return v, nil
	default:
		v := ctx.CompileBytes(data, cue.Filename(filename))
		if v.Err() != nil {
			return cue.Value{}, FormatError(v.Err(), filename)
		}
		return v, nil
	}
}
