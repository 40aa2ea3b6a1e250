package keypath

import (
	"errors"
	"fmt"

	"github.com/dzjyyds666/tq/parse/toml"
)

// Syntax errors returned (wrapped in *ParseError) by Parse.
var (
	ErrBlankPath           = errors.New("blank path")
	ErrConsecutiveDots     = errors.New("consecutive dots")
	ErrStrayBracket        = errors.New("missing opening bracket")
	ErrDotInBrackets       = errors.New("dot inside brackets")
	ErrNestedBrackets      = errors.New("nested brackets")
	ErrEmptyBrackets       = errors.New("empty brackets")
	ErrInvalidIndex        = errors.New("invalid array index")
	ErrTrailingDot         = errors.New("path ends with a dot")
	ErrUnterminatedBracket = errors.New("unclosed bracket")
)

// Lookup errors returned (wrapped in *LookupError) by Find.
var (
	ErrNotFound     = errors.New("not found")
	ErrTypeMismatch = errors.New("type mismatch")
)

// ParseError describes a malformed key path.
type ParseError struct {
	Path   string
	Offset int    // byte offset of the offending character, len(Path) at end of input
	Detail string // offending text, set for ErrInvalidIndex
	Kind   error
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("invalid key path %q: %s %q at offset %d", e.Path, e.Kind, e.Detail, e.Offset)
	}
	return fmt.Sprintf("invalid key path %q: %s at offset %d", e.Path, e.Kind, e.Offset)
}

func (e *ParseError) Unwrap() error { return e.Kind }

// LookupError describes a step that could not be followed.
type LookupError struct {
	Step     Step
	Position int            // index of Step within the pattern
	At       string         // canonical path of the value Step was applied to
	Found    toml.ValueKind // kind of that value
	Len      int            // array length, for out of range indices
	Kind     error
}

func (e *LookupError) Error() string {
	switch {
	case e.Kind == ErrNotFound && e.Step.Kind == KindArrayIndex:
		return fmt.Sprintf("unknown key %d at %s: array has %d elements", e.Step.Index, e.At, e.Len)
	case e.Kind == ErrNotFound:
		return fmt.Sprintf("unknown key %q at %s", e.Step.Key, e.At)
	case e.Step.Kind == KindArrayIndex:
		return fmt.Sprintf("cannot look up index %d at %s: value is %s, not array", e.Step.Index, e.At, e.Found)
	default:
		return fmt.Sprintf("cannot look up key %q at %s: value is %s, not table", e.Step.Key, e.At, e.Found)
	}
}

func (e *LookupError) Unwrap() error { return e.Kind }
