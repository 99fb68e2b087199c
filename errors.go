package json

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every structured error below wraps one of these, so
// callers can use errors.Is(err, json.ErrType) / errors.Is(err, json.ErrParse)
// without caring about the specific variant, mirroring the teacher
// library's ErrType/ErrParse sentinels.
var (
	// ErrType marks an accessor error: a value of the wrong category, or
	// a number that didn't fit its coercion target.
	ErrType = errors.New("json: type error")
	// ErrParse marks a lexical/structural error raised by the parser.
	ErrParse = errors.New("json: parse error")
)

// ErrorKind distinguishes the four accessor error shapes of spec §7.
type ErrorKind int8

const (
	// ErrorMissingOrInvalidType: no value at the position, or a value of
	// the wrong category.
	ErrorMissingOrInvalidType ErrorKind = iota
	// ErrorOutOfRangeInt64: an integer didn't fit a narrower integer type.
	ErrorOutOfRangeInt64
	// ErrorOutOfRangeDouble: a double didn't fit the integer target.
	ErrorOutOfRangeDouble
	// ErrorOutOfRangeDecimal: a decimal didn't fit the integer target.
	ErrorOutOfRangeDecimal
)

// Expectation describes what an accessor required at a position:
// required(category) or optional(category).
type Expectation struct {
	Category Category
	Optional bool
}

func required(c Category) Expectation { return Expectation{Category: c} }
func optional(c Category) Expectation { return Expectation{Category: c, Optional: true} }

func (e Expectation) String() string {
	if e.Optional {
		return "optional(" + string(e.Category) + ")"
	}
	return "required(" + string(e.Category) + ")"
}

// JSONError is the accessor-layer error type: a category mismatch or a
// numeric-range failure, annotated with the structural path at which it
// occurred. Path is built bottom-up: empty at the leaf, and prefixed with
// a key or "[index]" each time the error crosses a keyed/indexed lookup
// boundary (see prefixKey/prefixIndex).
type JSONError struct {
	Kind     ErrorKind
	Path     string // "" at the leaf; dotted/bracketed once prefixed
	Expected Expectation
	Actual   Category // "" when the position had no value at all

	// Populated for the OutOfRange* kinds.
	IntValue    int64
	DoubleValue float64
	DecimalText string
	Target      string // "int" or "int64"
}

func (e *JSONError) Error() string {
	path := e.Path
	if path == "" {
		path = "<root>"
	}
	switch e.Kind {
	case ErrorMissingOrInvalidType:
		if e.Actual == "" {
			return fmt.Sprintf("%s: expected %s, found nothing", path, e.Expected)
		}
		return fmt.Sprintf("%s: expected %s, found %s", path, e.Expected, e.Actual)
	case ErrorOutOfRangeInt64:
		return fmt.Sprintf("%s: integer %d out of range for %s", path, e.IntValue, e.Target)
	case ErrorOutOfRangeDouble:
		return fmt.Sprintf("%s: double %v out of range for %s", path, e.DoubleValue, e.Target)
	case ErrorOutOfRangeDecimal:
		return fmt.Sprintf("%s: decimal %s out of range for %s", path, e.DecimalText, e.Target)
	default:
		return fmt.Sprintf("%s: json error", path)
	}
}

// Unwrap allows errors.Is(err, json.ErrType) to succeed for all JSONError
// kinds.
func (e *JSONError) Unwrap() error { return ErrType }

func missingOrInvalidType(expected Expectation, actual Category) *JSONError {
	return &JSONError{Kind: ErrorMissingOrInvalidType, Expected: expected, Actual: actual}
}

func outOfRangeInt64(value int64, target string) *JSONError {
	return &JSONError{Kind: ErrorOutOfRangeInt64, IntValue: value, Target: target}
}

func outOfRangeDouble(value float64, target string) *JSONError {
	return &JSONError{Kind: ErrorOutOfRangeDouble, DoubleValue: value, Target: target}
}

func outOfRangeDecimal(text string, target string) *JSONError {
	return &JSONError{Kind: ErrorOutOfRangeDecimal, DecimalText: text, Target: target}
}

// prefixKey rewrites err's path (if it is a *JSONError) to prepend key,
// joined by joinPaths ("key.rest", or "key[0]..." before an index). Any
// other error is wrapped so the key is still visible in its message.
func prefixKey(key string, err error) error {
	if err == nil {
		return nil
	}
	var je *JSONError
	if errors.As(err, &je) {
		cp := *je
		cp.Path = joinPaths(key, cp.Path)
		return &cp
	}
	return fmt.Errorf("%s: %w", key, err)
}

// prefixIndex rewrites err's path (if it is a *JSONError) to prepend
// "[index]", joined by joinPaths ("[0][1]" before another index,
// "[0].key" before a key).
func prefixIndex(index int, err error) error {
	if err == nil {
		return nil
	}
	var je *JSONError
	if errors.As(err, &je) {
		cp := *je
		cp.Path = joinPaths(fmt.Sprintf("[%d]", index), cp.Path)
		return &cp
	}
	return fmt.Errorf("[%d]: %w", index, err)
}

// joinPaths joins an already-accumulated base path (e.g. "user.tags",
// carried on a *Object/*Array returned from an earlier keyed/indexed
// lookup; see Object.scoped) with a suffix produced by prefixKey/
// prefixIndex at the current call. Indices attach directly ("[2]"),
// everything else joins with a dot.
func joinPaths(base, suffix string) string {
	if base == "" {
		return suffix
	}
	if suffix == "" {
		return base
	}
	if suffix[0] == '[' {
		return base + suffix
	}
	return base + "." + suffix
}

// prefixBase rewrites err's path (if it is a *JSONError) to prepend base
// ahead of whatever path it already carries, using joinPaths. Used to
// fold a container's own accumulated path onto an error produced by a
// lookup made through it, so a chain of accessor calls composes the full
// structural path rather than just the path of the last call.
func prefixBase(base string, err error) error {
	if base == "" || err == nil {
		return err
	}
	var je *JSONError
	if errors.As(err, &je) {
		cp := *je
		cp.Path = joinPaths(base, cp.Path)
		return &cp
	}
	return err
}

// ParseErrorCode is the parser error taxonomy of spec §4.2.
type ParseErrorCode int8

const (
	ErrUnexpectedEOF ParseErrorCode = iota
	ErrUnexpectedCharacter
	ErrInvalidEscape
	ErrInvalidUnicodeScalar
	ErrInvalidNumber
	ErrControlCharacterInString
	ErrTrailingData
	ErrExceededDepthLimit
	ErrInvalidUTF
	// ErrDuplicateKey is not named in the base parser error taxonomy but
	// is required by the keepDuplicateKeys=error policy; see DESIGN.md.
	ErrDuplicateKey
)

var parseErrorNames = [...]string{
	"unexpectedEOF",
	"unexpectedCharacter",
	"invalidEscape",
	"invalidUnicodeScalar",
	"invalidNumber",
	"controlCharacterInString",
	"trailingData",
	"exceededDepthLimit",
	"invalidUTF",
	"duplicateKey",
}

func (c ParseErrorCode) String() string {
	if int(c) < 0 || int(c) >= len(parseErrorNames) {
		return "<unknown>"
	}
	return parseErrorNames[c]
}

// ParseError is the error type returned by the parser/lexer/decoder.
// Line and Column are 1-based; Column counts code points since the last
// line break.
type ParseError struct {
	Code    ParseErrorCode
	Line    int
	Column  int
	Char    rune // set for ErrUnexpectedCharacter; 0 otherwise
	Message string
}

func (e *ParseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("json: %s at line %d, column %d: %s", e.Code, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("json: %s at line %d, column %d", e.Code, e.Line, e.Column)
}

func (e *ParseError) Unwrap() error { return ErrParse }

func newParseError(code ParseErrorCode, line, col int, msg string) *ParseError {
	return &ParseError{Code: code, Line: line, Column: col, Message: msg}
}

func newUnexpectedCharErr(line, col int, c rune) *ParseError {
	return &ParseError{
		Code:    ErrUnexpectedCharacter,
		Line:    line,
		Column:  col,
		Char:    c,
		Message: fmt.Sprintf("unexpected character %q", c),
	}
}
