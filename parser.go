package json

import (
	"github.com/shopspring/decimal"
)

// EventType tags a structural event produced by the parser.
type EventType int8

// Structural event types (spec §4.2).
const (
	ObjectStart EventType = iota
	ObjectEnd
	ArrayStart
	ArrayEnd
	BooleanValue
	NullValue
	StringValue
	Int64Value
	DoubleValue
	DecimalEvent
	EndOfInput
)

func (t EventType) String() string {
	switch t {
	case ObjectStart:
		return "ObjectStart"
	case ObjectEnd:
		return "ObjectEnd"
	case ArrayStart:
		return "ArrayStart"
	case ArrayEnd:
		return "ArrayEnd"
	case BooleanValue:
		return "BooleanValue"
	case NullValue:
		return "NullValue"
	case StringValue:
		return "StringValue"
	case Int64Value:
		return "Int64Value"
	case DoubleValue:
		return "DoubleValue"
	case DecimalEvent:
		return "DecimalValue"
	case EndOfInput:
		return "EndOfInput"
	default:
		return "<unknown>"
	}
}

// Event is one token of the parser's structural event stream. Only the
// field(s) relevant to Type are meaningful.
type Event struct {
	Type    EventType
	Bool    bool
	Str     string
	Int64   int64
	Double  float64
	Decimal decimal.Decimal
	Line    int
	Column  int
}

// DuplicateKeyPolicy selects how the value assembler (decode.go) handles
// an object literal with a repeated key.
type DuplicateKeyPolicy int8

const (
	// KeepLastDuplicateKey keeps the last-seen value for a repeated key
	// (spec §4.2 default).
	KeepLastDuplicateKey DuplicateKeyPolicy = iota
	// ErrorOnDuplicateKey rejects a repeated key with a *ParseError.
	ErrorOnDuplicateKey
)

// ParserOptions configures the lexer/parser and the value assembler built
// on top of it (spec §6's option table).
type ParserOptions struct {
	// Strict, when true, disables every lenient extension: comments,
	// trailing commas, a leading '+', ".5"-style numbers, and raw
	// control characters inside strings. Defaults to false (lenient).
	Strict bool

	// UseDecimals, when true, emits DecimalValue (backed by
	// shopspring/decimal) in place of DoubleValue for any non-integer
	// numeric literal, and for integer literals that overflow int64.
	UseDecimals bool

	// DuplicateKeys selects the object-construction policy for repeated
	// keys. Zero value is KeepLastDuplicateKey.
	DuplicateKeys DuplicateKeyPolicy

	// Streaming allows multiple top-level values separated by
	// whitespace; the caller pulls them one at a time via Decoder.Decode.
	Streaming bool

	// MaxDepth bounds container nesting. Zero or negative means "use the
	// default of 64" (spec §4.2).
	MaxDepth int
}

// DefaultMaxDepth is spec §4.2's default nesting bound.
const DefaultMaxDepth = 64

func (o ParserOptions) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o ParserOptions) allowComments() bool { return !o.Strict }

type frameKind int8

const (
	frameArray frameKind = iota
	frameObject
)

type containerState int8

const (
	stateExpectFirstElement containerState = iota // just opened; '}'/']' or a value/key
	stateExpectValue                               // after a comma
	stateExpectCommaOrEnd
	stateExpectColon
	stateExpectKeyAfterColon
)

type frame struct {
	kind  frameKind
	state containerState
}

// Parser is a pull iterator over a character source: each call to Next
// advances the parser by exactly one structural event or a terminal
// error. The caller controls advancement; there is no suspension point
// inside the parser (spec §5).
type Parser struct {
	s        *scanner
	opts     ParserOptions
	stack    []frame
	started  bool
	finished bool
}

// NewParser returns a Parser that pulls code points from src.
func NewParser(src *RuneSource, opts ParserOptions) *Parser {
	return &Parser{s: newScanner(src), opts: opts}
}

// NewParserFromBytes sniffs buf's encoding (spec §4.1) and returns a
// Parser over its decoded code points.
func NewParserFromBytes(buf []byte, opts ParserOptions) *Parser {
	return NewParser(NewRuneSource(buf), opts)
}

func (p *Parser) top() *frame {
	if len(p.stack) == 0 {
		return nil
	}
	return &p.stack[len(p.stack)-1]
}

func (p *Parser) push(k frameKind) error {
	if len(p.stack)+1 > p.opts.maxDepth() {
		line, col := p.s.position()
		return newParseError(ErrExceededDepthLimit, line, col, "")
	}
	p.stack = append(p.stack, frame{kind: k, state: stateExpectFirstElement})
	return nil
}

func (p *Parser) pop() {
	p.stack = p.stack[:len(p.stack)-1]
}

// Next advances the parser and returns the next structural event. Once
// the (single, unless Streaming) top-level value has been fully read,
// Next returns an EndOfInput event; calling Next again after that is an
// error.
func (p *Parser) Next() (Event, error) {
	if p.finished {
		line, col := p.s.position()
		return Event{}, newParseError(ErrTrailingData, line, col, "parser already finished")
	}

	top := p.top()
	if top == nil {
		if p.started && !p.opts.Streaming {
			return p.finishWithTrailingCheck()
		}
		return p.readTopLevelValue()
	}

	switch top.kind {
	case frameArray:
		return p.stepArray(top)
	case frameObject:
		return p.stepObject(top)
	}
	panic("unreachable")
}

// readTopLevelValue reads one top-level value (scalar, array, or
// object), or EndOfInput if nothing but whitespace/EOF remains (relevant
// in Streaming mode, and to terminate a fully-scalar input).
func (p *Parser) readTopLevelValue() (Event, error) {
	if err := p.s.skipWhitespaceAndComments(p.opts.allowComments()); err != nil {
		return Event{}, err
	}
	_, ok := p.s.peek()
	if !ok {
		if !p.started {
			line, col := p.s.position()
			return Event{}, newParseError(ErrUnexpectedEOF, line, col, "empty input")
		}
		p.finished = true
		return Event{Type: EndOfInput}, nil
	}
	p.started = true
	return p.scanValue()
}

// finishWithTrailingCheck is invoked once the single top-level value has
// been fully produced; it enforces the "at most one top-level value"
// rule (spec §4.3) and returns EndOfInput once only whitespace remains.
func (p *Parser) finishWithTrailingCheck() (Event, error) {
	if err := p.s.skipWhitespaceAndComments(p.opts.allowComments()); err != nil {
		return Event{}, err
	}
	if _, ok := p.s.peek(); ok {
		line, col := p.s.position()
		return Event{}, newParseError(ErrTrailingData, line, col, "")
	}
	p.finished = true
	return Event{Type: EndOfInput}, nil
}

// scanValue dispatches on the current lookahead rune to read exactly one
// JSON value, pushing a container frame for '{'/'[' or returning a
// scalar event directly.
func (p *Parser) scanValue() (Event, error) {
	line, col := p.s.position()
	r, ok := p.s.peek()
	if !ok {
		return Event{}, newParseError(ErrUnexpectedEOF, line, col, "expected value")
	}

	switch {
	case r == '{':
		p.s.advance()
		if err := p.push(frameObject); err != nil {
			return Event{}, err
		}
		return Event{Type: ObjectStart, Line: line, Column: col}, nil
	case r == '[':
		p.s.advance()
		if err := p.push(frameArray); err != nil {
			return Event{}, err
		}
		return Event{Type: ArrayStart, Line: line, Column: col}, nil
	case r == '"':
		s, err := p.s.scanString(p.opts.Strict)
		if err != nil {
			return Event{}, err
		}
		return Event{Type: StringValue, Str: s, Line: line, Column: col}, nil
	case r == 't':
		if err := p.s.scanLiteral("true"); err != nil {
			return Event{}, err
		}
		return Event{Type: BooleanValue, Bool: true, Line: line, Column: col}, nil
	case r == 'f':
		if err := p.s.scanLiteral("false"); err != nil {
			return Event{}, err
		}
		return Event{Type: BooleanValue, Bool: false, Line: line, Column: col}, nil
	case r == 'n':
		if err := p.s.scanLiteral("null"); err != nil {
			return Event{}, err
		}
		return Event{Type: NullValue, Line: line, Column: col}, nil
	case r == '-' || (r >= '0' && r <= '9'):
		return p.scanNumberEvent(line, col)
	case r == '+' && !p.opts.Strict:
		return p.scanNumberEvent(line, col)
	case r == '.' && !p.opts.Strict:
		return p.scanNumberEvent(line, col)
	default:
		return Event{}, newUnexpectedCharErr(line, col, r)
	}
}

func (p *Parser) scanNumberEvent(line, col int) (Event, error) {
	tok, err := p.s.scanNumber(p.opts)
	if err != nil {
		return Event{}, err
	}
	switch tok.kind {
	case KindInt64:
		return Event{Type: Int64Value, Int64: tok.int64v, Line: line, Column: col}, nil
	case KindDouble:
		return Event{Type: DoubleValue, Double: tok.doublev, Line: line, Column: col}, nil
	case KindDecimal:
		return Event{Type: DecimalEvent, Decimal: tok.decv, Line: line, Column: col}, nil
	}
	panic("unreachable")
}

func (p *Parser) stepArray(top *frame) (Event, error) {
	if err := p.s.skipWhitespaceAndComments(p.opts.allowComments()); err != nil {
		return Event{}, err
	}
	line, col := p.s.position()
	r, ok := p.s.peek()

	switch top.state {
	case stateExpectFirstElement:
		if ok && r == ']' {
			p.s.advance()
			p.pop()
			return Event{Type: ArrayEnd, Line: line, Column: col}, nil
		}
		if !ok {
			return Event{}, newParseError(ErrUnexpectedEOF, line, col, "expected value or ']'")
		}
		top.state = stateExpectCommaOrEnd
		return p.scanValue()
	case stateExpectValue:
		if ok && r == ']' {
			if p.opts.Strict {
				return Event{}, newUnexpectedCharErr(line, col, ']')
			}
			p.s.advance()
			p.pop()
			return Event{Type: ArrayEnd, Line: line, Column: col}, nil
		}
		if !ok {
			return Event{}, newParseError(ErrUnexpectedEOF, line, col, "expected value")
		}
		top.state = stateExpectCommaOrEnd
		return p.scanValue()
	case stateExpectCommaOrEnd:
		if !ok {
			return Event{}, newParseError(ErrUnexpectedEOF, line, col, "expected ',' or ']'")
		}
		if r == ']' {
			p.s.advance()
			p.pop()
			return Event{Type: ArrayEnd, Line: line, Column: col}, nil
		}
		if r != ',' {
			return Event{}, newUnexpectedCharErr(line, col, r)
		}
		p.s.advance()
		top.state = stateExpectValue
		return p.stepArray(top)
	}
	panic("unreachable")
}

func (p *Parser) stepObject(top *frame) (Event, error) {
	if err := p.s.skipWhitespaceAndComments(p.opts.allowComments()); err != nil {
		return Event{}, err
	}
	line, col := p.s.position()
	r, ok := p.s.peek()

	switch top.state {
	case stateExpectFirstElement:
		if ok && r == '}' {
			p.s.advance()
			p.pop()
			return Event{Type: ObjectEnd, Line: line, Column: col}, nil
		}
		if !ok || r != '"' {
			if !ok {
				return Event{}, newParseError(ErrUnexpectedEOF, line, col, "expected key or '}'")
			}
			return Event{}, newUnexpectedCharErr(line, col, r)
		}
		key, err := p.s.scanString(p.opts.Strict)
		if err != nil {
			return Event{}, err
		}
		top.state = stateExpectColon
		return Event{Type: StringValue, Str: key, Line: line, Column: col}, nil
	case stateExpectKeyAfterColon:
		if ok && r == '}' {
			if p.opts.Strict {
				return Event{}, newUnexpectedCharErr(line, col, '}')
			}
			p.s.advance()
			p.pop()
			return Event{Type: ObjectEnd, Line: line, Column: col}, nil
		}
		if !ok || r != '"' {
			if !ok {
				return Event{}, newParseError(ErrUnexpectedEOF, line, col, "expected key")
			}
			return Event{}, newUnexpectedCharErr(line, col, r)
		}
		key, err := p.s.scanString(p.opts.Strict)
		if err != nil {
			return Event{}, err
		}
		top.state = stateExpectColon
		return Event{Type: StringValue, Str: key, Line: line, Column: col}, nil
	case stateExpectColon:
		if !ok {
			return Event{}, newParseError(ErrUnexpectedEOF, line, col, "expected ':'")
		}
		if r != ':' {
			return Event{}, newUnexpectedCharErr(line, col, r)
		}
		p.s.advance()
		top.state = stateExpectCommaOrEnd
		if err := p.s.skipWhitespaceAndComments(p.opts.allowComments()); err != nil {
			return Event{}, err
		}
		return p.scanValue()
	case stateExpectCommaOrEnd:
		if !ok {
			return Event{}, newParseError(ErrUnexpectedEOF, line, col, "expected ',' or '}'")
		}
		if r == '}' {
			p.s.advance()
			p.pop()
			return Event{Type: ObjectEnd, Line: line, Column: col}, nil
		}
		if r != ',' {
			return Event{}, newUnexpectedCharErr(line, col, r)
		}
		p.s.advance()
		top.state = stateExpectKeyAfterColon
		return p.stepObject(top)
	}
	panic("unreachable")
}
