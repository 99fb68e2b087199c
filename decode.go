package json

import (
	"io"
	"strconv"
)

// Decoder assembles a Parser's event stream into JSON values (spec §4.3).
// With ParserOptions.Streaming set, successive calls to Decode pull
// successive whitespace-separated top-level values; otherwise Decode
// enforces the "at most one top-level value" rule and returns io.EOF on
// a second call.
type Decoder struct {
	p    *Parser
	opts ParserOptions
	done bool
}

// NewDecoder returns a Decoder pulling code points from src.
func NewDecoder(src *RuneSource, opts ParserOptions) *Decoder {
	return &Decoder{p: NewParser(src, opts), opts: opts}
}

// buildFrame is one level of the assembler's container stack, tracking
// the in-progress Object/Array and, for an object, whether the next
// value event is a key (haveKey == false, expecting a StringValue key
// event) or a value for the last-seen key.
type buildFrame struct {
	kind    frameKind
	obj     *Object
	arr     *Array
	haveKey bool
	key     string
	keyLine int
	keyCol  int
}

// Decode reads and assembles the next top-level value. It returns
// io.EOF once there is nothing left to decode (immediately, on a
// non-streaming Decoder that already produced its one value; after
// whitespace/comments exhaust the input, on a streaming one).
func (d *Decoder) Decode() (JSON, error) {
	if d.done {
		return JSON{}, io.EOF
	}

	var stack []buildFrame
	var result JSON
	resultSet := false

	attach := func(v JSON) error {
		if len(stack) == 0 {
			result = v
			resultSet = true
			return nil
		}
		top := &stack[len(stack)-1]
		switch top.kind {
		case frameArray:
			top.arr.Append(v)
		case frameObject:
			if top.obj.Has(top.key) && d.opts.DuplicateKeys == ErrorOnDuplicateKey {
				return newParseError(ErrDuplicateKey, top.keyLine, top.keyCol, "duplicate key "+strconv.Quote(top.key))
			}
			top.obj.Set(top.key, v)
			top.haveKey = false
		}
		return nil
	}

	for {
		ev, err := d.p.Next()
		if err != nil {
			return JSON{}, err
		}

		switch ev.Type {
		case EndOfInput:
			if len(stack) != 0 || resultSet {
				// The parser only emits EndOfInput at depth 0 after a
				// complete (or absent) top-level value; reaching it
				// mid-structure would be a parser bug, not user input.
				return JSON{}, newParseError(ErrTrailingData, ev.Line, ev.Column, "unexpected end of input")
			}
			d.done = true
			return JSON{}, io.EOF

		case ObjectStart:
			stack = append(stack, buildFrame{kind: frameObject, obj: NewObject()})

		case ArrayStart:
			stack = append(stack, buildFrame{kind: frameArray, arr: NewArray()})

		case ObjectEnd:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if err := attach(FromObject(top.obj)); err != nil {
				return JSON{}, err
			}

		case ArrayEnd:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if err := attach(FromArray(top.arr)); err != nil {
				return JSON{}, err
			}

		case StringValue:
			if n := len(stack); n > 0 && stack[n-1].kind == frameObject && !stack[n-1].haveKey {
				stack[n-1].haveKey = true
				stack[n-1].key = ev.Str
				stack[n-1].keyLine = ev.Line
				stack[n-1].keyCol = ev.Column
				continue
			}
			if err := attach(String(ev.Str)); err != nil {
				return JSON{}, err
			}

		case BooleanValue:
			if err := attach(Bool(ev.Bool)); err != nil {
				return JSON{}, err
			}
		case NullValue:
			if err := attach(Null); err != nil {
				return JSON{}, err
			}
		case Int64Value:
			if err := attach(Int64(ev.Int64)); err != nil {
				return JSON{}, err
			}
		case DoubleValue:
			if err := attach(Double(ev.Double)); err != nil {
				return JSON{}, err
			}
		case DecimalEvent:
			if err := attach(DecimalValue(ev.Decimal)); err != nil {
				return JSON{}, err
			}
		}

		if resultSet && len(stack) == 0 {
			if !d.opts.Streaming {
				// Enforce "at most one top-level value": the next pull
				// must see only whitespace/EOF, or trailingData.
				if _, err := d.p.Next(); err != nil {
					return JSON{}, err
				}
				d.done = true
			}
			return result, nil
		}
	}
}

// Parse decodes a single JSON value from buf, sniffing its byte encoding
// per spec §4.1. opts.Streaming is ignored (forced false): Parse always
// enforces the at-most-one-top-level-value rule.
func Parse(buf []byte, opts ParserOptions) (JSON, error) {
	opts.Streaming = false
	d := NewDecoder(NewRuneSource(buf), opts)
	return d.Decode()
}

// ParseString decodes a single JSON value from a UTF-8 string.
func ParseString(s string, opts ParserOptions) (JSON, error) {
	return Parse([]byte(s), opts)
}

// ParseReader reads r fully (the byte decoder requires random access for
// BOM sniffing, spec §9) and decodes a single JSON value.
func ParseReader(r io.Reader, opts ParserOptions) (JSON, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return JSON{}, err
	}
	return Parse(buf, opts)
}
