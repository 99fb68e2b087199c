package json

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/shopspring/decimal"
)

// lookaheadRune is one entry of the scanner's pending-rune queue.
type lookaheadRune struct {
	r  rune
	ok bool
}

// scanner wraps a RuneSource with a small multi-rune lookahead queue and
// line/column tracking. The queue (rather than a single saved rune) lets
// the string scanner peek several code points ahead — e.g. to check
// whether a `\uD800` escape is followed by a matching low-surrogate
// `\uDC00` escape — without destructively consuming them if the lookahead
// doesn't pan out, since RuneSource itself is pull-only and cannot be
// rewound.
type scanner struct {
	src     *RuneSource
	pending []lookaheadRune
	line    int
	col     int
}

func newScanner(src *RuneSource) *scanner {
	return &scanner{src: src, line: 1, col: 0}
}

// fill ensures at least n+1 runes are buffered in pending.
func (s *scanner) fill(n int) {
	for len(s.pending) <= n {
		r, ok := s.src.Next()
		s.pending = append(s.pending, lookaheadRune{r: r, ok: ok})
		if !ok {
			break
		}
	}
}

// peek returns the current lookahead rune without consuming it.
func (s *scanner) peek() (rune, bool) {
	return s.peekAt(0)
}

// peekAt returns the rune n positions ahead of the current position
// (0 = current) without consuming anything.
func (s *scanner) peekAt(n int) (rune, bool) {
	s.fill(n)
	if n >= len(s.pending) {
		return 0, false
	}
	return s.pending[n].r, s.pending[n].ok
}

// advance consumes the current lookahead rune and updates line/column to
// refer to the rune that becomes current next.
func (s *scanner) advance() {
	s.fill(0)
	if len(s.pending) == 0 || !s.pending[0].ok {
		return
	}
	if s.pending[0].r == '\n' {
		s.line++
		s.col = 0
	} else {
		s.col++
	}
	s.pending = s.pending[1:]
}

// position returns the 1-based line/column of the current lookahead
// rune (the position that will be reported if an error occurs here).
func (s *scanner) position() (line, col int) {
	s.fill(0)
	c := s.col + 1
	if c < 1 {
		c = 1
	}
	return s.line, c
}

func isJSONWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// skipWhitespaceAndComments advances past JSON whitespace, and, when
// comments are allowed, past "//…" and "/*…*/" comments. When comments
// are not allowed it stops at a '/' and leaves the caller to reject it.
// Reports a *ParseError for a '/' that starts no comment, or for an
// unterminated block comment.
func (s *scanner) skipWhitespaceAndComments(allowComments bool) error {
	for {
		r, ok := s.peek()
		if !ok {
			return nil
		}
		if isJSONWhitespace(r) {
			s.advance()
			continue
		}
		if r == '/' {
			if !allowComments {
				return nil // caller will reject '/' as an unexpected character
			}
			line, col := s.position()
			s.advance()
			r2, ok2 := s.peek()
			switch {
			case ok2 && r2 == '/':
				s.advance()
				for {
					rr, okk := s.peek()
					if !okk || rr == '\n' {
						break
					}
					s.advance()
				}
			case ok2 && r2 == '*':
				s.advance()
				closed := false
				for {
					rr, okk := s.peek()
					if !okk {
						break
					}
					if rr == '*' {
						s.advance()
						rr2, okk2 := s.peek()
						if okk2 && rr2 == '/' {
							s.advance()
							closed = true
							break
						}
						continue
					}
					s.advance()
				}
				if !closed {
					return newParseError(ErrUnexpectedEOF, line, col, "unterminated block comment")
				}
			default:
				return newUnexpectedCharErr(line, col, '/')
			}
			continue
		}
		return nil
	}
}

// scanString consumes a leading '"' (already confirmed by the caller via
// peek) through its closing '"', processing escapes per spec §4.2.
// strict selects whether raw control characters (<U+0020) are rejected.
func (s *scanner) scanString(strict bool) (string, error) {
	startLine, startCol := s.position()
	s.advance() // consume opening quote

	var b strings.Builder
	for {
		r, ok := s.peek()
		if !ok {
			return "", newParseError(ErrUnexpectedEOF, startLine, startCol, "unterminated string")
		}
		if r == '"' {
			s.advance()
			return b.String(), nil
		}
		if r < 0x20 {
			if strict {
				line, col := s.position()
				return "", newParseError(ErrControlCharacterInString, line, col, "control character in string")
			}
			b.WriteRune(r)
			s.advance()
			continue
		}
		if r != '\\' {
			b.WriteRune(r)
			s.advance()
			continue
		}

		// Escape sequence.
		escLine, escCol := s.position()
		s.advance() // consume backslash
		er, ok := s.peek()
		if !ok {
			return "", newParseError(ErrUnexpectedEOF, escLine, escCol, "unterminated escape")
		}
		switch er {
		case '"', '\\', '/':
			b.WriteRune(er)
			s.advance()
		case 'b':
			b.WriteRune('\b')
			s.advance()
		case 'f':
			b.WriteRune('\f')
			s.advance()
		case 'n':
			b.WriteRune('\n')
			s.advance()
		case 'r':
			b.WriteRune('\r')
			s.advance()
		case 't':
			b.WriteRune('\t')
			s.advance()
		case 'u':
			s.advance()
			first, err := s.scanHex4(escLine, escCol)
			if err != nil {
				return "", err
			}
			if utf16.IsSurrogate(rune(first)) && first < 0xDC00 {
				// High surrogate: look for a following \uYYYY low surrogate,
				// using pure lookahead so a mismatch leaves the input
				// untouched for normal escape processing on the next loop.
				if second, ok := s.peekLowSurrogateEscape(); ok {
					combined := utf16.DecodeRune(rune(first), rune(second))
					if combined != 0xFFFD {
						for i := 0; i < 6; i++ {
							s.advance() // consume '\', 'u', and the 4 hex digits
						}
						b.WriteRune(combined)
						continue
					}
				}
				if strict {
					return "", newParseError(ErrInvalidUnicodeScalar, escLine, escCol, "unpaired surrogate")
				}
				b.WriteRune(replacementChar)
				continue
			}
			if utf16.IsSurrogate(rune(first)) {
				if strict {
					return "", newParseError(ErrInvalidUnicodeScalar, escLine, escCol, "unpaired surrogate")
				}
				b.WriteRune(replacementChar)
				continue
			}
			b.WriteRune(rune(first))
		default:
			if strict {
				return "", newParseError(ErrInvalidEscape, escLine, escCol, "invalid escape")
			}
			// Lenient: pass the escaped character through literally.
			b.WriteRune(er)
			s.advance()
		}
	}
}

// peekLowSurrogateEscape reports whether the upcoming input (without
// consuming it) is a `\uYYYY` escape whose YYYY is a valid low surrogate,
// returning its 16-bit value if so.
func (s *scanner) peekLowSurrogateEscape() (uint16, bool) {
	if r, ok := s.peekAt(0); !ok || r != '\\' {
		return 0, false
	}
	if r, ok := s.peekAt(1); !ok || r != 'u' {
		return 0, false
	}
	var v uint16
	for i := 0; i < 4; i++ {
		r, ok := s.peekAt(2 + i)
		if !ok {
			return 0, false
		}
		d, ok := hexDigit(r)
		if !ok {
			return 0, false
		}
		v = v<<4 | uint16(d)
	}
	if v < 0xDC00 || v > 0xDFFF {
		return 0, false
	}
	return v, true
}

// scanHex4 scans exactly 4 hex digits (the payload of a \uXXXX escape).
func (s *scanner) scanHex4(line, col int) (uint16, error) {
	var v uint16
	for i := 0; i < 4; i++ {
		r, ok := s.peek()
		if !ok {
			return 0, newParseError(ErrUnexpectedEOF, line, col, "truncated unicode escape")
		}
		d, ok := hexDigit(r)
		if !ok {
			return 0, newParseError(ErrInvalidEscape, line, col, "invalid unicode escape")
		}
		v = v<<4 | uint16(d)
		s.advance()
	}
	return v, nil
}

func hexDigit(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	}
	return 0, false
}

// numberToken is the result of scanning a JSON number literal: the raw
// text plus its classification, which scanNumber decides per the grammar
// of spec §4.2.
type numberToken struct {
	kind    Kind // KindInt64, KindDouble, or KindDecimal
	int64v  int64
	doublev float64
	decv    decimal.Decimal
}

// scanNumber consumes a number literal starting at the current lookahead
// rune (a digit, '-', '+', or '.') and classifies it.
func (s *scanner) scanNumber(opts ParserOptions) (numberToken, error) {
	line, col := s.position()
	var lit strings.Builder
	strict := opts.Strict

	readDigits := func() int {
		n := 0
		for {
			r, ok := s.peek()
			if !ok || r < '0' || r > '9' {
				break
			}
			lit.WriteRune(r)
			s.advance()
			n++
		}
		return n
	}

	if r, ok := s.peek(); ok && r == '+' {
		if strict {
			return numberToken{}, newUnexpectedCharErr(line, col, '+')
		}
		s.advance() // leading '+' is dropped; strconv doesn't accept it
	} else if ok && r == '-' {
		lit.WriteByte('-')
		s.advance()
	}

	isInteger := true
	if r, ok := s.peek(); ok && r == '.' {
		if strict {
			return numberToken{}, newUnexpectedCharErr(line, col, '.')
		}
		lit.WriteByte('0')
	} else if ok && r == '0' {
		lit.WriteByte('0')
		s.advance()
	} else {
		n := readDigits()
		if n == 0 {
			return numberToken{}, newParseError(ErrInvalidNumber, line, col, "expected digit")
		}
	}

	if r, ok := s.peek(); ok && r == '.' {
		isInteger = false
		lit.WriteByte('.')
		s.advance()
		n := readDigits()
		if n == 0 {
			return numberToken{}, newParseError(ErrInvalidNumber, line, col, "expected digit after decimal point")
		}
	}

	if r, ok := s.peek(); ok && (r == 'e' || r == 'E') {
		isInteger = false
		lit.WriteByte('e')
		s.advance()
		if r2, ok2 := s.peek(); ok2 && (r2 == '+' || r2 == '-') {
			lit.WriteRune(r2)
			s.advance()
		}
		n := readDigits()
		if n == 0 {
			return numberToken{}, newParseError(ErrInvalidNumber, line, col, "expected digit in exponent")
		}
	}

	text := lit.String()

	if isInteger {
		if iv, err := strconv.ParseInt(text, 10, 64); err == nil {
			return numberToken{kind: KindInt64, int64v: iv}, nil
		}
		if opts.UseDecimals {
			d, derr := decimal.NewFromString(text)
			if derr != nil {
				return numberToken{}, newParseError(ErrInvalidNumber, line, col, derr.Error())
			}
			return numberToken{kind: KindDecimal, decv: d}, nil
		}
		dv, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return numberToken{}, newParseError(ErrInvalidNumber, line, col, err.Error())
		}
		return numberToken{kind: KindDouble, doublev: dv}, nil
	}

	if opts.UseDecimals {
		d, derr := decimal.NewFromString(text)
		if derr != nil {
			return numberToken{}, newParseError(ErrInvalidNumber, line, col, derr.Error())
		}
		return numberToken{kind: KindDecimal, decv: d}, nil
	}
	dv, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return numberToken{}, newParseError(ErrInvalidNumber, line, col, err.Error())
	}
	return numberToken{kind: KindDouble, doublev: dv}, nil
}

// scanLiteral consumes and matches one of "true", "false", "null" (the
// caller has already peeked the first character to route here).
func (s *scanner) scanLiteral(word string) error {
	line, col := s.position()
	for _, want := range word {
		r, ok := s.peek()
		if !ok || r != want {
			return newParseError(ErrUnexpectedEOF, line, col, "invalid literal, expected "+word)
		}
		s.advance()
	}
	return nil
}
