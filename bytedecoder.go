package json

import (
	"encoding/binary"
	"unicode/utf16"
	"unicode/utf8"
)

// Encoding identifies the byte-level transcoding selected for an input
// buffer.
type Encoding int8

// Supported encodings.
const (
	EncodingUTF8 Encoding = iota
	EncodingUTF16BE
	EncodingUTF16LE
	EncodingUTF32BE
	EncodingUTF32LE
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "utf-8"
	case EncodingUTF16BE:
		return "utf-16be"
	case EncodingUTF16LE:
		return "utf-16le"
	case EncodingUTF32BE:
		return "utf-32be"
	case EncodingUTF32LE:
		return "utf-32le"
	default:
		return "<unknown>"
	}
}

// replacementChar is emitted in place of any byte sequence the decoder
// cannot interpret, per spec §4.1: "invalid byte sequences emit U+FFFD
// rather than aborting."
const replacementChar = '�'

// DetectEncoding sniffs buf for a byte-order mark, falling back to the
// BOM-less heuristic of spec §4.1 (JSON's first character is always
// ASCII, so a run of NUL bytes locates the absent high bytes of a wide
// encoding). Returns the detected encoding and the number of leading BOM
// bytes to skip (0 if none was present).
func DetectEncoding(buf []byte) (Encoding, int) {
	switch {
	case len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF:
		return EncodingUTF32BE, 4
	case len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00:
		return EncodingUTF32LE, 4
	case len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF:
		return EncodingUTF16BE, 2
	case len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE:
		return EncodingUTF16LE, 2
	case len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF:
		return EncodingUTF8, 3
	}

	// Heuristic (no BOM): JSON's first character is always ASCII, so a
	// wide encoding shows up as NUL-padding around that first byte.
	if len(buf) >= 4 {
		switch {
		case buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0x00 && buf[3] != 0x00:
			return EncodingUTF32BE, 0
		case buf[0] != 0x00 && buf[1] == 0x00 && buf[2] == 0x00 && buf[3] == 0x00:
			return EncodingUTF32LE, 0
		case buf[0] == 0x00 && buf[1] != 0x00 && buf[2] == 0x00 && buf[3] != 0x00:
			return EncodingUTF16BE, 0
		case buf[0] != 0x00 && buf[1] == 0x00 && buf[2] != 0x00 && buf[3] == 0x00:
			return EncodingUTF16LE, 0
		}
	}
	if len(buf) >= 2 {
		switch {
		case buf[0] == 0x00 && buf[1] != 0x00:
			return EncodingUTF16BE, 0
		case buf[0] != 0x00 && buf[1] == 0x00:
			return EncodingUTF16LE, 0
		}
	}
	return EncodingUTF8, 0
}

// RuneSource is a lazy, pull-based sequence of Unicode scalars produced
// by the byte decoder. The parser advances it one code point at a time
// and never requires the full sequence to be materialized.
type RuneSource struct {
	buf      []byte
	pos      int
	encoding Encoding
	done     bool
}

// NewRuneSource sniffs buf's encoding, skips any BOM, and returns a
// RuneSource ready to decode the remainder. The RuneSource holds a
// read-only reference to buf; it never copies it (spec §4.1: "zero-copy
// over the input buffer").
func NewRuneSource(buf []byte) *RuneSource {
	enc, skip := DetectEncoding(buf)
	return &RuneSource{buf: buf, pos: skip, encoding: enc}
}

// Encoding reports the encoding detected at construction time.
func (r *RuneSource) Encoding() Encoding { return r.encoding }

// Next returns the next code point, or ok=false once the input is
// exhausted. A malformed code unit at end-of-input yields exactly one
// U+FFFD and then Next reports exhaustion on the following call.
func (r *RuneSource) Next() (rune, bool) {
	if r.done || r.pos >= len(r.buf) {
		r.done = true
		return 0, false
	}
	switch r.encoding {
	case EncodingUTF8:
		return r.nextUTF8()
	case EncodingUTF16BE:
		return r.nextUTF16(binary.BigEndian)
	case EncodingUTF16LE:
		return r.nextUTF16(binary.LittleEndian)
	case EncodingUTF32BE:
		return r.nextUTF32(binary.BigEndian)
	case EncodingUTF32LE:
		return r.nextUTF32(binary.LittleEndian)
	default:
		r.done = true
		return 0, false
	}
}

func (r *RuneSource) nextUTF8() (rune, bool) {
	remaining := r.buf[r.pos:]
	ch, size := utf8.DecodeRune(remaining)
	if ch == utf8.RuneError {
		if size <= 1 {
			// Either a genuinely invalid byte, or a truncated trailing
			// sequence at EOF; both consume one byte and emit U+FFFD.
			r.pos++
			return replacementChar, true
		}
	}
	r.pos += size
	return ch, true
}

func (r *RuneSource) nextUTF16(order binary.ByteOrder) (rune, bool) {
	if r.pos+2 > len(r.buf) {
		r.pos = len(r.buf)
		return replacementChar, true
	}
	u1 := order.Uint16(r.buf[r.pos:])
	r.pos += 2

	if !utf16.IsSurrogate(rune(u1)) {
		return rune(u1), true
	}
	// High surrogate: need a following low surrogate to combine.
	if r.pos+2 > len(r.buf) {
		r.pos = len(r.buf)
		return replacementChar, true
	}
	u2 := order.Uint16(r.buf[r.pos:])
	combined := utf16.DecodeRune(rune(u1), rune(u2))
	if combined == utf8.RuneError {
		// Unpaired surrogate: do not consume the second unit, it may be
		// a valid standalone code point on the next call.
		return replacementChar, true
	}
	r.pos += 2
	return combined, true
}

func (r *RuneSource) nextUTF32(order binary.ByteOrder) (rune, bool) {
	if r.pos+4 > len(r.buf) {
		r.pos = len(r.buf)
		return replacementChar, true
	}
	v := order.Uint32(r.buf[r.pos:])
	r.pos += 4
	ch := rune(v)
	if ch < 0 || ch > utf8.MaxRune || (ch >= 0xD800 && ch <= 0xDFFF) {
		return replacementChar, true
	}
	return ch, true
}
