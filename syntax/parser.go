// Copyright (c) 2023, Taylor C. Richberger <taywee@gmx.com>
// See LICENSE for licensing information

package syntax

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// UnterminatedBrace is an opening brace with no matching close.
	UnterminatedBrace ErrorKind = iota
	// UnmatchedBrace is a stray unescaped closing brace.
	UnmatchedBrace
	// BadSequenceBounds is a sequence whose bounds mix an integer
	// with something that cannot stand as a single character.
	BadSequenceBounds
	// IntegerOutOfRange is an integer literal too large for its type.
	IntegerOutOfRange
	// BadStride is an empty, signed, or non-numeric stride.
	BadStride
	// BadFormatFlag is a `=` flag applied to a character sequence.
	BadFormatFlag
	// BadEscape is a trailing backslash with nothing to escape.
	BadEscape
)

// ParseError explains why a pattern was rejected. Offset is the byte
// offset of the offending character within the pattern.
type ParseError struct {
	Offset int
	Kind   ErrorKind
	Text   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d: %s", e.Offset, e.Text)
}

// Parse reads a whole brace pattern into a tree. It either returns a
// tree covering the entire input or a *ParseError; there is no partial
// result, and no output can be produced from a malformed pattern.
func Parse(src string) (*Expr, error) {
	p := parser{src: src}
	return p.expr(topLevel)
}

// context selects which characters terminate the current expression.
type context uint8

const (
	topLevel context = iota
	listElem // between `{` or `,` and the next `,` or `}`
)

type parser struct {
	src string
	pos int
}

func (p *parser) posErr(offset int, kind ErrorKind, format string, a ...any) error {
	return &ParseError{Offset: offset, Kind: kind, Text: fmt.Sprintf(format, a...)}
}

// expr reads parts until the end of the input or, within a list
// element, until an unescaped `,` or `}`, which is left for the
// caller.
func (p *parser) expr(ctx context) (*Expr, error) {
	x := &Expr{}
	litStart := p.pos
	var lit []byte
	flush := func() {
		if len(lit) > 0 {
			x.Parts = append(x.Parts, &Lit{
				ValuePos: Pos(litStart),
				ValueEnd: Pos(p.pos),
				Value:    string(lit),
			})
			lit = lit[:0]
		}
	}
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; c {
		case '\\':
			r, err := p.escape()
			if err != nil {
				return nil, err
			}
			lit = utf8.AppendRune(lit, r)
		case '{':
			flush()
			part, err := p.brace()
			if err != nil {
				return nil, err
			}
			x.Parts = append(x.Parts, part)
			litStart = p.pos
		case '}':
			if ctx == listElem {
				flush()
				return x, nil
			}
			return nil, p.posErr(p.pos, UnmatchedBrace, "unmatched %q", "}")
		case ',':
			if ctx == listElem {
				flush()
				return x, nil
			}
			lit = append(lit, c)
			p.pos++
		default:
			lit = append(lit, c)
			p.pos++
		}
	}
	flush()
	return x, nil
}

// escape consumes a backslash and the character it escapes, which may
// be any character at all; redundant escapes are accepted.
func (p *parser) escape() (rune, error) {
	start := p.pos
	p.pos++
	if p.pos >= len(p.src) {
		return 0, p.posErr(start, BadEscape, "trailing backslash")
	}
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
	return r, nil
}

// brace reads a full brace part with the opening brace at p.pos. A
// sequence is attempted first; if the content does not have the shape
// of a sequence, the brace is re-read as a list.
func (p *parser) brace() (Part, error) {
	lbrace := p.pos
	p.pos++
	part, matched, err := p.seq(lbrace)
	if matched || err != nil {
		return part, err
	}
	p.pos = lbrace + 1
	return p.list(lbrace)
}

// list reads the remainder of `{` Expr (`,` Expr)* `}`.
func (p *parser) list(lbrace int) (Part, error) {
	list := &List{Lbrace: Pos(lbrace)}
	for {
		elem, err := p.expr(listElem)
		if err != nil {
			return nil, err
		}
		list.Elems = append(list.Elems, elem)
		if p.pos >= len(p.src) {
			return nil, p.posErr(lbrace, UnterminatedBrace, "unterminated %q", "{")
		}
		if p.src[p.pos] == '}' {
			list.Rbrace = Pos(p.pos)
			p.pos++
			return list, nil
		}
		p.pos++ // ','
	}
}

// bound holds one side of a `..` range while the sequence type is
// still undecided.
type bound struct {
	pos    int
	text   string // token as written, digit runs only
	num    int64
	isNum  bool // unescaped signed digit run within int64
	numBig bool // digit run too large for int64
	ch     rune
	isCh   bool // resolvable to exactly one scalar value
}

// seq attempts to read the remainder of a sequence after the opening
// brace. matched reports whether the content had the sequence shape
// `=`? Bound `..` Bound (`..` Stride)? `}`; when it does not, p.pos is
// unchanged from the caller's point of view and the brace should be
// read as a list instead. Once the shape matches, any semantic
// problem is a fatal error rather than a fallback.
func (p *parser) seq(lbrace int) (part Part, matched bool, err error) {
	reset := p.pos
	flag := false
	if p.pos < len(p.src) && p.src[p.pos] == '=' {
		flag = true
		p.pos++
	}
	from, ok, err := p.seqBound()
	if err != nil {
		return nil, true, err
	}
	if !ok || !p.skipDots() {
		p.pos = reset
		return nil, false, nil
	}
	to, ok, err := p.seqBound()
	if err != nil {
		return nil, true, err
	}
	if !ok {
		p.pos = reset
		return nil, false, nil
	}
	stride := uint64(1)
	if p.skipDots() {
		// committed to a sequence from here on
		stride, err = p.stride(lbrace)
		if err != nil {
			return nil, true, err
		}
	} else if p.pos >= len(p.src) || p.src[p.pos] != '}' {
		p.pos = reset
		return nil, false, nil
	}
	rbrace := p.pos
	p.pos++

	// Numeric only if both bounds were written as unescaped integer
	// tokens; otherwise each side must stand as a single character.
	if from.isNum && to.isNum {
		width := 0
		if flag {
			width = max(len(from.text), len(to.text))
		}
		return &NumSeq{
			Lbrace: Pos(lbrace), Rbrace: Pos(rbrace),
			From: from.num, To: to.num,
			Stride: stride, Width: width,
		}, true, nil
	}
	if from.isCh && to.isCh {
		if flag {
			return nil, true, p.posErr(lbrace+1, BadFormatFlag,
				"format flag on a character sequence")
		}
		return &CharSeq{
			Lbrace: Pos(lbrace), Rbrace: Pos(rbrace),
			From: from.ch, To: to.ch,
			Stride: stride,
		}, true, nil
	}
	for _, b := range []bound{from, to} {
		if b.numBig {
			return nil, true, p.posErr(b.pos, IntegerOutOfRange,
				"integer %s out of signed 64-bit range", b.text)
		}
	}
	b := from
	if b.isCh {
		b = to
	}
	return nil, true, p.posErr(b.pos, BadSequenceBounds,
		"bound %q is neither an integer nor a single character", b.text)
}

// seqBound reads one range bound: a signed decimal digit run, or a
// single possibly escaped character. ok is false when the next
// character cannot begin a bound at all.
func (p *parser) seqBound() (b bound, ok bool, err error) {
	b.pos = p.pos
	if p.pos >= len(p.src) {
		return b, false, nil
	}
	switch p.src[p.pos] {
	case '{', '}', ',', '.':
		return b, false, nil
	case '\\':
		r, err := p.escape()
		if err != nil {
			return b, false, err
		}
		b.ch, b.isCh = r, true
		return b, true, nil
	}
	start := p.pos
	if c := p.src[p.pos]; c == '+' || c == '-' {
		p.pos++
	}
	digits := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos > digits {
		b.text = p.src[start:p.pos]
		if n, err := strconv.ParseInt(b.text, 10, 64); err == nil {
			b.num, b.isNum = n, true
		} else {
			b.numBig = true
		}
		if p.pos-start == 1 {
			// a lone digit can still resolve as a character
			b.ch, b.isCh = rune(p.src[start]), true
		}
		return b, true, nil
	}
	p.pos = start
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
	b.ch, b.isCh = r, true
	return b, true, nil
}

// skipDots consumes a literal `..` separator if present.
func (p *parser) skipDots() bool {
	if p.pos+1 < len(p.src) && p.src[p.pos] == '.' && p.src[p.pos+1] == '.' {
		p.pos += 2
		return true
	}
	return false
}

// stride reads the text between the second `..` and the closing brace
// as a non-negative decimal integer, normalizing zero to one.
func (p *parser) stride(lbrace int) (uint64, error) {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != '}' {
		p.pos++
	}
	if p.pos >= len(p.src) {
		return 0, p.posErr(lbrace, UnterminatedBrace, "unterminated %q", "{")
	}
	text := p.src[start:p.pos]
	if text == "" {
		return 0, p.posErr(start, BadStride, "empty stride")
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return 0, p.posErr(start, BadStride,
				"stride %q must be a non-negative integer", text)
		}
	}
	n, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, p.posErr(start, IntegerOutOfRange,
			"stride %s out of unsigned 64-bit range", text)
	}
	if n == 0 {
		n = 1
	}
	return n, nil
}
