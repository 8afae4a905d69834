// Copyright (c) 2023, Taylor C. Richberger <taywee@gmx.com>
// See LICENSE for licensing information

// Package syntax turns brace pattern strings into syntax trees.
//
// The grammar resembles shell brace expansion: literal text, escapes,
// comma-separated alternative lists such as `{a,b,c}`, and numeric or
// character sequences such as `{1..10..2}` and `{a..f}`. Unlike a
// shell, malformed brace text is rejected instead of being passed
// through as literal text.
package syntax

import (
	"strconv"
	"strings"
)

// Pos is a byte offset within the pattern source.
type Pos int

// Node represents a syntax tree node.
type Node interface {
	// Pos returns the offset of the first character of the node.
	Pos() Pos
	// End returns the offset immediately after the node.
	End() Pos
}

// Expr is the concatenation of a number of parts. Expanding an Expr
// yields the cartesian product of its parts' expansions, with the
// rightmost part varying fastest. An Expr with no parts denotes the
// single empty string.
type Expr struct {
	Parts []Part
}

// A Part is a single piece of an Expr.
type Part interface {
	Node
	partNode()
}

func (*Lit) partNode()     {}
func (*List) partNode()    {}
func (*NumSeq) partNode()  {}
func (*CharSeq) partNode() {}

// Lit is a run of literal text with all escapes already resolved.
type Lit struct {
	ValuePos, ValueEnd Pos
	Value              string
}

func (l *Lit) Pos() Pos { return l.ValuePos }
func (l *Lit) End() Pos { return l.ValueEnd }

// List is a brace-delimited, comma-separated set of alternative
// expressions. It always holds at least one element; `{}` holds a
// single empty Expr, and N commas yield N+1 elements.
type List struct {
	Lbrace, Rbrace Pos
	Elems          []*Expr
}

func (l *List) Pos() Pos { return l.Lbrace }
func (l *List) End() Pos { return l.Rbrace + 1 }

// NumSeq is a numeric sequence such as `{-3..14..2}`. Stride is always
// at least one. Width is zero unless the `=` flag was present, in
// which case it records the character length of the longest bound
// token as written, sign included.
type NumSeq struct {
	Lbrace, Rbrace Pos
	From, To       int64
	Stride         uint64
	Width          int
}

func (s *NumSeq) Pos() Pos { return s.Lbrace }
func (s *NumSeq) End() Pos { return s.Rbrace + 1 }

// Format renders one value of the sequence in decimal, with zeros
// inserted between the sign and the digits until the digits reach
// Width characters.
func (s *NumSeq) Format(n int64) string {
	text := strconv.FormatInt(n, 10)
	sign := ""
	if text[0] == '-' {
		sign, text = "-", text[1:]
	}
	if pad := s.Width - len(text); pad > 0 {
		text = strings.Repeat("0", pad) + text
	}
	return sign + text
}

// bound renders a bound as it would be written in a pattern, padded so
// that the whole token, sign included, is Width characters long.
func (s *NumSeq) bound(n int64) string {
	text := strconv.FormatInt(n, 10)
	if pad := s.Width - len(text); pad > 0 {
		if text[0] == '-' {
			return "-" + strings.Repeat("0", pad) + text[1:]
		}
		return strings.Repeat("0", pad) + text
	}
	return text
}

// CharSeq is a character sequence such as `{a..f}` over unicode scalar
// values. From and To are always valid scalar values themselves, but
// stepping between them may land on surrogate codepoints; those are
// reported per position at expansion time.
type CharSeq struct {
	Lbrace, Rbrace Pos
	From, To       rune
	Stride         uint64
}

func (s *CharSeq) Pos() Pos { return s.Lbrace }
func (s *CharSeq) End() Pos { return s.Rbrace + 1 }

// characters that must be escaped in a rendered literal
const litSpecial = `\{},.`

// String renders the tree back into pattern text. The result is
// canonical rather than byte-identical to the source: redundant
// escapes are dropped, zero strides become one, and width padding is
// re-derived. Parsing the result yields a tree that expands to the
// same strings.
func (x *Expr) String() string {
	var sb strings.Builder
	x.render(&sb)
	return sb.String()
}

func (x *Expr) render(sb *strings.Builder) {
	for _, part := range x.Parts {
		renderPart(sb, part)
	}
}

func renderPart(sb *strings.Builder, part Part) {
	switch part := part.(type) {
	case *Lit:
		for _, r := range part.Value {
			if strings.ContainsRune(litSpecial, r) {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
		}
	case *List:
		sb.WriteByte('{')
		for i, elem := range part.Elems {
			if i > 0 {
				sb.WriteByte(',')
			}
			elem.render(sb)
		}
		sb.WriteByte('}')
	case *NumSeq:
		sb.WriteByte('{')
		if part.Width > 0 {
			sb.WriteByte('=')
		}
		sb.WriteString(part.bound(part.From))
		sb.WriteString("..")
		sb.WriteString(part.bound(part.To))
		if part.Stride > 1 {
			sb.WriteString("..")
			sb.WriteString(strconv.FormatUint(part.Stride, 10))
		}
		sb.WriteByte('}')
	case *CharSeq:
		sb.WriteByte('{')
		renderCharBound(sb, part.From)
		sb.WriteString("..")
		renderCharBound(sb, part.To)
		if part.Stride > 1 {
			sb.WriteString("..")
			sb.WriteString(strconv.FormatUint(part.Stride, 10))
		}
		sb.WriteByte('}')
	}
}

// renderCharBound escapes any character that could be taken as
// structure when the bound is read back, including `=` so that the
// bound is never mistaken for a format flag.
func renderCharBound(sb *strings.Builder, r rune) {
	if strings.ContainsRune(litSpecial+"=", r) {
		sb.WriteByte('\\')
	}
	sb.WriteRune(r)
}
