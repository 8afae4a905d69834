// Copyright (c) 2023, Taylor C. Richberger <taywee@gmx.com>
// See LICENSE for licensing information

package expand

import (
	"fmt"

	"github.com/Taywee/bexpand/syntax"
)

// SurrogateError reports a character sequence step that landed on a
// codepoint which is not a valid unicode scalar value. It applies to a
// single expansion position; the positions after it are unaffected.
type SurrogateError struct {
	Codepoint rune
}

func (e SurrogateError) Error() string {
	return fmt.Sprintf("codepoint U+%04X is a surrogate, not a scalar value", e.Codepoint)
}

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

// stepper walks from cur toward to, stride at a time. The final bound
// is included only when landed on exactly; a step that would overshoot
// simply ends the walk. All arithmetic is done in int64 with unsigned
// differences, so bounds at the extremes of the int64 range are safe.
type stepper struct {
	cur, to int64
	stride  uint64
	done    bool
}

func (s *stepper) advance() {
	switch {
	case s.cur == s.to:
		s.done = true
	case s.cur < s.to:
		if uint64(s.to-s.cur) < s.stride {
			s.done = true
		} else {
			s.cur += int64(s.stride)
		}
	default:
		if uint64(s.cur-s.to) < s.stride {
			s.done = true
		} else {
			s.cur -= int64(s.stride)
		}
	}
}

type numCursor struct {
	seq *syntax.NumSeq
	stepper
}

func (c *numCursor) next() (result, bool) {
	if c.done {
		return result{}, false
	}
	r := result{s: c.seq.Format(c.cur)}
	c.advance()
	return r, true
}

func (c *numCursor) reset() {
	c.stepper = stepper{cur: c.seq.From, to: c.seq.To, stride: c.seq.Stride}
}

type charCursor struct {
	seq *syntax.CharSeq
	stepper
}

func (c *charCursor) next() (result, bool) {
	if c.done {
		return result{}, false
	}
	var r result
	if c.cur >= surrogateMin && c.cur <= surrogateMax {
		r.err = SurrogateError{Codepoint: rune(c.cur)}
	} else {
		r.s = string(rune(c.cur))
	}
	c.advance()
	return r, true
}

func (c *charCursor) reset() {
	c.stepper = stepper{cur: int64(c.seq.From), to: int64(c.seq.To), stride: c.seq.Stride}
}
