// Copyright (c) 2023, Taylor C. Richberger <taywee@gmx.com>
// See LICENSE for licensing information

// Package expand turns parsed brace patterns into the strings they
// denote, lazily and in a fixed order.
package expand

import (
	"strings"

	"github.com/Taywee/bexpand/syntax"
)

// result is one expansion outcome: a string, or a per-position error.
type result struct {
	s   string
	err error
}

// A cursor lazily steps through the expansion of a single node. next
// reports false once the cursor is exhausted; reset rewinds it to the
// start. Every node expands to at least one result, so a cursor never
// starts out exhausted.
type cursor interface {
	next() (result, bool)
	reset()
}

func newCursor(part syntax.Part) cursor {
	switch part := part.(type) {
	case *syntax.Lit:
		return &litCursor{value: part.Value}
	case *syntax.List:
		return &listCursor{elems: part.Elems}
	case *syntax.NumSeq:
		c := &numCursor{seq: part}
		c.reset()
		return c
	case *syntax.CharSeq:
		c := &charCursor{seq: part}
		c.reset()
		return c
	}
	panic("expand: unknown part type")
}

type litCursor struct {
	value string
	done  bool
}

func (c *litCursor) next() (result, bool) {
	if c.done {
		return result{}, false
	}
	c.done = true
	return result{s: c.value}, true
}

func (c *litCursor) reset() { c.done = false }

// listCursor yields each element's full expansion in element order;
// alternatives concatenate, they do not multiply.
type listCursor struct {
	elems []*syntax.Expr
	idx   int
	cur   *exprCursor
}

func (c *listCursor) next() (result, bool) {
	for {
		if c.idx >= len(c.elems) {
			return result{}, false
		}
		if c.cur == nil {
			c.cur = newExprCursor(c.elems[c.idx])
		}
		if r, ok := c.cur.next(); ok {
			return r, true
		}
		c.cur = nil
		c.idx++
	}
}

func (c *listCursor) reset() { c.idx, c.cur = 0, nil }

// exprCursor walks the cartesian product of its parts' expansions like
// an odometer: the rightmost part advances fastest and carries to the
// left on overflow. An expression with no parts yields the single
// empty string.
type exprCursor struct {
	subs    []cursor
	current []result
	started bool
	done    bool
}

func newExprCursor(x *syntax.Expr) *exprCursor {
	subs := make([]cursor, len(x.Parts))
	for i, part := range x.Parts {
		subs[i] = newCursor(part)
	}
	return &exprCursor{subs: subs, current: make([]result, len(subs))}
}

func (c *exprCursor) next() (result, bool) {
	if c.done {
		return result{}, false
	}
	if !c.started {
		c.started = true
		for i, sub := range c.subs {
			c.current[i], _ = sub.next()
		}
	} else {
		i := len(c.subs) - 1
		for ; i >= 0; i-- {
			if r, ok := c.subs[i].next(); ok {
				c.current[i] = r
				break
			}
			c.subs[i].reset()
			c.current[i], _ = c.subs[i].next()
		}
		if i < 0 {
			c.done = true
			return result{}, false
		}
	}
	return c.combine(), true
}

// combine concatenates the current piece of every part. A combination
// holding an errored piece yields that error for the whole position.
func (c *exprCursor) combine() result {
	var sb strings.Builder
	for _, r := range c.current {
		if r.err != nil {
			return result{err: r.err}
		}
		sb.WriteString(r.s)
	}
	return result{s: sb.String()}
}

func (c *exprCursor) reset() {
	for _, sub := range c.subs {
		sub.reset()
	}
	c.started, c.done = false, false
}

// An Iter lazily enumerates the expansion of a parsed pattern. The
// sequence is finite and fully determined by the tree, which the Iter
// only reads; iterating the same tree again, or concurrently from
// another Iter, yields the identical sequence.
type Iter struct {
	cur *exprCursor
	res result
}

// NewIter returns an iterator positioned before the first result.
func NewIter(x *syntax.Expr) *Iter {
	return &Iter{cur: newExprCursor(x)}
}

// Next advances to the next result, reporting false once the
// expansion is exhausted.
func (it *Iter) Next() bool {
	r, ok := it.cur.next()
	it.res = r
	return ok
}

// Value returns the result at the current position. A non-nil error
// replaces the string for that one position only; Next may still be
// called to continue past it.
func (it *Iter) Value() (string, error) {
	return it.res.s, it.res.err
}

// Reset rewinds the iterator to before the first result.
func (it *Iter) Reset() {
	it.cur.reset()
	it.res = result{}
}

// Strings expands x into the complete list of strings it denotes. The
// first per-position error aborts the expansion and is returned.
func Strings(x *syntax.Expr) ([]string, error) {
	var out []string
	it := NewIter(x)
	for it.Next() {
		s, err := it.Value()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Pattern parses and fully expands src in one call, for callers that
// need neither laziness nor a per-position error policy.
func Pattern(src string) ([]string, error) {
	x, err := syntax.Parse(src)
	if err != nil {
		return nil, err
	}
	return Strings(x)
}
