// Copyright (c) 2023, Taylor C. Richberger <taywee@gmx.com>
// See LICENSE for licensing information

package expand

import (
	"testing"

	"github.com/Taywee/bexpand/syntax"
)

func FuzzExpand(f *testing.F) {
	for _, tc := range expandTests {
		f.Add(tc.in)
	}
	f.Add("{퟿....1024}")
	f.Fuzz(func(t *testing.T, src string) {
		x, err := syntax.Parse(src)
		if err != nil {
			return
		}
		// expansion is deterministic and restartable; cap the walk
		// since patterns can denote huge products
		const limit = 500
		it := NewIter(x)
		first := take(it, limit)
		it.Reset()
		second := take(it, limit)
		if len(first) != len(second) {
			t.Fatalf("%q: replay yielded %d results, want %d", src, len(second), len(first))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("%q: replay diverged at %d: %q -> %q", src, i, first[i], second[i])
			}
		}
		if len(first) == 0 {
			t.Fatalf("%q: expansion yielded nothing; every pattern denotes at least one result", src)
		}
	})
}

func take(it *Iter, n int) []string {
	var out []string
	for len(out) < n && it.Next() {
		s, err := it.Value()
		if err != nil {
			s = "\x00error: " + err.Error()
		}
		out = append(out, s)
	}
	return out
}
