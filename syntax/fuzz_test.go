// Copyright (c) 2023, Taylor C. Richberger <taywee@gmx.com>
// See LICENSE for licensing information

package syntax

import (
	"errors"
	"testing"
)

func FuzzParse(f *testing.F) {
	for _, tc := range parseTests {
		f.Add(tc.in)
	}
	for _, tc := range parseErrorTests {
		f.Add(tc.in)
	}
	f.Fuzz(func(t *testing.T, src string) {
		x, err := Parse(src)
		if err != nil {
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("%q: error is not a *ParseError: %v", src, err)
			}
			if perr.Offset < 0 || perr.Offset > len(src) {
				t.Fatalf("%q: error offset %d outside the input", src, perr.Offset)
			}
			return
		}
		// rendered trees must parse again and reach a fixed point
		text := x.String()
		x2, err := Parse(text)
		if err != nil {
			t.Fatalf("%q: rendering %q does not parse: %v", src, text, err)
		}
		if text2 := x2.String(); text2 != text {
			t.Fatalf("%q: rendering is not stable: %q -> %q", src, text, text2)
		}
	})
}
