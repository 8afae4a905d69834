// Copyright (c) 2023, Taylor C. Richberger <taywee@gmx.com>
// See LICENSE for licensing information

package expand_test

import (
	"fmt"

	"github.com/Taywee/bexpand/expand"
	"github.com/Taywee/bexpand/syntax"
)

func ExamplePattern() {
	results, err := expand.Pattern("a{b,c}{1..3}")
	if err != nil {
		return
	}
	for _, s := range results {
		fmt.Println(s)
	}
	// Output:
	// ab1
	// ab2
	// ab3
	// ac1
	// ac2
	// ac3
}

func ExampleNewIter() {
	x, err := syntax.Parse("{=8..11}")
	if err != nil {
		return
	}
	it := expand.NewIter(x)
	for it.Next() {
		s, err := it.Value()
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		fmt.Println(s)
	}
	// Output:
	// 08
	// 09
	// 10
	// 11
}
