// Copyright (c) 2023, Taylor C. Richberger <taywee@gmx.com>
// See LICENSE for licensing information

// bexpand expands brace patterns into the strings they denote,
// printing one result per line.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Taywee/bexpand/expand"
	"github.com/Taywee/bexpand/syntax"
)

var (
	nullSep   bool
	keepGoing bool
)

var rootCmd = &cobra.Command{
	Use:   "bexpand [pattern ...]",
	Short: "Expand brace patterns into the strings they denote",
	Long: `bexpand expands brace patterns such as "a{b,c}d" or "{1..10..2}"
into the full list of strings they denote, one per line. With no
arguments, patterns are read from standard input, one per line.

A malformed pattern is rejected before any of its output is printed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args)
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&nullSep, "null", "0", false,
		"separate results with NUL instead of newline")
	rootCmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false,
		"report invalid codepoints on stderr and keep expanding")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "bexpand:", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out, errOut io.Writer, args []string) error {
	patterns := args
	if len(patterns) == 0 {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			patterns = append(patterns, sc.Text())
		}
		if err := sc.Err(); err != nil {
			return err
		}
	}
	// Parse everything up front so a bad pattern rejects the whole
	// run before any output.
	exprs := make([]*syntax.Expr, len(patterns))
	for i, pat := range patterns {
		x, err := syntax.Parse(pat)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", pat, err)
		}
		exprs[i] = x
	}
	sep := byte('\n')
	if nullSep {
		sep = 0
	}
	bw := bufio.NewWriter(out)
	for i, x := range exprs {
		it := expand.NewIter(x)
		for it.Next() {
			s, err := it.Value()
			if err != nil {
				if keepGoing {
					fmt.Fprintf(errOut, "bexpand: %q: %v\n", patterns[i], err)
					continue
				}
				bw.Flush()
				return fmt.Errorf("expanding %q: %w", patterns[i], err)
			}
			bw.WriteString(s)
			bw.WriteByte(sep)
		}
	}
	return bw.Flush()
}
