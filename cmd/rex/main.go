// Command rex is a small driver for the rex engine: it matches, searches,
// replaces and explains patterns from the command line, and offers an
// interactive tester.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"rex"
)

var (
	ignoreCase  bool
	multiline   bool
	dotAll      bool
	maxMatches  int
	interactive bool
)

func init() {
	flag.BoolVar(&ignoreCase, "i", false, "case-insensitive matching")
	flag.BoolVar(&multiline, "m", false, "^ and $ match at line boundaries")
	flag.BoolVar(&dotAll, "s", false, ". matches newline")
	flag.IntVar(&maxMatches, "n", -1, "maximum number of matches for findall (-1 for all)")
	flag.BoolVar(&interactive, "t", false, "interactive tester: compile the pattern once, test lines from the terminal")
}

func main() {
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(2)
	}

	if interactive {
		if err := repl(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := run(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "usage: rex [flags] <match|find|findall|replace|explain> <pattern> [input...]\n")
	fmt.Fprintf(os.Stderr, "       rex [flags] -t <pattern>\n")
	flag.PrintDefaults()
}

func parseFlags() rex.Flags {
	var f rex.Flags
	if ignoreCase {
		f |= rex.IgnoreCase
	}
	if multiline {
		f |= rex.Multiline
	}
	if dotAll {
		f |= rex.DotAll
	}
	return f
}

func run(args []string) error {
	cmd := args[0]
	if len(args) < 2 {
		return fmt.Errorf("rex: %s requires a pattern", cmd)
	}
	pattern := args[1]
	rest := args[2:]

	if cmd == "explain" {
		doc, err := rex.Describe(pattern, parseFlags())
		if err != nil {
			return err
		}
		fmt.Println(doc)
		return nil
	}

	re, err := rex.Cached(pattern, parseFlags())
	if err != nil {
		return err
	}

	switch cmd {
	case "match":
		input, err := readInput(rest)
		if err != nil {
			return err
		}
		fmt.Println(re.MatchString(input))

	case "find":
		input, err := readInput(rest)
		if err != nil {
			return err
		}
		m, err := re.FindRequired(input)
		if err != nil {
			return err
		}
		printMatch(re, m)

	case "findall":
		input, err := readInput(rest)
		if err != nil {
			return err
		}
		for _, m := range re.FindAll(input, maxMatches) {
			printMatch(re, m)
		}

	case "replace":
		if len(rest) < 1 {
			return errors.New("rex: replace requires a template")
		}
		input, err := readInput(rest[1:])
		if err != nil {
			return err
		}
		fmt.Println(re.ReplaceAllString(input, rest[0]))

	default:
		return fmt.Errorf("rex: unknown command %q", cmd)
	}
	return nil
}

// readInput takes the input text from the remaining arguments, or from
// stdin when none are given.
func readInput(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\n"), nil
}

func printMatch(re *rex.Regexp, m *rex.Match) {
	start, end := m.Span()
	fmt.Printf("%q at [%d, %d)\n", m.Value(), start, end)
	for i := 1; i <= m.NumGroups(); i++ {
		text, ok := m.Group(i)
		if !ok {
			continue
		}
		if name := re.SubexpNames()[i]; name != "" {
			fmt.Printf("  group %d (%s): %q\n", i, name, text)
		} else {
			fmt.Printf("  group %d: %q\n", i, text)
		}
	}
}

// repl compiles the pattern once and tests every line typed at the prompt
// against it.
func repl(pattern string) error {
	re, err := rex.Cached(pattern, parseFlags())
	if err != nil {
		return err
	}

	rl, err := readline.New("rex> ")
	if err != nil {
		return err
	}
	defer func() { _ = rl.Close() }()

	fmt.Printf("pattern %s compiled; type text to test, ctrl-d to quit\n", re)
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		m := re.Find(line)
		if m == nil {
			fmt.Println("no match")
			continue
		}
		printMatch(re, m)
	}
}
