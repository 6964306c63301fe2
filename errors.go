package rex

import (
	"fmt"
	"strings"
)

type errorKind int

const (
	errEmptyPattern errorKind = iota
	errInvalidPattern
	errPatternNotFound
	errDuplicateGroupName
	errMatchTimeout
)

// Error is the single error type produced by this package. It distinguishes
// between empty patterns, syntax errors, missing required matches, and
// duplicate group names, and carries enough context (pattern text, input
// text, offset) to format a full message without the caller re-deriving it.
type Error struct {
	kind    errorKind
	Pattern string
	Input   string // input text, for required-match failures
	Pos     int    // byte offset into Pattern, for syntax errors
	Reason  string
	Name    string // offending group name, for duplicates
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "rex: error with pattern %q", e.Pattern)
	switch e.kind {
	case errEmptyPattern:
		b.WriteString(": empty pattern provided")
	case errInvalidPattern:
		fmt.Fprintf(&b, ": %s at offset %d", e.Reason, e.Pos)
	case errPatternNotFound:
		fmt.Fprintf(&b, ": pattern not found in input %q", e.Input)
	case errDuplicateGroupName:
		fmt.Fprintf(&b, ": duplicate group name %q", e.Name)
	case errMatchTimeout:
		fmt.Fprintf(&b, ": match attempt on input %q exceeded the step budget", e.Input)
	}
	return b.String()
}

// IsEmptyPattern reports whether err rejects the empty pattern.
func IsEmptyPattern(err error) bool { return hasKind(err, errEmptyPattern) }

// IsInvalidPattern reports whether err is a pattern syntax error.
func IsInvalidPattern(err error) bool {
	return hasKind(err, errInvalidPattern) || hasKind(err, errDuplicateGroupName)
}

// IsPatternNotFound reports whether err is a required-match failure.
func IsPatternNotFound(err error) bool { return hasKind(err, errPatternNotFound) }

// IsDuplicateGroupName reports whether err rejects a reused group name.
func IsDuplicateGroupName(err error) bool { return hasKind(err, errDuplicateGroupName) }

// IsMatchTimeout reports whether err means a match attempt gave up because
// the backtracking step budget ran out, so the result is unknown rather
// than a definite no-match.
func IsMatchTimeout(err error) bool { return hasKind(err, errMatchTimeout) }

func hasKind(err error, kind errorKind) bool {
	e, ok := err.(*Error)
	return ok && e.kind == kind
}

func emptyPatternError() *Error {
	return &Error{kind: errEmptyPattern}
}

func syntaxError(pattern string, pos int, format string, args ...any) *Error {
	return &Error{
		kind:    errInvalidPattern,
		Pattern: pattern,
		Pos:     pos,
		Reason:  fmt.Sprintf(format, args...),
	}
}

func notFoundError(pattern, input string) *Error {
	return &Error{kind: errPatternNotFound, Pattern: pattern, Input: input}
}

func duplicateNameError(pattern, name string) *Error {
	return &Error{kind: errDuplicateGroupName, Pattern: pattern, Name: name}
}

func timeoutError(pattern, input string) *Error {
	return &Error{kind: errMatchTimeout, Pattern: pattern, Input: input}
}
