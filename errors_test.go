package rex

import (
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err mustErr
		sub []string
	}{
		{func() error { _, err := Compile(""); return err },
			[]string{"empty pattern"}},
		{func() error { _, err := Compile("a**"); return err },
			[]string{`"a**"`, "offset 2"}},
		{func() error { _, err := Compile("(?P<x>a)(?P<x>b)"); return err },
			[]string{"duplicate group name", `"x"`}},
		{func() error { _, err := MustCompile("xyz").FindRequired("abc"); return err },
			[]string{"not found", `"abc"`}},
	}

	for _, tt := range tests {
		err := tt.err()
		if err == nil {
			t.Error("expected an error")
			continue
		}
		msg := err.Error()
		if !strings.HasPrefix(msg, "rex: ") {
			t.Errorf("message %q should carry the package prefix", msg)
		}
		for _, sub := range tt.sub {
			if !strings.Contains(msg, sub) {
				t.Errorf("message %q should contain %q", msg, sub)
			}
		}
	}
}

type mustErr func() error

func TestErrorPredicatesDisjoint(t *testing.T) {
	_, syntax := Compile("(")
	_, empty := Compile("")
	_, notFound := MustCompile("x").FindRequired("y")

	if IsEmptyPattern(syntax) || IsPatternNotFound(syntax) {
		t.Error("syntax error misclassified")
	}
	if IsInvalidPattern(empty) || IsPatternNotFound(empty) {
		t.Error("empty-pattern error misclassified")
	}
	if IsInvalidPattern(notFound) || IsEmptyPattern(notFound) {
		t.Error("not-found error misclassified")
	}
	if IsMatchTimeout(syntax) || IsMatchTimeout(empty) || IsMatchTimeout(notFound) {
		t.Error("non-timeout error misclassified as timeout")
	}
}
