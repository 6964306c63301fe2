package rex

import (
	"strings"
	"testing"
)

func BenchmarkLiteral(b *testing.B) {
	re := MustCompile("needle")
	input := strings.Repeat("hay ", 256) + "needle"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.MatchString(input)
	}
}

func BenchmarkPrefilteredAlternation(b *testing.B) {
	re := MustCompile("alpha|bravo|charlie|delta")
	input := strings.Repeat("xxxxxxxx ", 128) + "delta"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.MatchString(input)
	}
}

func BenchmarkCaptures(b *testing.B) {
	re := MustCompile(`(?P<area>\d{3})-(?P<line>\d{4})`)
	input := "call 555-1234 or 555-9876"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.Find(input)
	}
}

func BenchmarkFindAll(b *testing.B) {
	re := MustCompile(`\w+`)
	input := strings.Repeat("one two three four ", 64)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.FindAll(input, -1)
	}
}

func BenchmarkReplace(b *testing.B) {
	re := MustCompile(`\d+`)
	input := strings.Repeat("a1 b22 c333 ", 32)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.ReplaceAllString(input, "N")
	}
}

// BenchmarkPathological measures the nested-quantifier worst case: the step
// budget caps the exponential backtrack.
func BenchmarkPathological(b *testing.B) {
	re := MustCompile(`(a+)+b`)
	input := strings.Repeat("a", 20)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.MatchString(input)
	}
}

// BenchmarkLookbehind scans from the input start at every position, so a
// long prefix is the expensive case.
func BenchmarkLookbehind(b *testing.B) {
	re := MustCompile(`(?<=foo)bar`)
	input := strings.Repeat("x", 1000) + "foobar"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.MatchString(input)
	}
}

func BenchmarkCacheHit(b *testing.B) {
	c := NewCache()
	if _, err := c.Get(`\d+`, 0); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Get(`\d+`, 0); err != nil {
			b.Fatal(err)
		}
	}
}
