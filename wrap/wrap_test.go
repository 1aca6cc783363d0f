package wrap_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/midbel/indent/wrap"
	"pgregory.net/rapid"
)

func TestLines(t *testing.T) {
	data := []struct {
		Input string
		Width int
		Want  []string
	}{
		{
			Input: "",
			Width: 10,
		},
		{
			Input: "  \t \n ",
			Width: 10,
		},
		{
			Input: "hello world",
			Width: 20,
			Want:  []string{"hello world"},
		},
		{
			Input: "hello world",
			Width: 11,
			Want:  []string{"hello world"},
		},
		{
			Input: "hello world",
			Width: 10,
			Want:  []string{"hello", "world"},
		},
		{
			Input: "the quick brown fox\njumps   over the\tlazy dog",
			Width: 15,
			Want:  []string{"the quick brown", "fox jumps over", "the lazy dog"},
		},
		{
			Input: "a verylongwordthatdoesnotfit b",
			Width: 8,
			Want:  []string{"a", "verylongwordthatdoesnotfit", "b"},
		},
	}
	for _, d := range data {
		got := wrap.Lines(d.Input, d.Width)
		if diff := cmp.Diff(d.Want, got); diff != "" {
			t.Errorf("%q: lines mismatched (-want +got):\n%s", d.Input, diff)
		}
	}
}

func TestLinesProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var (
			words = rapid.SliceOf(rapid.StringMatching(`[a-z]{1,12}`)).Draw(t, "words")
			width = rapid.IntRange(1, 40).Draw(t, "width")
			lines = wrap.Lines(strings.Join(words, " "), width)
		)
		if got, want := strings.Join(lines, " "), strings.Join(words, " "); got != want {
			t.Fatalf("words lost: want %q, got %q", want, got)
		}
		for _, line := range lines {
			if len(line) > width && strings.Contains(line, " ") {
				t.Fatalf("line %q longer than %d", line, width)
			}
		}
	})
}
