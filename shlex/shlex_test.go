package shlex_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/midbel/indent/shlex"
)

var list = []struct {
	Input string
	Want  []string
}{
	{
		Input: ``,
	},
	{
		Input: `-i4`,
		Want:  []string{"-i4"},
	},
	{
		Input: `-i4 -bc    -nbad`,
		Want:  []string{"-i4", "-bc", "-nbad"},
	},
	{
		Input: "-i4\n\t-di8\r\n-cli0.5\n",
		Want:  []string{"-i4", "-di8", "-cli0.5"},
	},
	{
		Input: `-T"unsigned long" -T'size_t' "-i4"`,
		Want:  []string{"-Tunsigned long", "-Tsize_t", "-i4"},
	},
	{
		Input: "/* kernel normal form */ -i8 -di16 /* no\nstar */ -nsc",
		Want:  []string{"-i8", "-di16", "-nsc"},
	},
	{
		Input: "# profile\n-i2 # two spaces\n-l100",
		Want:  []string{"-i2", "-l100"},
	},
	{
		Input: "-P/tmp/a#b",
		Want:  []string{"-P/tmp/a#b"},
	},
}

func TestSplit(t *testing.T) {
	for _, in := range list {
		got, err := shlex.Split(strings.NewReader(in.Input))
		if err != nil {
			t.Errorf("%q: unexpected error! %s", in.Input, err)
			continue
		}
		if diff := cmp.Diff(in.Want, got); diff != "" {
			t.Errorf("%q: words mismatched (-want +got):\n%s", in.Input, diff)
		}
	}
}

func TestSplitUnterminated(t *testing.T) {
	for _, in := range []string{`-i4 /* comment`, `-T"foo`} {
		_, err := shlex.Split(strings.NewReader(in))
		if !errors.Is(err, shlex.ErrUnterminated) {
			t.Errorf("%q: expected unterminated error, got %v", in, err)
		}
	}
}
