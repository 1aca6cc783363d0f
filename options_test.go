package indent

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestApply(t *testing.T) {
	data := []struct {
		Args []string
		Want func(*Config)
	}{
		{
			Args: []string{"-i4", "-l100", "-lc60", "-ts4"},
			Want: func(c *Config) {
				c.IndentSize = 4
				c.MaxColumn = 100
				c.BlockCommentMaxColumn = 60
				c.TabSize = 4
			},
		},
		{
			Args: []string{"-di0", "-cd40", "-c41", "-cli0.5", "-ci4"},
			Want: func(c *Config) {
				c.DeclIndent = 0
				c.DeclCommentColumn = 40
				c.CommentColumn = 41
				c.CaseIndent = 0.5
				c.ContinuationIndent = 4
			},
		},
		{
			Args: []string{"-nsc", "-bad", "-bap", "-bc", "-nbc"},
			Want: func(c *Config) {
				c.StarComments = false
				c.BlankAfterDecl = true
				c.BlankAfterProc = true
			},
		},
		{
			Args: []string{"-bls2", "-sob"},
			Want: func(c *Config) {
				c.MaxBlankLines = 2
				c.SwallowBlankLines = true
			},
		},
		{
			Args: []string{"-bl", "-br"},
			Want: func(c *Config) {
				c.BraceJoin = true
			},
		},
		{
			Args: []string{"-br", "-bl"},
			Want: func(c *Config) {
				c.BraceOwnLine = true
			},
		},
		{
			Args: []string{"-Tsize_t", "-Toff_t", "-Tsize_t"},
			Want: func(c *Config) {
				c.Types = []string{"size_t", "off_t"}
			},
		},
		{
			Args: []string{"-npro", "-P/tmp/indent.pro"},
			Want: func(c *Config) {},
		},
	}
	for _, d := range data {
		var (
			got  = Default()
			want = Default()
		)
		for _, a := range d.Args {
			if err := Apply(&got, a); err != nil {
				t.Fatalf("%s: unexpected error! %s", a, err)
			}
		}
		d.Want(&want)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%v: config mismatched (-want +got):\n%s", d.Args, diff)
		}
	}
}

func TestApplyErrors(t *testing.T) {
	data := []struct {
		Arg  string
		Want error
	}{
		{Arg: "-bogus", Want: ErrUnknownOption},
		{Arg: "-nbl2", Want: ErrUnknownOption},
		{Arg: "-ix", Want: ErrInvalidValue},
		{Arg: "-cli.x", Want: ErrInvalidValue},
		{Arg: "i4", Want: ErrInvalidValue},
		{Arg: "-", Want: ErrInvalidValue},
	}
	for _, d := range data {
		cfg := Default()
		err := Apply(&cfg, d.Arg)
		if !errors.Is(err, d.Want) {
			t.Errorf("%s: expected %v, got %v", d.Arg, d.Want, err)
		}
	}
}

func TestApplySuggest(t *testing.T) {
	cfg := Default()
	err := Apply(&cfg, "-bdd")

	var sugg SuggestionError
	if !errors.As(err, &sugg) {
		t.Fatalf("expected suggestions, got %v", err)
	}
	var found bool
	for _, s := range sugg.Others {
		found = found || s == "bad"
	}
	if !found {
		t.Errorf("bad not suggested: %v", sugg.Others)
	}
}

func TestLoadProfile(t *testing.T) {
	file := writeProfile(t, ProfileFile, "# kernel style\n-i4 /* small\nindent */ -nsc\n-T\"foo\"\n")

	cfg := Default()
	if err := LoadProfile(&cfg, file); err != nil {
		t.Fatalf("unexpected error! %s", err)
	}
	want := Default()
	want.IndentSize = 4
	want.StarComments = false
	want.Types = []string{"foo"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatched (-want +got):\n%s", diff)
	}
}

func TestLoadProfileYAML(t *testing.T) {
	const doc = `
indent: 4
star-comments: false
types: [size_t, off_t]
cli: 0.5
bl: true
`
	file := writeProfile(t, "indent.yml", doc)

	args, err := yamlSwitches(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error! %s", err)
	}
	wantArgs := []string{"-bl", "-cli0.5", "-i4", "-nsc", "-Tsize_t", "-Toff_t"}
	if diff := cmp.Diff(wantArgs, args); diff != "" {
		t.Errorf("switches mismatched (-want +got):\n%s", diff)
	}

	cfg := Default()
	if err := LoadProfile(&cfg, file); err != nil {
		t.Fatalf("unexpected error! %s", err)
	}
	want := Default()
	want.IndentSize = 4
	want.StarComments = false
	want.Types = []string{"size_t", "off_t"}
	want.CaseIndent = 0.5
	want.BraceOwnLine = true
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatched (-want +got):\n%s", diff)
	}
}

func TestLoadProfileErrors(t *testing.T) {
	data := []struct {
		File    string
		Content string
		Want    error
	}{
		{File: "bad.yml", Content: "unknown-option: 1\n", Want: ErrUnknownOption},
		{File: "bad.yaml", Content: "indent: true\n", Want: ErrInvalidValue},
		{File: ProfileFile, Content: "-i4 -zz\n", Want: ErrUnknownOption},
	}
	for _, d := range data {
		cfg := Default()
		err := LoadProfile(&cfg, writeProfile(t, d.File, d.Content))
		if !errors.Is(err, d.Want) {
			t.Errorf("%s: expected %v, got %v", d.File, d.Want, err)
		}
	}
}

func TestSetup(t *testing.T) {
	file := writeProfile(t, "custom.pro", "-i4 -l100")

	cfg, err := Setup([]string{"-P" + file, "-i2"})
	if err != nil {
		t.Fatalf("unexpected error! %s", err)
	}
	if cfg.IndentSize != 2 || cfg.MaxColumn != 100 {
		t.Errorf("profile not applied or not overridden: i=%d l=%d", cfg.IndentSize, cfg.MaxColumn)
	}

	cfg, err = Setup([]string{"-npro", "-P" + file, "-di8"})
	if err != nil {
		t.Fatalf("unexpected error! %s", err)
	}
	if cfg.IndentSize != 8 || cfg.MaxColumn != 78 || cfg.DeclIndent != 8 {
		t.Errorf("profile should be ignored: i=%d l=%d di=%d", cfg.IndentSize, cfg.MaxColumn, cfg.DeclIndent)
	}
}

func TestUsage(t *testing.T) {
	var buf strings.Builder
	if err := Usage(&buf); err != nil {
		t.Fatalf("unexpected error! %s", err)
	}
	str := buf.String()
	for _, want := range []string{"-bad, -nbad", "-i<n>", "-cli<n.n>", "-T<name>", "-P<file>", "(line-length)"} {
		if !strings.Contains(str, want) {
			t.Errorf("usage: %q not found", want)
		}
	}
}

func writeProfile(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("fail to write profile: %s", err)
	}
	return file
}
