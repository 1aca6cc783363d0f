package indent

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/midbel/indent/shlex"
	"gopkg.in/yaml.v3"
)

// ProfileFile is the name of the profile looked up in the current and in
// the home directory.
const ProfileFile = ".indent.pro"

type option interface {
	name() string
	long() string
}

type optionInfo struct {
	Name string
	Long string
	Help string
}

func (o optionInfo) name() string {
	return o.Name
}

func (o optionInfo) long() string {
	return o.Long
}

type intOption struct {
	optionInfo
	Target func(*Config) *int
}

type boolOption struct {
	optionInfo
	Set func(*Config, bool)
}

type floatOption struct {
	optionInfo
	Target func(*Config) *float64
}

type typeOption struct {
	optionInfo
}

type specialOption struct {
	optionInfo
	Value bool
}

var optionTable = []option{
	boolOption{
		optionInfo: optionInfo{Name: "bad", Long: "blank-after-declarations", Help: "force a blank line after every block of declarations"},
		Set:        func(c *Config, v bool) { c.BlankAfterDecl = v },
	},
	boolOption{
		optionInfo: optionInfo{Name: "bap", Long: "blank-after-procedures", Help: "force a blank line after every procedure body"},
		Set:        func(c *Config, v bool) { c.BlankAfterProc = v },
	},
	boolOption{
		optionInfo: optionInfo{Name: "bbb", Long: "blank-before-block-comments", Help: "force a blank line before every block comment"},
		Set:        func(c *Config, v bool) { c.BlankBeforeBlockComment = v },
	},
	intOption{
		optionInfo: optionInfo{Name: "bls", Long: "blank-lines", Help: "maximum number of consecutive blank lines kept, 0 keeps them all"},
		Target:     func(c *Config) *int { return &c.MaxBlankLines },
	},
	boolOption{
		optionInfo: optionInfo{Name: "bc", Long: "break-after-comma", Help: "put each name of a declaration list on its own line"},
		Set:        func(c *Config, v bool) { c.BreakComma = v },
	},
	boolOption{
		optionInfo: optionInfo{Name: "bl", Long: "brace-own-line", Help: "put the opening brace of a compound statement on its own line"},
		Set: func(c *Config, v bool) {
			c.BraceOwnLine = v
			if v {
				c.BraceJoin = false
			}
		},
	},
	boolOption{
		optionInfo: optionInfo{Name: "br", Long: "brace-join", Help: "join the opening brace to the line of the statement it belongs to"},
		Set: func(c *Config, v bool) {
			c.BraceJoin = v
			if v {
				c.BraceOwnLine = false
			}
		},
	},
	intOption{
		optionInfo: optionInfo{Name: "c", Long: "comment-column", Help: "column of comments following code"},
		Target:     func(c *Config) *int { return &c.CommentColumn },
	},
	intOption{
		optionInfo: optionInfo{Name: "cd", Long: "declaration-comment-column", Help: "column of comments following declarations"},
		Target:     func(c *Config) *int { return &c.DeclCommentColumn },
	},
	boolOption{
		optionInfo: optionInfo{Name: "cdb", Long: "comment-delimiters", Help: "put the delimiters of block comments on their own line"},
		Set:        func(c *Config, v bool) { c.CommentDelimBlank = v },
	},
	intOption{
		optionInfo: optionInfo{Name: "ci", Long: "continuation-indent", Help: "indentation of continuation lines"},
		Target:     func(c *Config) *int { return &c.ContinuationIndent },
	},
	floatOption{
		optionInfo: optionInfo{Name: "cli", Long: "case-indent", Help: "indentation of case labels, in indentation levels"},
		Target:     func(c *Config) *float64 { return &c.CaseIndent },
	},
	intOption{
		optionInfo: optionInfo{Name: "d", Long: "unindent", Help: "levels comments on their own line are moved to the left of the code"},
		Target:     func(c *Config) *int { return &c.Unindent },
	},
	intOption{
		optionInfo: optionInfo{Name: "di", Long: "declaration-indent", Help: "column of names in declarations"},
		Target:     func(c *Config) *int { return &c.DeclIndent },
	},
	boolOption{
		optionInfo: optionInfo{Name: "ei", Long: "else-if", Help: "keep if on the same line as a preceding else"},
		Set:        func(c *Config, v bool) { c.ElseIf = v },
	},
	boolOption{
		optionInfo: optionInfo{Name: "fc1", Long: "format-first-column", Help: "format comments starting in the first column"},
		Set:        func(c *Config, v bool) { c.FormatCol1 = v },
	},
	intOption{
		optionInfo: optionInfo{Name: "i", Long: "indent", Help: "number of columns of one indentation level"},
		Target:     func(c *Config) *int { return &c.IndentSize },
	},
	intOption{
		optionInfo: optionInfo{Name: "l", Long: "line-length", Help: "maximum length of an output line"},
		Target:     func(c *Config) *int { return &c.MaxColumn },
	},
	intOption{
		optionInfo: optionInfo{Name: "lc", Long: "comment-line-length", Help: "maximum length of a line of block comment"},
		Target:     func(c *Config) *int { return &c.BlockCommentMaxColumn },
	},
	intOption{
		optionInfo: optionInfo{Name: "lo", Long: "label-offset", Help: "levels labels are moved to the left of the code"},
		Target:     func(c *Config) *int { return &c.LabelOffset },
	},
	boolOption{
		optionInfo: optionInfo{Name: "ps", Long: "pointer-binop", Help: "treat -> as a binary operator"},
		Set:        func(c *Config, v bool) { c.PointerBinop = v },
	},
	boolOption{
		optionInfo: optionInfo{Name: "sc", Long: "star-comments", Help: "start every continuation line of comments with a star"},
		Set:        func(c *Config, v bool) { c.StarComments = v },
	},
	boolOption{
		optionInfo: optionInfo{Name: "sob", Long: "swallow-blank-lines", Help: "remove the blank lines of the input"},
		Set:        func(c *Config, v bool) { c.SwallowBlankLines = v },
	},
	intOption{
		optionInfo: optionInfo{Name: "ts", Long: "tab-size", Help: "number of columns between two tab stops"},
		Target:     func(c *Config) *int { return &c.TabSize },
	},
	typeOption{
		optionInfo: optionInfo{Name: "T", Long: "types", Help: "add a name to the list of type names"},
	},
	specialOption{
		optionInfo: optionInfo{Name: "npro", Long: "no-profile", Help: "do not read the profile files"},
	},
	specialOption{
		optionInfo: optionInfo{Name: "P", Long: "profile", Help: "read the profile from the given file"},
		Value:      true,
	},
}

// Apply changes cfg according to one switch, given with its leading dash.
// Switches only meaningful to Setup (-npro, -P) are accepted and ignored.
func Apply(cfg *Config, arg string) error {
	sw, ok := strings.CutPrefix(arg, "-")
	if !ok || sw == "" {
		return fmt.Errorf("%s: %w", arg, ErrInvalidValue)
	}
	opt, value, negate := findOption(sw)
	if opt == nil {
		return fmt.Errorf("%s: %w", arg, Suggest(ErrUnknownOption, sw, optionNames()))
	}
	switch o := opt.(type) {
	case boolOption:
		o.Set(cfg, !negate)
	case intOption:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", arg, ErrInvalidValue)
		}
		*o.Target(cfg) = n
	case floatOption:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", arg, ErrInvalidValue)
		}
		*o.Target(cfg) = n
	case typeOption:
		if !slices.Contains(cfg.Types, value) {
			cfg.Types = append(cfg.Types, value)
		}
	case specialOption:
	}
	return nil
}

// findOption gives the option named by sw. Options taking a value match
// when their name is a prefix of sw, the longest name winning.
func findOption(sw string) (option, string, bool) {
	var (
		found option
		value string
		size  int
	)
	for _, opt := range optionTable {
		name := opt.name()
		if o, ok := opt.(boolOption); ok {
			if sw == name || sw == "n"+name {
				return o, "", sw != name
			}
			continue
		}
		if o, ok := opt.(specialOption); ok && !o.Value {
			if sw == name {
				return o, "", false
			}
			continue
		}
		if len(name) > size && len(sw) > len(name) && strings.HasPrefix(sw, name) {
			found, value, size = opt, sw[len(name):], len(name)
		}
	}
	return found, value, false
}

func optionNames() []string {
	var names []string
	for _, o := range optionTable {
		names = append(names, o.name())
		if _, ok := o.(boolOption); ok {
			names = append(names, "n"+o.name())
		}
	}
	return names
}

// Setup builds the configuration from the profiles and from args. Unless
// -npro is given, the files named with -P are read or, without them, the
// first profile found in the current then in the home directory. Switches
// in args override the profiles.
func Setup(args []string) (Config, error) {
	var (
		cfg   = Default()
		load  = true
		files []string
	)
	for _, a := range args {
		if a == "-npro" {
			load = false
		} else if file, ok := strings.CutPrefix(a, "-P"); ok && file != "" {
			files = append(files, file)
		}
	}
	if load {
		if len(files) == 0 {
			files = defaultProfiles()
		}
		for _, f := range files {
			if err := LoadProfile(&cfg, f); err != nil {
				return cfg, err
			}
		}
	}
	for _, a := range args {
		if err := Apply(&cfg, a); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func defaultProfiles() []string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	for _, d := range dirs {
		file := filepath.Join(d, ProfileFile)
		if i, err := os.Stat(file); err == nil && i.Mode().IsRegular() {
			return []string{file}
		}
	}
	return nil
}

// LoadProfile applies the switches read from file to cfg. Files with a
// .yml or .yaml extension are mappings of option names to values, other
// files are lists of switches.
func LoadProfile(cfg *Config, file string) error {
	r, err := os.Open(file)
	if err != nil {
		return err
	}
	defer r.Close()

	var args []string
	switch filepath.Ext(file) {
	case ".yml", ".yaml":
		args, err = yamlSwitches(r)
	default:
		args, err = shlex.Split(r)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	for _, a := range args {
		if err := Apply(cfg, a); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}
	return nil
}

// yamlSwitches turns a YAML mapping into switches. Keys are option names,
// short or long.
func yamlSwitches(r io.Reader) ([]string, error) {
	var (
		doc  map[string]any
		args []string
	)
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		opt := lookupOption(k)
		if opt == nil {
			return nil, Suggest(ErrUnknownOption, k, optionLongNames())
		}
		name := opt.name()
		switch v := doc[k].(type) {
		case bool:
			if _, ok := opt.(boolOption); !ok {
				return nil, fmt.Errorf("%s: %w", k, ErrInvalidValue)
			}
			if !v {
				name = "n" + name
			}
			args = append(args, "-"+name)
		case []any:
			for _, x := range v {
				args = append(args, fmt.Sprintf("-%s%v", name, x))
			}
		case nil:
			args = append(args, "-"+name)
		default:
			args = append(args, fmt.Sprintf("-%s%v", name, v))
		}
	}
	return args, nil
}

func lookupOption(key string) option {
	for _, o := range optionTable {
		if o.name() == key || o.long() == key {
			return o
		}
	}
	return nil
}

func optionLongNames() []string {
	var names []string
	for _, o := range optionTable {
		names = append(names, o.long())
	}
	return names
}
