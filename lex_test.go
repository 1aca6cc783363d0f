package indent

import (
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLexer(t *testing.T) {
	data := []struct {
		Input string
		Want  []Token
	}{
		{
			Input: "a->b",
			Want: []Token{
				{Type: Ident, Literal: "a"},
				{Type: UnaryOp, Literal: "->"},
				{Type: Ident, Literal: "b"},
			},
		},
		{
			Input: "x++ + -y",
			Want: []Token{
				{Type: Ident, Literal: "x"},
				{Type: PostOp, Literal: "++"},
				{Type: BinaryOp, Literal: "+"},
				{Type: UnaryOp, Literal: "-"},
				{Type: Ident, Literal: "y"},
			},
		},
		{
			Input: "a == b; c <<= 2; d = !e",
			Want: []Token{
				{Type: Ident, Literal: "a"},
				{Type: BinaryOp, Literal: "=="},
				{Type: Ident, Literal: "b"},
				{Type: Semicolon, Literal: ";"},
				{Type: Ident, Literal: "c"},
				{Type: BinaryOp, Literal: "<<="},
				{Type: Ident, Literal: "2"},
				{Type: Semicolon, Literal: ";"},
				{Type: Ident, Literal: "d"},
				{Type: BinaryOp, Literal: "="},
				{Type: UnaryOp, Literal: "!"},
				{Type: Ident, Literal: "e"},
			},
		},
		{
			Input: "0x1Fu 3.14e-2 1UL .5",
			Want: []Token{
				{Type: Ident, Literal: "0x1Fu"},
				{Type: Ident, Literal: "3.14e-2"},
				{Type: Ident, Literal: "1UL"},
				{Type: Ident, Literal: ".5"},
			},
		},
		{
			Input: `"a\"b" 'c'`,
			Want: []Token{
				{Type: Ident, Literal: `"a\"b"`},
				{Type: Ident, Literal: `'c'`},
			},
		},
		{
			Input: "if while else do switch case sizeof",
			Want: []Token{
				{Type: SpParen, Literal: "if"},
				{Type: SpParen, Literal: "while"},
				{Type: SpNparen, Literal: "else"},
				{Type: SpNparen, Literal: "do"},
				{Type: Swstmt, Literal: "switch"},
				{Type: Casestmt, Literal: "case"},
				{Type: Ident, Literal: "sizeof"},
			},
		},
		{
			Input: "foo bar",
			Want: []Token{
				{Type: Decl, Literal: "foo"},
				{Type: Ident, Literal: "bar"},
			},
		},
		{
			Input: "a // b",
			Want: []Token{
				{Type: Ident, Literal: "a"},
				{Type: Comment, Literal: "//"},
				{Type: Ident, Literal: "b"},
			},
		},
		{
			Input: "f(a[1], b.c) ? d : e",
			Want: []Token{
				{Type: Ident, Literal: "f"},
				{Type: Lparen, Literal: "("},
				{Type: Ident, Literal: "a"},
				{Type: Lparen, Literal: "["},
				{Type: Ident, Literal: "1"},
				{Type: Rparen, Literal: "]"},
				{Type: Comma, Literal: ","},
				{Type: Ident, Literal: "b"},
				{Type: Period, Literal: "."},
				{Type: Ident, Literal: "c"},
				{Type: Rparen, Literal: ")"},
				{Type: Question, Literal: "?"},
				{Type: Ident, Literal: "d"},
				{Type: Colon, Literal: ":"},
				{Type: Ident, Literal: "e"},
			},
		},
		{
			Input: "{\n}",
			Want: []Token{
				{Type: Lbrace, Literal: "{"},
				{Type: Newline, Literal: "\n"},
				{Type: Rbrace, Literal: "}"},
			},
		},
	}
	for _, d := range data {
		got := lexAll(d.Input, Default())
		if diff := cmp.Diff(d.Want, got); diff != "" {
			t.Errorf("%q: tokens mismatched (-want +got):\n%s", d.Input, diff)
		}
	}
}

func TestLexerTypes(t *testing.T) {
	cfg := Default()
	cfg.Types = []string{"size_t"}

	got := lexAll("size_t", cfg)
	if len(got) != 1 || got[0].Type != Decl {
		t.Errorf("size_t: expected a declaration keyword, got %v", got)
	}
}

func TestIsPrototype(t *testing.T) {
	data := []struct {
		Input string
		Want  bool
	}{
		{Input: "(void);", Want: true},
		{Input: "(int a, int b), *g(void);", Want: true},
		{Input: "(void)\n", Want: false},
		{Input: "(int argc, char **argv) {", Want: false},
		{Input: "(){ if (a) b(); }", Want: false},
		{Input: "(int (*cb)(void)) ;", Want: true},
		{Input: "(a, f(b));", Want: true},
	}
	for _, d := range data {
		if got := isPrototype([]byte(d.Input)); got != d.Want {
			t.Errorf("%q: prototype mismatched! want %t, got %t", d.Input, d.Want, got)
		}
	}
}

// lexAll gives the tokens of str up to, but without, the end of input.
func lexAll(str string, cfg Config) []Token {
	f, _ := New(io.Discard, WithConfig(cfg))
	f.reset(strings.NewReader(str))
	f.fill()

	var list []Token
	for i := 0; i < 1000; i++ {
		tok := f.lex()
		if tok.Type == EOF {
			break
		}
		list = append(list, tok)
	}
	return list
}
