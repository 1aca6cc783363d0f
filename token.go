package indent

import (
	"fmt"
)

const (
	EOF rune = -(iota + 1)
	Newline
	FormFeed
	Preesc
	Comment
	Lparen
	Rparen
	Lbrace
	Rbrace
	UnaryOp
	BinaryOp
	PostOp
	Question
	Colon
	Comma
	Period
	Semicolon
	Casestmt
	Decl
	Ident
	Swstmt
	SpParen
	SpNparen
)

type Token struct {
	Literal string
	Type    rune
}

func createToken(str string, kind rune) Token {
	return Token{
		Literal: str,
		Type:    kind,
	}
}

func (t Token) isLineComment() bool {
	return t.Type == Comment && t.Literal == "//"
}

func (t Token) String() string {
	var prefix string
	switch t.Type {
	default:
		prefix = "unknown"
	case EOF:
		return "<eof>"
	case Newline:
		return "<newline>"
	case FormFeed:
		return "<formfeed>"
	case Preesc:
		return "<preesc>"
	case Lbrace:
		return "<lbrace>"
	case Rbrace:
		return "<rbrace>"
	case Question:
		return "<question>"
	case Colon:
		return "<colon>"
	case Comma:
		return "<comma>"
	case Period:
		return "<period>"
	case Semicolon:
		return "<semicolon>"
	case Comment:
		prefix = "comment"
	case Lparen:
		prefix = "lparen"
	case Rparen:
		prefix = "rparen"
	case UnaryOp:
		prefix = "unary"
	case BinaryOp:
		prefix = "binary"
	case PostOp:
		prefix = "postop"
	case Casestmt:
		prefix = "case"
	case Decl:
		prefix = "decl"
	case Ident:
		prefix = "ident"
	case Swstmt:
		prefix = "switch"
	case SpParen:
		prefix = "sp-paren"
	case SpNparen:
		prefix = "sp-nparen"
	}
	return fmt.Sprintf("<%s(%s)>", prefix, t.Literal)
}

const (
	nl        = '\n'
	ff        = '\f'
	space     = ' '
	tab       = '\t'
	backspace = '\b'
	backslash = '\\'
	squote    = '\''
	dquote    = '"'
	dot       = '.'
	slash     = '/'
	star      = '*'
	pound     = '#'
	equal     = '='
	minus     = '-'
	plus      = '+'
	langle    = '<'
	rangle    = '>'
	bang      = '!'
	lparen    = '('
	rparen    = ')'
	lsquare   = '['
	rsquare   = ']'
	lcurly    = '{'
	rcurly    = '}'
	comma     = ','
	colon     = ':'
	semicolon = ';'
	question  = '?'
	uscore    = '_'
)

func isBlank(b byte) bool {
	return b == space || b == tab
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHex(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == uscore
}

func isAlnum(b byte) bool {
	return isLetter(b) || isDigit(b) || b == '$' || b >= 0x80
}
