package indent

import (
	"bytes"
)

// lex scans the next token from the input. Besides the kind of the token,
// it maintains the lexical flags of the parser state: whether the token
// starts in column 1, whether an operator at this point would be unary and
// whether the last word was a keyword.
func (f *Formatter) lex() Token {
	ps := &f.ps
	ps.col1 = ps.lastNL
	ps.lastNL = false
	for isBlank(f.in.curr()) {
		ps.col1 = false
		f.advance()
	}
	if c := f.in.curr(); isAlnum(c) || (c == dot && isDigit(f.in.at(1))) {
		return f.lexWord()
	}

	var (
		c     = f.in.curr()
		str   = []byte{c}
		end   = f.in.atEnd()
		kind  rune
		unary bool
	)
	accept := func() {
		str = append(str, f.in.curr())
		f.advance()
	}
	f.advance()

	switch c {
	case nl:
		unary = ps.lastUnary
		ps.lastNL = true
		kind = Newline
		if end {
			kind = EOF
		}
	case squote, dquote:
		str = f.lexLiteral(str)
		kind = Ident
	case lparen, lsquare:
		unary = true
		kind = Lparen
	case rparen, rsquare:
		kind = Rparen
	case pound:
		unary = ps.lastUnary
		kind = Preesc
	case question:
		unary = true
		kind = Question
	case colon:
		unary = true
		kind = Colon
	case semicolon:
		unary = true
		kind = Semicolon
	case lcurly:
		unary = true
		kind = Lbrace
	case rcurly:
		unary = true
		kind = Rbrace
	case ff:
		unary = ps.lastUnary
		ps.lastNL = true
		kind = FormFeed
	case comma:
		unary = true
		kind = Comma
	case dot:
		kind = Period
	case minus, plus:
		kind = f.operator()
		unary = true
		switch next := f.in.curr(); {
		case next == c:
			accept()
			if f.lastCode == Ident || f.lastCode == Rparen {
				kind = PostOp
				if ps.lastUnary {
					kind = UnaryOp
				}
				unary = false
			}
		case next == equal:
			accept()
		case next == rangle && c == minus:
			accept()
			if !f.cfg.PointerBinop {
				unary = false
				kind = UnaryOp
				ps.wantBlank = false
			}
		}
	case equal:
		if ps.inOrSt {
			ps.blockInit = true
		}
		if f.in.curr() == equal {
			accept()
		}
		kind = BinaryOp
		unary = true
	case rangle, langle, bang:
		if n := f.in.curr(); n == rangle || n == langle || n == equal {
			accept()
		}
		if f.in.curr() == equal {
			accept()
		}
		kind = f.operator()
		unary = true
	default:
		if c == slash && (f.in.curr() == star || f.in.curr() == slash) {
			accept()
			kind = Comment
			unary = ps.lastUnary
			break
		}
		for n := f.in.curr(); n == str[len(str)-1] || n == equal; n = f.in.curr() {
			accept()
		}
		kind = f.operator()
		unary = true
	}
	if kind != Newline {
		f.lStruct = false
		f.lastCode = kind
	}
	ps.lastUnary = unary
	return createToken(string(str), kind)
}

func (f *Formatter) operator() rune {
	if f.ps.lastUnary {
		return UnaryOp
	}
	return BinaryOp
}

// lexLiteral copies a string or character constant. A literal is never
// continued on the next line unless the newline is escaped.
func (f *Formatter) lexLiteral(str []byte) []byte {
	quote := str[0]
	for {
		c := f.in.curr()
		if c == nl {
			f.diag(Warning, "Unterminated literal")
			break
		}
		str = append(str, c)
		f.advance()
		if c == backslash {
			if f.in.curr() == nl {
				f.line++
			}
			str = append(str, f.in.curr())
			f.advance()
			continue
		}
		if c == quote {
			break
		}
	}
	return str
}

func (f *Formatter) lexWord() Token {
	ps := &f.ps

	var word []byte
	if c := f.in.curr(); isDigit(c) || c == dot {
		word = f.lexNumber()
	} else {
		for isAlnum(f.in.curr()) {
			word = append(word, f.in.curr())
			f.advance()
		}
	}
	for isBlank(f.in.curr()) {
		f.advance()
	}
	str := string(word)

	ps.isKeyword = false
	ps.isSizeof = false
	if f.lStruct {
		f.lStruct = false
		f.lastCode = Ident
		ps.lastUnary = true
		return createToken(str, Decl)
	}
	ps.lastUnary = false
	f.lastCode = Ident

	if kw := lookup(str, f.types); kw != kwNone {
		ps.isKeyword = true
		ps.lastUnary = true
		switch kw {
		case kwSwitch:
			return createToken(str, Swstmt)
		case kwCase:
			return createToken(str, Casestmt)
		case kwStruct:
			if ps.parenDepth > 0 {
				break
			}
			f.lStruct = true
			f.lastCode = Decl
			return createToken(str, Decl)
		case kwDecl:
			if ps.parenDepth > 0 {
				ps.castMask |= 1 << ps.parenDepth
				break
			}
			f.lastCode = Decl
			return createToken(str, Decl)
		case kwParen:
			return createToken(str, SpParen)
		case kwNparen:
			return createToken(str, SpNparen)
		case kwSizeof:
			ps.isSizeof = true
			return createToken(str, Ident)
		default:
			return createToken(str, Ident)
		}
	}

	next := f.in.curr()
	if next == lparen && ps.tos() <= 1 && ps.indLevel == 0 && !isPrototype(f.in.rest()) {
		ps.procname = str
		ps.inParamDecl = true
		f.rparenCount = 1
	}
	// a name followed by another name or a pointer, right after the end of
	// a statement, is most likely a type defined with typedef.
	if ((next == star && f.in.at(1) != equal) || isLetter(next)) && ps.parenDepth == 0 && !ps.blockInit {
		switch ps.lastToken {
		case Rparen, Semicolon, Decl, Lbrace, Rbrace:
			ps.isKeyword = true
			ps.lastUnary = true
			f.lastCode = Decl
			return createToken(str, Decl)
		}
	}
	return createToken(str, Ident)
}

func (f *Formatter) lexNumber() []byte {
	var (
		word    []byte
		seenDot bool
		seenExp bool
	)
	accept := func() {
		word = append(word, f.in.curr())
		f.advance()
	}
	if f.in.curr() == '0' && (f.in.at(1) == 'x' || f.in.at(1) == 'X') {
		accept()
		accept()
		for isHex(f.in.curr()) {
			accept()
		}
	} else {
		for {
			if f.in.curr() == dot {
				if seenDot {
					break
				}
				seenDot = true
			}
			accept()
			c := f.in.curr()
			if isDigit(c) || c == dot {
				continue
			}
			if (c != 'e' && c != 'E') || seenExp {
				break
			}
			seenExp, seenDot = true, true
			accept()
			if c := f.in.curr(); c == plus || c == minus {
				accept()
			}
			if !isDigit(f.in.curr()) {
				break
			}
		}
	}
	var unsigned, long bool
	for {
		switch c := f.in.curr(); {
		case !unsigned && (c == 'u' || c == 'U'):
			accept()
			unsigned = true
		case !long && (c == 'l' || c == 'L'):
			if f.in.at(1) == c {
				accept()
			}
			accept()
			long = true
		default:
			return word
		}
	}
}

// isPrototype reports whether the text following a name looks like the
// argument list of a declaration or a call rather than the one of a
// function definition. Only the text up to the parenthesis closing the
// argument list is considered.
func isPrototype(rest []byte) bool {
	var depth int
	for i, c := range rest {
		switch c {
		case lparen:
			depth++
		case rparen:
			if depth--; depth > 0 {
				break
			}
			next := bytes.TrimLeft(rest[i+1:], " \t")
			return len(next) > 0 && (next[0] == semicolon || next[0] == comma)
		}
	}
	return false
}
