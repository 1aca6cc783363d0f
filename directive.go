package indent

import (
	"bytes"
)

// maxIfDepth is the number of nested conditionals whose state is kept.
const maxIfDepth = 5

type directive int8

const (
	dirNone directive = iota
	dirOn
	dirOff
)

func (d directive) String() string {
	switch d {
	case dirOn:
		return "on"
	case dirOff:
		return "off"
	default:
		return "none"
	}
}

var (
	prefixIf    = []byte("#if")
	prefixElse  = []byte("#else")
	prefixElif  = []byte("#elif")
	prefixEndif = []byte("#endif")
)

// preprocessor moves a whole preprocessor line in the label buffer. A
// comment ending the line is pushed back in the input to be placed like any
// other trailing comment.
func (f *Formatter) preprocessor() {
	if len(f.com) > 0 || len(f.lab) > 0 || len(f.code) > 0 {
		f.dumpLine()
	}
	f.lab = append(f.lab, pound)
	for isBlank(f.in.curr()) {
		f.advance()
	}
	var (
		inComment bool
		quote     byte
		comStart  int
		comEnd    int
	)
	for f.in.curr() != nl || (inComment && !f.in.atEnd()) {
		c := f.in.curr()
		f.lab = append(f.lab, c)
		f.advance()
		switch c {
		case backslash:
			if inComment {
				break
			}
			if f.in.curr() == nl {
				f.line++
			}
			f.lab = append(f.lab, f.in.curr())
			f.advance()
		case slash:
			if f.in.curr() == star && !inComment && quote == 0 {
				inComment = true
				f.lab = append(f.lab, star)
				f.advance()
				comStart = len(f.lab) - 2
			}
		case star:
			if f.in.curr() == slash && inComment {
				inComment = false
				f.lab = append(f.lab, slash)
				f.advance()
				comEnd = len(f.lab)
			}
		case dquote, squote:
			if inComment {
				break
			}
			if quote == 0 {
				quote = c
			} else if quote == c {
				quote = 0
			}
		case nl:
			f.line++
		}
	}
	f.lab = bytes.TrimRight(f.lab, " \t")
	if comEnd > 0 && len(f.lab) == comEnd {
		text := make([]byte, 0, comEnd-comStart+1)
		text = append(text, f.lab[comStart:comEnd]...)
		text = append(text, space)
		f.lab = bytes.TrimRight(f.lab[:comStart], " \t")
		f.in.unread(text)
	}
	f.ps.pcase = false
	f.conditional()
}

// conditional saves the parser state at #if and restores it at #else so
// that every branch of a conditional starts from the same state.
func (f *Formatter) conditional() {
	switch {
	case bytes.HasPrefix(f.lab, prefixIf):
		if f.states.Len() >= maxIfDepth {
			f.diag(Error, "#if stack overflow")
			break
		}
		f.states.Push(f.ps.clone())
	case bytes.HasPrefix(f.lab, prefixElse) || bytes.HasPrefix(f.lab, prefixElif):
		if f.states.Len() == 0 {
			f.diag(Error, "Unmatched %s", f.lab[:5])
			break
		}
		f.ps = f.states.Curr().clone()
	case bytes.HasPrefix(f.lab, prefixEndif):
		if f.states.Len() == 0 {
			f.diag(Error, "Unmatched #endif")
			break
		}
		f.states.Pop()
	}
}

// parseDirective recognizes the comments turning formatting on and off.
// They must be alone on their line.
func parseDirective(line []byte) directive {
	p := bytes.TrimLeft(line, " \t")
	if !bytes.HasPrefix(p, []byte("/*")) {
		return dirNone
	}
	p = bytes.TrimLeft(p[2:], " \t")
	if !bytes.HasPrefix(p, []byte("INDENT")) {
		return dirNone
	}
	p = bytes.TrimLeft(p[6:], " \t")

	dir := dirNone
	switch {
	case bytes.HasPrefix(p, []byte("*")):
		dir = dirOn
	case bytes.HasPrefix(p, []byte("ON")):
		dir, p = dirOn, p[2:]
	case bytes.HasPrefix(p, []byte("OFF")):
		dir, p = dirOff, p[3:]
	}
	if p = bytes.TrimLeft(p, " \t"); !bytes.Equal(p, []byte("*/\n")) {
		return dirNone
	}
	return dir
}
