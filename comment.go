package indent

import (
	"bytes"

	"github.com/midbel/indent/wrap"
)

// comment places the comment starting with tok. Box comments and line
// comments are copied as they are, other comments are refilled.
func (f *Formatter) comment(tok Token) {
	var (
		ps     = &f.ps
		saved  = ps.justSawDecl
		maxCol = f.cfg.MaxColumn
		alone  = len(f.lab) == 0 && len(f.code) == 0
	)
	ps.boxCom = false
	if ps.col1 && !f.cfg.FormatCol1 {
		ps.boxCom = true
		ps.comCol = 1
	} else {
		if c := f.in.curr(); tok.isLineComment() || c == minus || c == star || c == nl {
			ps.boxCom = true
		}
		if alone {
			ps.comCol = (ps.indLevel-f.cfg.Unindent)*f.cfg.IndentSize + 1
			maxCol = f.cfg.BlockCommentMaxColumn
			if ps.comCol <= 1 {
				ps.comCol = 1
				if !f.cfg.FormatCol1 {
					ps.comCol++
				}
			}
		} else {
			target := 1
			if len(f.code) > 0 {
				target = f.countSpaces(f.codeTarget(), f.code)
			} else if len(f.lab) > 0 {
				target = f.countSpaces(f.labelTarget(), f.lab)
			}
			ps.comCol = f.cfg.CommentColumn
			if ps.declOnLine || ps.indLevel == 0 {
				ps.comCol = f.cfg.DeclCommentColumn
			}
			if ps.comCol < target {
				ts := f.cfg.TabSize
				ps.comCol = (target+ts-1)/ts*ts + 1
			}
			if ps.comCol+24 > maxCol {
				maxCol = ps.comCol + 24
			}
		}
	}
	if alone && f.cfg.BlankBeforeBlockComment && !f.afterComment && ps.lastToken != Lbrace {
		f.prefixBlank = true
	}
	f.afterComment = alone

	ps.commentDelta = 0
	ps.nCommentDelta = 0
	if ps.boxCom {
		if prefix := f.in.consumed(); len(prefix) >= len(tok.Literal) {
			ps.nCommentDelta = 1 - f.countSpaces(1, prefix[:len(prefix)-len(tok.Literal)])
		}
		f.com = append(f.com, tok.Literal...)
		f.copyComment(tok.isLineComment())
	} else {
		f.fillComment(maxCol, alone)
	}
	ps.justSawDecl = saved
}

// copyComment copies the rest of a comment verbatim. Every line of a block
// comment is flushed on its own so that it keeps its shape.
func (f *Formatter) copyComment(line bool) {
	if line {
		for f.in.curr() != nl {
			f.com = append(f.com, f.in.curr())
			f.advance()
		}
		return
	}
	for {
		c := f.in.curr()
		if c == nl {
			if f.in.atEnd() {
				f.diag(Error, "Unterminated comment")
				f.dumpLine()
				return
			}
			if len(f.com) == 0 {
				f.com = append(f.com, space)
			}
			f.dumpLine()
			f.line++
			f.advance()
			continue
		}
		f.com = append(f.com, c)
		f.advance()
		if c == star && f.in.curr() == slash {
			f.com = append(f.com, slash)
			f.advance()
			return
		}
	}
}

// fillComment reads the text of a comment up to its closing delimiter and
// fills it between the comment column and maxCol.
func (f *Formatter) fillComment(maxCol int, alone bool) {
	var (
		body   []byte
		closed bool
	)
	for {
		c := f.in.curr()
		if c == nl {
			if f.in.atEnd() {
				f.diag(Error, "Unterminated comment")
				break
			}
			f.line++
		}
		f.advance()
		if c == star && f.in.curr() == slash {
			f.advance()
			closed = true
			break
		}
		body = append(body, c)
	}
	lines := f.layoutComment(body, maxCol-f.ps.comCol-2, alone)
	for _, line := range lines[:len(lines)-1] {
		f.com = append(f.com, line...)
		f.dumpLine()
	}
	f.com = append(f.com, lines[len(lines)-1]...)
	if !closed {
		f.dumpLine()
	}
}

func (f *Formatter) layoutComment(body []byte, width int, alone bool) []string {
	if width < 1 {
		width = 1
	}
	var (
		paras = commentParagraphs(body)
		text  []string
	)
	for i, p := range paras {
		if i > 0 {
			text = append(text, "")
		}
		text = append(text, wrap.Lines(p, width)...)
	}
	if n := len(text); n > 0 && len(text[n-1])+3 > width {
		last := wrap.Lines(text[n-1], width-3)
		text = append(text[:n-1], last...)
	}
	if len(text) == 0 {
		return []string{"/* */"}
	}

	var (
		cont  = " * "
		blank = " *"
		lines []string
	)
	if !f.cfg.StarComments {
		cont, blank = "   ", " "
	}
	delim := alone && f.cfg.CommentDelimBlank && len(text) > 1
	if delim {
		lines = append(lines, "/*")
	}
	for i, t := range text {
		switch {
		case t == "":
			lines = append(lines, blank)
		case i == 0 && !delim:
			lines = append(lines, "/* "+t)
		default:
			lines = append(lines, cont+t)
		}
	}
	if delim {
		lines = append(lines, " */")
	} else {
		lines[len(lines)-1] += " */"
	}
	return lines
}

// commentParagraphs splits the text of a comment on its empty lines. The
// leading star of continuation lines is dropped.
func commentParagraphs(body []byte) []string {
	var (
		paras []string
		curr  []byte
	)
	for i, line := range bytes.Split(body, []byte{nl}) {
		line = bytes.TrimLeft(line, " \t")
		if i > 0 && len(line) > 0 && line[0] == star {
			line = bytes.TrimLeft(line[1:], " \t")
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			if len(curr) > 0 {
				paras = append(paras, string(curr))
				curr = curr[:0]
			}
			continue
		}
		if len(curr) > 0 {
			curr = append(curr, space)
		}
		curr = append(curr, line...)
	}
	if len(curr) > 0 {
		paras = append(paras, string(curr))
	}
	return paras
}
