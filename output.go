package indent

import (
	"bytes"
	"fmt"
)

// dumpLine writes the label, code and comment buffers as one output line
// and prepares the state for the next line.
func (f *Formatter) dumpLine() {
	ps := &f.ps
	if ps.procname != "" {
		ps.indLevel = 0
		ps.procname = ""
	}
	if len(f.lab) == 0 && len(f.code) == 0 && len(f.com) == 0 {
		if f.suppressBlank > 0 {
			f.suppressBlank--
		} else {
			ps.blankLine = true
			f.blankLines++
		}
	} else if !f.inhibit {
		f.suppressBlank = 0
		ps.blankLine = false
		f.writeBlankLines()
		if ps.indLevel == 0 {
			ps.indStmt = false
		}
		if len(f.lab) > 0 || len(f.code) > 0 {
			f.stats.CodeLines++
		}
		col := 1
		if len(f.lab) > 0 {
			col = f.writeLabel()
		}
		ps.pcase = false
		if len(f.code) > 0 {
			col = f.writeCode(col)
		}
		if len(f.com) > 0 {
			f.writeComment(col)
		}
		if ps.useFF {
			f.out.WriteByte(ff)
		} else {
			f.out.WriteByte(nl)
		}
		f.stats.OutputLines++
		f.prefixBlank = false
		f.procBlank = f.postfixBlank
		f.postfixBlank = false
	}
	ps.declOnLine = ps.inDecl
	ps.indStmt = ps.inStmt && !ps.inDecl
	ps.useFF = false

	f.lab = f.lab[:0]
	f.code = f.code[:0]
	f.com = f.com[:0]

	ps.indLevel = ps.followLevel
	ps.parenLevel = ps.parenDepth
	if ps.parenLevel > 0 {
		f.parenTarget = -ps.parenIndent(ps.parenLevel - 1)
	}
	f.notFirstLine = true
}

// writeBlankLines writes the blank lines preceding the line being dumped.
func (f *Formatter) writeBlankLines() {
	n := f.blankLines
	if f.cfg.SwallowBlankLines {
		n = 0
	} else if limit := f.cfg.MaxBlankLines; limit > 0 && n > limit {
		n = limit
	}
	if (f.prefixBlank || f.procBlank) && f.notFirstLine && n == 0 {
		n = 1
	}
	for ; n > 0; n-- {
		f.out.WriteByte(nl)
	}
	f.blankLines = 0
}

var (
	dirElse  = []byte("#else")
	dirEndif = []byte("#endif")
)

func (f *Formatter) writeLabel() int {
	lab := bytes.TrimRight(f.lab, " \t")
	col := f.padOutput(1, f.labelTarget())
	if !bytes.HasPrefix(lab, dirElse) && !bytes.HasPrefix(lab, dirEndif) {
		f.out.Write(lab)
		return f.countSpaces(col, lab)
	}
	lab = bytes.TrimSuffix(lab, []byte{nl})
	i := 1
	for i < len(lab) && lab[i] >= 'a' && lab[i] <= 'z' {
		i++
	}
	f.out.Write(lab[:i])
	if rest := bytes.TrimLeft(lab[i:], " \t"); len(rest) > 0 {
		if bytes.HasPrefix(rest, []byte("/*")) {
			fmt.Fprintf(f.out, "\t%s", rest)
		} else {
			fmt.Fprintf(f.out, "\t/* %s */", rest)
		}
	}
	return f.countSpaces(col, f.lab)
}

func (f *Formatter) writeCode(col int) int {
	ps := &f.ps
	target := f.codeTarget()
	for i := 0; i < ps.parenDepth && i < len(ps.parenIndents); i++ {
		if ps.parenIndents[i] >= 0 {
			ps.parenIndents[i] = -(ps.parenIndents[i] + target)
		}
	}
	code := bytes.TrimRight(f.code, " \t")
	if len(code) == 0 {
		return col
	}
	col = f.padOutput(col, target)
	f.out.Write(code)
	return f.countSpaces(col, code)
}

func (f *Formatter) writeComment(col int) {
	ps := &f.ps
	var (
		target = ps.comCol + ps.commentDelta
		com    = f.com
		ts     = f.cfg.TabSize
	)
	for len(com) > 0 && com[0] == tab {
		com = com[1:]
		target += ts
	}
	for target <= 0 {
		switch {
		case len(com) > 0 && com[0] == space:
			target++
			com = com[1:]
		case len(com) > 0 && com[0] == tab:
			target = (target-1)/ts*ts + ts + 1
			com = com[1:]
		default:
			target = 1
		}
	}
	if col > target {
		f.out.WriteByte(nl)
		f.stats.OutputLines++
		col = 1
	}
	com = bytes.TrimRight(com, " \t\n\f\v\r")
	if len(com) > 0 {
		f.padOutput(col, target)
	}
	if !ps.boxCom && f.cfg.StarComments && len(com) > 1 && com[1] != star {
		if com[0] == space && com[1] == space {
			com[1] = star
		} else {
			switch com[0] {
			case tab:
				f.out.WriteString(" *")
			case star:
				f.out.WriteString(" ")
			default:
				f.out.WriteString(" * ")
			}
		}
	}
	f.out.Write(com)
	ps.commentDelta = ps.nCommentDelta
	f.stats.CommentLines++
}

// codeTarget gives the column where the code of the current line starts.
func (f *Formatter) codeTarget() int {
	ps := &f.ps
	target := f.cfg.IndentSize*ps.indLevel + 1
	if ps.parenLevel > 0 {
		t := f.parenTarget
		if w := f.countSpaces(t, f.code) - f.cfg.MaxColumn; w > 0 && f.countSpaces(target, f.code) <= f.cfg.MaxColumn {
			if t -= w + 1; t > target {
				target = t
			}
		} else {
			target = t
		}
	} else if ps.indStmt {
		target += f.continuation()
	}
	return target
}

func (f *Formatter) continuation() int {
	if f.cfg.ContinuationIndent > 0 {
		return f.cfg.ContinuationIndent
	}
	return f.cfg.IndentSize
}

func (f *Formatter) labelTarget() int {
	switch {
	case f.ps.pcase:
		return int(f.caseInd*float64(f.cfg.IndentSize)) + 1
	case len(f.lab) > 0 && f.lab[0] == pound:
		return 1
	default:
		return f.cfg.IndentSize*(f.ps.indLevel-f.cfg.LabelOffset) + 1
	}
}

// padOutput writes tabs then blanks to move from column cur to column
// target. It returns the column reached.
func (f *Formatter) padOutput(cur, target int) int {
	if cur >= target {
		return cur
	}
	ts := f.cfg.TabSize
	for next := (cur-1)/ts*ts + ts + 1; next <= target; next = (cur-1)/ts*ts + ts + 1 {
		f.out.WriteByte(tab)
		cur = next
	}
	for ; cur < target; cur++ {
		f.out.WriteByte(space)
	}
	return target
}

func (f *Formatter) countSpaces(cur int, text []byte) int {
	return columns(cur, text, f.cfg.TabSize)
}

// columns gives the column reached after printing text from column cur
// with tab stops every ts columns.
func columns(cur int, text []byte, ts int) int {
	for _, b := range text {
		switch b {
		case nl, ff:
			cur = 1
		case tab:
			cur = (cur-1)/ts*ts + ts + 1
		case backspace:
			cur--
		default:
			cur++
		}
	}
	return cur
}

func (f *Formatter) diag(level Severity, format string, args ...any) {
	d := Diagnostic{
		Severity: level,
		Line:     f.line,
		Message:  fmt.Sprintf(format, args...),
	}
	f.diags = append(f.diags, d)
	f.out.WriteString(d.String())
	f.out.WriteByte(nl)

	if level == Error {
		f.failed = true
		f.logger.Error(d.Message, "line", d.Line)
	} else {
		f.logger.Warn(d.Message, "line", d.Line)
	}
}
