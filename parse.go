package indent

import (
	"fmt"
)

// maxStackDepth bounds the context stack. Deeper nesting aborts formatting.
const maxStackDepth = 256

type event int8

const (
	evNone event = iota
	evSemicolon
	evDecl
	evLbrace
	evRbrace
	evIf
	evWhile
	evFor
	evDo
	evElse
	evSwitch
)

// parse updates the context stack with the given event then applies all the
// reductions possible.
func (f *Formatter) parse(ev event) {
	ps := &f.ps
	for ps.top().ctx == ctxIfHead && ev != evElse {
		ps.setTop(ctxStmt)
		f.reduce()
	}
	switch ev {
	case evDecl:
		ps.searchBrace = f.cfg.BraceJoin
		if ps.top().ctx != ctxDecl {
			f.breakComma = true
			ps.push(ctxDecl, ps.followLevel)
		}
	case evIf, evDo, evFor:
		if ev == evIf && ps.top().ctx == ctxElseHead && f.cfg.ElseIf {
			ps.followLevel = ps.top().indent
			ps.stack.Pop()
		}
		ctx := ctxIf
		if ev == evDo {
			ctx = ctxDo
		} else if ev == evFor {
			ctx = ctxFor
		}
		ps.indLevel = ps.followLevel
		ps.push(ctx, ps.indLevel)
		ps.followLevel++
		ps.searchBrace = f.cfg.BraceJoin
	case evLbrace:
		f.breakComma = false
		switch top := ps.top().ctx; top {
		case ctxStmt, ctxDecl, ctxStmtList:
			ps.followLevel++
		default:
			if len(f.code) == 0 {
				ps.indLevel--
				if top == ctxSwitch && f.cfg.CaseIndent >= 1 {
					ps.indLevel--
				}
			}
		}
		ps.push(ctxLbrace, ps.indLevel)
		ps.push(ctxStmt, ps.followLevel)
	case evWhile:
		if ps.top().ctx == ctxDoHead {
			ps.indLevel = ps.top().indent
			ps.followLevel = ps.indLevel
			ps.push(ctxWhile, ps.followLevel)
		} else {
			ps.push(ctxWhile, ps.followLevel)
			ps.followLevel++
			ps.searchBrace = f.cfg.BraceJoin
		}
	case evElse:
		if ps.top().ctx != ctxIfHead {
			f.diag(Error, "Unmatched 'else'")
			break
		}
		ps.indLevel = ps.top().indent
		ps.followLevel = ps.indLevel + 1
		ps.setTop(ctxElseHead)
		ps.searchBrace = f.cfg.BraceJoin || f.cfg.ElseIf
	case evRbrace:
		if ps.below().ctx != ctxLbrace {
			f.diag(Error, "Stmt nesting error.")
			break
		}
		top := ps.reduceTo(ctxStmt)
		ps.indLevel = top.indent
		ps.followLevel = top.indent
	case evSwitch:
		ps.stack.Push(frame{
			ctx:     ctxSwitch,
			indent:  ps.followLevel,
			caseInd: f.caseInd,
		})
		f.caseInd = float64(ps.followLevel) + f.cfg.CaseIndent
		ps.followLevel = int(float64(ps.followLevel) + f.cfg.CaseIndent + 1)
		ps.searchBrace = f.cfg.BraceJoin
	case evSemicolon:
		f.breakComma = false
		ps.push(ctxStmt, ps.indLevel)
	default:
		f.diag(Error, "Unknown code to parser")
		return
	}
	if ps.stack.Len() > maxStackDepth {
		f.fatal(fmt.Errorf("%w (%d frames)", ErrStackOverflow, ps.stack.Len()))
		return
	}
	f.reduce()
}

func (f *Formatter) reduce() {
	ps := &f.ps
	for {
		switch ps.top().ctx {
		case ctxStmt:
			switch ps.below().ctx {
			case ctxStmt, ctxStmtList:
				ps.reduceTo(ctxStmtList)
			case ctxDo:
				top := ps.reduceTo(ctxDoHead)
				ps.followLevel = top.indent
			case ctxIf:
				ps.reduceTo(ctxIfHead)
				i := ps.tos() - 1
				for ; i >= 0; i-- {
					ctx := ps.stack.At(i).ctx
					if ctx == ctxStmt || ctx == ctxStmtList || ctx == ctxLbrace {
						break
					}
				}
				ps.followLevel = ps.stack.At(i).indent
			case ctxSwitch:
				f.caseInd = ps.below().caseInd
				top := ps.reduceTo(ctxStmt)
				ps.followLevel = top.indent
			case ctxDecl, ctxElseHead, ctxFor, ctxWhile:
				top := ps.reduceTo(ctxStmt)
				ps.followLevel = top.indent
			default:
				return
			}
		case ctxWhile:
			if ps.below().ctx != ctxDoHead {
				return
			}
			ps.stack.Truncate(ps.stack.Len() - 2)
		default:
			return
		}
	}
}

func (e event) String() string {
	switch e {
	case evSemicolon:
		return "semicolon"
	case evDecl:
		return "decl"
	case evLbrace:
		return "lbrace"
	case evRbrace:
		return "rbrace"
	case evIf:
		return "if"
	case evWhile:
		return "while"
	case evFor:
		return "for"
	case evDo:
		return "do"
	case evElse:
		return "else"
	case evSwitch:
		return "switch"
	default:
		return "none"
	}
}
