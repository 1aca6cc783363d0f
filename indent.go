package indent

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/midbel/indent/internal/stack"
)

// maxLookahead bounds the text buffered while looking for the start of the
// statement following a control header.
const maxLookahead = 5000

type Option func(*Formatter) error

func WithConfig(cfg Config) Option {
	return func(f *Formatter) error {
		f.cfg = cfg.normalize()
		f.types = f.cfg.typenames()
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(f *Formatter) error {
		if logger == nil {
			return fmt.Errorf("logger: %w", ErrInvalidValue)
		}
		f.logger = logger
		return nil
	}
}

type Stats struct {
	CodeLines    int
	CommentLines int
	OutputLines  int
}

type Formatter struct {
	cfg    Config
	types  map[string]struct{}
	logger *slog.Logger

	out *bufio.Writer
	in  *input

	ps   parserState
	lab  []byte
	code []byte
	com  []byte

	line      int
	decInd    int
	diStack   stack.Stack[int]
	flushedNL bool
	forceNL   bool
	hdType    event
	scase     bool
	spSw      bool
	squest    int
	tabsToVar bool
	lastElse  bool
	caseInd   float64

	breakComma    bool
	prefixBlank   bool
	postfixBlank  bool
	procBlank     bool
	blankLines    int
	suppressBlank int
	rparenCount   int
	inhibit       bool
	parenTarget   int
	notFirstLine  bool

	lastCode rune
	lStruct  bool

	save     []byte
	saving   bool
	saveLine bool

	afterComment bool

	states stack.Stack[parserState]

	diags  []Diagnostic
	failed bool
	err    error
	stats  Stats
}

func New(w io.Writer, options ...Option) (*Formatter, error) {
	f := Formatter{
		out:    bufio.NewWriter(w),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	WithConfig(Default())(&f)
	for _, o := range options {
		if err := o(&f); err != nil {
			return nil, err
		}
	}
	return &f, nil
}

// Format reformats the C source read from r with the given configuration
// and writes the result to w.
func Format(r io.Reader, w io.Writer, cfg Config) error {
	f, err := New(w, WithConfig(cfg))
	if err != nil {
		return err
	}
	return f.Format(r)
}

func FormatString(str string, cfg Config) (string, error) {
	var buf strings.Builder
	err := Format(strings.NewReader(str), &buf, cfg)
	return buf.String(), err
}

func (f *Formatter) Diagnostics() []Diagnostic {
	return f.diags
}

func (f *Formatter) Stats() Stats {
	return f.stats
}

func (f *Formatter) reset(r io.Reader) {
	cfg, types, logger, out := f.cfg, f.types, f.logger, f.out
	*f = Formatter{
		cfg:    cfg,
		types:  types,
		logger: logger,
		out:    out,
		in:     newInput(r),
		line:   1,
	}
	f.ps.stack.Push(frame{ctx: ctxStmt})
	f.ps.lastNL = true
	f.ps.lastToken = Semicolon
	f.ps.blankLine = true
	f.diStack.Push(0)
}

// Format reformats the whole content of r. The returned error is a
// DiagnosticError when the input had structural errors, any other error
// means formatting was aborted.
func (f *Formatter) Format(r io.Reader) error {
	f.reset(r)
	f.fill()
	f.parse(evSemicolon)
	f.initialLevel()

	for f.err == nil {
		f.flushedNL = false
		tok, done := f.searchBrace(f.lex())
		if f.err != nil {
			break
		}
		if !done {
			f.lastElse = false
		}
		if tok.Type == EOF {
			f.finish()
			break
		}
		f.process(tok, f.ps.procname != "")
	}
	f.logger.Debug("formatting done",
		"code", f.stats.CodeLines,
		"comments", f.stats.CommentLines,
		"lines", f.stats.OutputLines,
	)
	if err := hasError(f.err, f.out.Flush()); err != nil {
		return err
	}
	if f.failed {
		return DiagnosticError{List: f.diags}
	}
	return nil
}

func (f *Formatter) finish() {
	if len(f.lab) > 0 || len(f.code) > 0 || len(f.com) > 0 {
		f.dumpLine()
	}
	if f.ps.tos() > 1 {
		f.diag(Error, "Missing braces at end of file.")
	}
}

func (f *Formatter) fatal(err error) {
	if f.err == nil {
		f.err = err
	}
}

// initialLevel infers the starting indentation from the leading blanks of
// the first line.
func (f *Formatter) initialLevel() {
	col := 1
	for _, b := range f.in.rest() {
		if b == space {
			col++
		} else if b == tab {
			col = columns(col, []byte{tab}, f.cfg.TabSize)
		} else {
			break
		}
	}
	if f.cfg.IndentSize > 0 && col > f.cfg.IndentSize {
		f.ps.indLevel = col / f.cfg.IndentSize
		f.ps.followLevel = f.ps.indLevel
	}
}

// searchBrace moves everything following a control header up to the start
// of the next statement into the lookahead buffer. The returned flag is set
// when the scan stopped on a token that must be processed immediately.
func (f *Formatter) searchBrace(tok Token) (Token, bool) {
	for f.ps.searchBrace && f.err == nil {
		switch tok.Type {
		case Newline:
			f.line++
			f.flushedNL = true
		case FormFeed:
		case Lbrace:
			if !f.saving {
				f.ps.searchBrace = false
				return tok, true
			}
			f.save[0] = lcurly
			f.switchBuffer()
		case Comment:
			if !f.flushedNL || f.saving {
				f.saveComment(tok)
				break
			}
			if done := f.startStatement(tok); done {
				return tok, true
			}
		default:
			if done := f.startStatement(tok); done {
				return tok, true
			}
		}
		if tok.Type != EOF {
			tok = f.lex()
		}
	}
	return tok, false
}

func (f *Formatter) startStatement(tok Token) bool {
	if f.flushedNL {
		f.forceNL = true
	}
	if tok.Type == SpParen && tok.Literal == "if" && f.lastElse {
		f.forceNL = false
	}
	if tok.Type == SpNparen && tok.Literal == "else" && lastByte(f.code) == rcurly {
		f.forceNL = false
	}
	if !f.saving {
		f.ps.searchBrace = false
		return true
	}
	if f.forceNL || f.saveLine {
		f.forceNL = false
		f.line--
		f.save = append(f.save, nl, space)
		f.flushedNL = false
	}
	f.save = append(f.save, tok.Literal...)
	f.ps.procname = ""
	f.switchBuffer()
	return false
}

func (f *Formatter) saveComment(tok Token) {
	if !f.saving {
		f.save = append(f.save[:0], space, space)
		f.saving = true
	} else {
		f.save = append(f.save, nl, space)
		f.line--
	}
	f.save = append(f.save, tok.Literal...)
	f.saveLine = tok.isLineComment()
	if f.saveLine {
		for f.in.curr() != nl {
			f.save = append(f.save, f.in.curr())
			f.advance()
			if len(f.save) >= maxLookahead {
				f.overflow()
				return
			}
		}
		return
	}
	for {
		c := f.in.curr()
		if f.in.atEnd() {
			f.save = append(f.save, star)
			break
		}
		f.save = append(f.save, c)
		f.advance()
		if c == star && f.in.curr() == slash {
			f.advance()
			break
		}
		if len(f.save) >= maxLookahead {
			f.overflow()
			return
		}
	}
	f.save = append(f.save, slash)
}

func (f *Formatter) overflow() {
	f.diag(Error, "Internal buffer overflow - Move big comment from right after if, while, or whatever.")
	f.fatal(ErrLookahead)
}

// switchBuffer stops the search and pushes the lookahead buffer back in
// front of the input.
func (f *Formatter) switchBuffer() {
	f.ps.searchBrace = false
	f.save = append(f.save, space)
	f.in.unread(f.save)
	f.save = nil
	f.saving = false
	f.saveLine = false
}

func (f *Formatter) process(tok Token, isProc bool) {
	ps := &f.ps
	switch tok.Type {
	case Comment, Newline, Preesc, FormFeed:
		if tok.Type != Comment && (tok.Type != Newline || !f.continuesDecl()) {
			f.forceNL = false
		}
	default:
		if f.forceNL && tok.Type != Semicolon && tok.Type != Lbrace {
			f.flushedNL = false
			f.dumpLine()
			ps.wantBlank = false
			f.forceNL = false
		}
		if ps.justSawDecl == 1 && f.cfg.BlankAfterDecl && tok.Type != Decl {
			f.prefixBlank = true
			ps.justSawDecl = 0
		}
		ps.inStmt = true
		f.afterComment = false
		if len(f.com) > 0 {
			f.code = append(f.code, space)
			f.code = append(f.code, f.com...)
			f.code = append(f.code, space)
			ps.wantBlank = false
			f.com = f.com[:0]
		}
	}

	switch tok.Type {
	case FormFeed:
		ps.useFF = true
		f.dumpLine()
		ps.wantBlank = false
	case Newline:
		if !f.continuesDecl() {
			f.dumpLine()
			ps.wantBlank = false
		}
		f.line++
	case Lparen:
		f.openParen(tok)
	case Rparen:
		f.closeParen(tok)
	case UnaryOp:
		f.blank()
		if ps.inDecl && !ps.blockInit {
			f.padCode(f.decInd - len(tok.Literal))
		}
		f.code = append(f.code, tok.Literal...)
		ps.wantBlank = false
	case BinaryOp:
		f.blank()
		f.code = append(f.code, tok.Literal...)
		ps.wantBlank = true
	case PostOp:
		f.code = append(f.code, tok.Literal...)
		ps.wantBlank = true
	case Question:
		f.squest++
		f.blank()
		f.code = append(f.code, question)
		ps.wantBlank = true
	case Casestmt:
		f.scase = true
		f.copyToken(tok)
	case Colon:
		f.colon()
	case Semicolon:
		f.semicolon()
	case Lbrace:
		f.openBrace()
	case Rbrace:
		f.closeBrace()
	case Swstmt:
		f.spSw = true
		f.hdType = evSwitch
		f.copyToken(tok)
	case SpParen:
		f.spSw = true
		switch tok.Literal {
		case "if":
			f.hdType = evIf
		case "while":
			f.hdType = evWhile
		default:
			f.hdType = evFor
		}
		f.copyToken(tok)
	case SpNparen:
		f.nonParenKeyword(tok)
	case Decl:
		f.declaration(tok)
	case Ident:
		f.identifier(tok, isProc)
	case Period:
		f.code = append(f.code, dot)
		ps.wantBlank = false
	case Comma:
		f.comma(isProc)
	case Preesc:
		f.preprocessor()
	case Comment:
		if f.flushedNL {
			f.flushedNL = false
			f.dumpLine()
			ps.wantBlank = false
			f.forceNL = false
		}
		f.comment(tok)
	default:
		f.fatal(fmt.Errorf("%w: %s at line %d", ErrToken, tok, f.line))
		return
	}
	if tok.Type != Comment && tok.Type != Newline && tok.Type != Preesc {
		ps.lastToken = tok.Type
	}
}

// continuesDecl reports whether a newline following a comma in a list of
// declarations is dropped. A break already requested by the comma is kept.
func (f *Formatter) continuesDecl() bool {
	ps := &f.ps
	return ps.lastToken == Comma && ps.parenDepth == 0 && !ps.blockInit && f.breakComma && len(f.com) == 0
}

func (f *Formatter) blank() {
	if f.ps.wantBlank {
		f.code = append(f.code, space)
	}
}

// padCode appends blanks to the code buffer until its width reaches n.
func (f *Formatter) padCode(n int) {
	shift := f.declShift()
	for f.codePos()-shift < n {
		f.code = append(f.code, space)
	}
}

// declShift is the distance between the column where the code of the
// current line starts and the previous tab stop.
func (f *Formatter) declShift() int {
	return (f.ps.indLevel * f.cfg.IndentSize) % f.cfg.TabSize
}

// codePos is the position reached by the end of the code buffer, counted
// from the tab stop preceding the start of the code.
func (f *Formatter) codePos() int {
	return columns(f.declShift()+1, f.code, f.cfg.TabSize) - 1
}

func (f *Formatter) copyToken(tok Token) {
	f.blank()
	f.code = append(f.code, tok.Literal...)
	f.ps.wantBlank = true
}

func (f *Formatter) openParen(tok Token) {
	ps := &f.ps
	ps.parenDepth++
	if ps.wantBlank && tok.Literal != "[" && (ps.lastToken != Ident || (ps.isKeyword && !ps.isSizeof)) {
		f.code = append(f.code, space)
	}
	if ps.inDecl && !ps.blockInit {
		f.padCode(f.decInd)
	}
	f.code = append(f.code, tok.Literal...)
	ps.setParenIndent(ps.parenDepth-1, len(f.code))
	ps.wantBlank = false
	if ps.inOrSt && tok.Literal == "(" && ps.tos() <= 2 {
		f.parse(evSemicolon)
		ps.inOrSt = false
	}
	if ps.isSizeof {
		ps.sizeofMask |= 1 << ps.parenDepth
	}
}

func (f *Formatter) closeParen(tok Token) {
	ps := &f.ps
	f.rparenCount--
	if ps.castMask&(1<<ps.parenDepth)&^ps.sizeofMask != 0 {
		ps.lastUnary = true
		ps.castMask &= (1 << ps.parenDepth) - 1
	}
	ps.sizeofMask &= (1 << ps.parenDepth) - 1
	if ps.parenDepth--; ps.parenDepth < 0 {
		ps.parenDepth = 0
		f.diag(Warning, "Extra %s", tok.Literal)
	}
	if len(f.code) == 0 {
		ps.parenLevel = ps.parenDepth
	}
	f.code = append(f.code, tok.Literal...)
	ps.wantBlank = true
	if f.spSw && ps.parenDepth == 0 {
		f.endHeader()
	}
	ps.searchBrace = true
}

// endHeader is called once the condition of an if, while, for or switch
// has been scanned.
func (f *Formatter) endHeader() {
	f.spSw = false
	f.forceNL = true
	f.ps.lastUnary = true
	f.ps.inStmt = false
	f.parse(f.hdType)
}

func (f *Formatter) colon() {
	ps := &f.ps
	if f.squest > 0 {
		f.squest--
		f.blank()
		f.code = append(f.code, colon)
		ps.wantBlank = true
		return
	}
	if ps.inDecl {
		f.code = append(f.code, colon)
		ps.wantBlank = false
		return
	}
	ps.inStmt = false
	f.lab = append(f.lab, f.code...)
	f.lab = append(f.lab, colon, space)
	f.code = f.code[:0]

	f.forceNL = f.scase
	ps.pcase = f.scase
	f.scase = false
	ps.wantBlank = false
}

func (f *Formatter) semicolon() {
	ps := &f.ps
	ps.inOrSt = false
	f.scase = false
	f.squest = 0
	if ps.lastToken == Rparen && f.rparenCount == 0 {
		ps.inParamDecl = false
	}
	ps.castMask = 0
	ps.sizeofMask = 0
	ps.blockInit = false
	ps.blockInitLevel = 0
	ps.justSawDecl--

	if ps.inDecl && len(f.code) == 0 && !ps.blockInit {
		f.padCode(f.decInd - 1)
	}
	ps.inDecl = ps.decNest > 0

	if (!f.spSw || f.hdType != evFor) && ps.parenDepth > 0 {
		f.diag(Error, "Unbalanced parens")
		ps.parenDepth = 0
		if f.spSw {
			f.spSw = false
			f.parse(f.hdType)
		}
	}
	f.code = append(f.code, semicolon)
	ps.wantBlank = true
	ps.inStmt = ps.parenDepth > 0

	if !f.spSw {
		f.parse(evSemicolon)
		f.forceNL = true
	}
}

func (f *Formatter) openBrace() {
	ps := &f.ps
	ps.inStmt = false
	if !ps.blockInit {
		f.forceNL = true
	} else if ps.blockInitLevel <= 0 {
		ps.blockInitLevel = 1
	} else {
		ps.blockInitLevel++
	}

	if len(f.code) > 0 && !ps.blockInit {
		if ps.inParamDecl && !ps.inOrSt {
			ps.followLevel = 0
			f.dumpLine()
			ps.wantBlank = false
		} else if f.cfg.BraceOwnLine {
			f.dumpLine()
			ps.wantBlank = false
		}
	}
	if ps.inParamDecl {
		f.prefixBlank = false
	}
	if ps.parenDepth > 0 {
		f.diag(Error, "Unbalanced parens")
		ps.parenDepth = 0
		if f.spSw {
			f.spSw = false
			f.parse(f.hdType)
			ps.indLevel = ps.followLevel
		}
	}
	if len(f.code) == 0 {
		ps.indStmt = false
	}
	if ps.inDecl && ps.inOrSt {
		f.diStack.Truncate(ps.decNest)
		f.diStack.Push(f.decInd)
		ps.decNest++
	} else {
		ps.declOnLine = false
		ps.inParamDecl = false
	}
	f.decInd = 0
	f.parse(evLbrace)
	f.blank()
	ps.wantBlank = false
	f.code = append(f.code, lcurly)
	ps.justSawDecl = 0
}

func (f *Formatter) closeBrace() {
	ps := &f.ps
	if ps.top().ctx == ctxDecl && !ps.blockInit {
		f.parse(evSemicolon)
	}
	if ps.parenDepth > 0 {
		f.diag(Error, "Unbalanced parens")
		ps.parenDepth = 0
		f.spSw = false
	}
	ps.justSawDecl = 0
	ps.blockInitLevel--
	if len(f.code) > 0 && !ps.blockInit {
		f.dumpLine()
	}
	f.code = append(f.code, rcurly)
	ps.wantBlank = true
	ps.inStmt = false
	ps.indStmt = false
	if ps.decNest > 0 {
		ps.decNest--
		f.decInd = f.diStack.At(ps.decNest)
		if ps.decNest == 0 && !ps.inParamDecl {
			ps.justSawDecl = 2
		}
		ps.inDecl = true
	}
	f.prefixBlank = false
	f.parse(evRbrace)
	ps.searchBrace = ps.top().ctx == ctxIfHead && ps.top().indent >= ps.indLevel
	if ps.tos() <= 1 && f.cfg.BlankAfterProc && ps.decNest <= 0 {
		f.postfixBlank = true
	}
}

func (f *Formatter) nonParenKeyword(tok Token) {
	ps := &f.ps
	ps.inStmt = false
	if tok.Literal == "else" {
		if len(f.code) > 0 && lastByte(f.code) != rcurly {
			f.dumpLine()
			ps.wantBlank = false
		}
		f.forceNL = true
		f.lastElse = true
		f.parse(evElse)
	} else {
		if len(f.code) > 0 {
			f.dumpLine()
			ps.wantBlank = false
		}
		f.forceNL = true
		f.lastElse = false
		f.parse(evDo)
	}
	f.copyToken(tok)
}

func (f *Formatter) declaration(tok Token) {
	ps := &f.ps
	f.parse(evDecl)
	if ps.lastToken == Rparen && ps.tos() <= 1 {
		ps.inParamDecl = true
		if len(f.code) > 0 {
			f.dumpLine()
			ps.wantBlank = false
		}
	}
	if ps.inParamDecl && ps.decNest == 0 {
		ps.indLevel = 1
		ps.followLevel = 1
		ps.indStmt = false
	}
	ps.inOrSt = true
	ps.inDecl = true
	ps.declOnLine = true
	if ps.decNest <= 0 {
		ps.justSawDecl = 2
	}
	f.prefixBlank = false
	f.decInd = len(tok.Literal) + 1
	if f.cfg.DeclIndent > 0 {
		f.decInd = f.cfg.DeclIndent
	}
	f.tabsToVar = f.cfg.DeclIndent > 0
	f.copyToken(tok)
}

func (f *Formatter) identifier(tok Token, isProc bool) {
	ps := &f.ps
	if ps.inDecl {
		f.blank()
		ps.wantBlank = false
		if !isProc {
			if !ps.blockInit {
				f.alignDeclaration()
			}
		} else {
			if f.decInd > 0 && len(f.code) > 0 {
				f.dumpLine()
			}
			f.decInd = 0
			ps.wantBlank = false
		}
	} else if f.spSw && ps.parenDepth == 0 {
		f.endHeader()
	}
	f.copyToken(tok)
}

// alignDeclaration pads the code buffer up to the column of the declared
// names. When the current indentation is not a multiple of the tab size,
// both the start position and the target are shifted by the remainder so
// that tabs land on the same stops as in the output.
func (f *Formatter) alignDeclaration() {
	var (
		start  = len(f.code)
		pos    = f.codePos()
		target = f.decInd + f.declShift()
		ts     = f.cfg.TabSize
	)
	if f.tabsToVar {
		for pos/ts*ts+ts <= target {
			f.code = append(f.code, tab)
			pos = pos/ts*ts + ts
		}
	}
	for pos < target {
		f.code = append(f.code, space)
		pos++
	}
	if f.ps.wantBlank && len(f.code) == start {
		f.code = append(f.code, space)
	}
	f.ps.wantBlank = false
}

func (f *Formatter) comma(isProc bool) {
	ps := &f.ps
	ps.wantBlank = len(f.code) > 0
	if ps.inDecl && !isProc && !ps.blockInit {
		f.padCode(f.decInd - 1)
	}
	f.code = append(f.code, comma)
	if ps.parenDepth == 0 {
		if ps.blockInitLevel <= 0 {
			ps.blockInit = false
		}
		if f.breakComma && (f.cfg.BreakComma || f.countSpaces(f.codeTarget(), f.code) > f.cfg.MaxColumn-8) {
			f.forceNL = true
		}
	}
}

func (f *Formatter) advance() {
	f.in.ptr++
	if f.in.exhausted() {
		f.fill()
	}
}

// fill loads the next segment of input. New lines are checked for the
// formatting directives and echoed verbatim while formatting is disabled.
func (f *Formatter) fill() {
	fresh := f.in.fill()
	if f.in.err != nil {
		f.fatal(f.in.err)
	}
	if !fresh {
		return
	}
	line := f.in.buf
	if bytes.HasSuffix(line, []byte("*/\n")) {
		if bytes.HasPrefix(line, []byte("/**INDENT**")) {
			f.fill()
			return
		}
		if dir := parseDirective(line); dir != dirNone {
			if len(f.com) > 0 || len(f.lab) > 0 || len(f.code) > 0 {
				f.dumpLine()
			}
			f.inhibit = dir == dirOff
			if !f.inhibit {
				f.blankLines = 0
				f.postfixBlank = false
				f.prefixBlank = false
				f.procBlank = false
				f.suppressBlank = 1
			}
			f.logger.Debug("formatting toggled", "line", f.line, "enabled", !f.inhibit)
		}
	}
	if !f.inhibit {
		return
	}
	if f.in.eof {
		line = bytes.TrimSuffix(line, []byte{space, nl})
		if len(line) == 0 {
			return
		}
		f.out.Write(line)
		f.out.WriteByte(nl)
		return
	}
	f.out.Write(line)
}

func lastByte(buf []byte) byte {
	if len(buf) == 0 {
		return 0
	}
	return buf[len(buf)-1]
}
