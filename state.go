package indent

import (
	"slices"

	"github.com/midbel/indent/internal/stack"
)

type context int8

const (
	ctxNone context = iota
	ctxStmt
	ctxStmtList
	ctxDecl
	ctxLbrace
	ctxIf
	ctxIfHead
	ctxElseHead
	ctxWhile
	ctxFor
	ctxDo
	ctxDoHead
	ctxSwitch
)

func (c context) String() string {
	switch c {
	case ctxStmt:
		return "stmt"
	case ctxStmtList:
		return "stmtl"
	case ctxDecl:
		return "decl"
	case ctxLbrace:
		return "lbrace"
	case ctxIf:
		return "if"
	case ctxIfHead:
		return "ifhead"
	case ctxElseHead:
		return "elsehead"
	case ctxWhile:
		return "while"
	case ctxFor:
		return "for"
	case ctxDo:
		return "do"
	case ctxDoHead:
		return "dohead"
	case ctxSwitch:
		return "switch"
	default:
		return "none"
	}
}

type frame struct {
	ctx     context
	indent  int
	caseInd float64
}

// parserState is everything saved at #if and restored at #else.
type parserState struct {
	stack stack.Stack[frame]

	lastToken rune
	lastNL    bool
	col1      bool
	lastUnary bool
	blankLine bool
	boxCom    bool

	castMask   uint64
	sizeofMask uint64

	blockInit      bool
	blockInitLevel int

	comCol        int
	commentDelta  int
	nCommentDelta int

	decNest     int
	declOnLine  bool
	inDecl      bool
	inStmt      bool
	indStmt     bool
	inOrSt      bool
	inParamDecl bool
	justSawDecl int

	indLevel    int
	followLevel int

	isKeyword bool
	isSizeof  bool

	parenLevel   int
	parenDepth   int
	parenIndents []int

	pcase       bool
	procname    string
	searchBrace bool
	useFF       bool
	wantBlank   bool
}

func (s parserState) clone() parserState {
	c := s
	c.stack = s.stack.Clone()
	c.parenIndents = slices.Clone(s.parenIndents)
	return c
}

func (s *parserState) tos() int {
	return s.stack.Len() - 1
}

func (s *parserState) top() frame {
	return s.stack.Curr()
}

func (s *parserState) below() frame {
	return s.stack.At(s.stack.Len() - 2)
}

func (s *parserState) push(ctx context, indent int) {
	s.stack.Push(frame{ctx: ctx, indent: indent})
}

// reduceTo pops the top frame and changes the kind of the frame below.
func (s *parserState) reduceTo(ctx context) frame {
	s.stack.Pop()
	f := s.stack.Curr()
	f.ctx = ctx
	s.stack.Replace(f)
	return f
}

func (s *parserState) setTop(ctx context) {
	f := s.stack.Curr()
	f.ctx = ctx
	s.stack.Replace(f)
}

func (s *parserState) parenIndent(i int) int {
	if i < 0 || i >= len(s.parenIndents) {
		return 0
	}
	return s.parenIndents[i]
}

func (s *parserState) setParenIndent(i, col int) {
	if i < 0 {
		return
	}
	for len(s.parenIndents) <= i {
		s.parenIndents = append(s.parenIndents, 0)
	}
	s.parenIndents[i] = col
}
