package indent

// Config holds the style policy applied by a Formatter. It is read only
// while a stream is being formatted.
type Config struct {
	BlankAfterDecl          bool
	BlankAfterProc          bool
	BlankBeforeBlockComment bool
	BreakComma              bool
	BraceOwnLine            bool
	BraceJoin               bool
	CommentDelimBlank       bool
	ElseIf                  bool
	FormatCol1              bool
	PointerBinop            bool
	StarComments            bool
	SwallowBlankLines       bool

	CommentColumn         int
	DeclCommentColumn     int
	ContinuationIndent    int
	Unindent              int
	DeclIndent            int
	IndentSize            int
	MaxColumn             int
	BlockCommentMaxColumn int
	LabelOffset           int
	MaxBlankLines         int
	TabSize               int

	CaseIndent float64

	Types []string
}

func Default() Config {
	return Config{
		StarComments:       true,
		CommentColumn:      33,
		DeclCommentColumn:  0,
		ContinuationIndent: 0,
		Unindent:           0,
		DeclIndent:         16,
		IndentSize:         8,
		MaxColumn:          78,
		TabSize:            8,
		CaseIndent:         0,
	}
}

func (c Config) normalize() Config {
	if c.CommentColumn <= 1 {
		c.CommentColumn = 2
	}
	if c.DeclCommentColumn <= 0 {
		c.DeclCommentColumn = c.CommentColumn
	}
	if c.MaxColumn <= 0 {
		c.MaxColumn = Default().MaxColumn
	}
	if c.BlockCommentMaxColumn <= 0 {
		c.BlockCommentMaxColumn = c.MaxColumn
	}
	if c.TabSize <= 0 {
		c.TabSize = 8
	}
	if c.IndentSize < 0 {
		c.IndentSize = 0
	}
	return c
}

func (c Config) typenames() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Types))
	for _, t := range c.Types {
		set[t] = struct{}{}
	}
	return set
}
