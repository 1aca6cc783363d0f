package indent

type keyword int8

const (
	kwNone keyword = iota
	kwSwitch
	kwCase
	kwStruct
	kwDecl
	kwParen
	kwNparen
	kwSizeof
	kwOther
)

var keywords = map[string]keyword{
	"switch":   kwSwitch,
	"case":     kwCase,
	"default":  kwCase,
	"struct":   kwStruct,
	"union":    kwStruct,
	"enum":     kwStruct,
	"int":      kwDecl,
	"char":     kwDecl,
	"float":    kwDecl,
	"double":   kwDecl,
	"long":     kwDecl,
	"short":    kwDecl,
	"typedef":  kwDecl,
	"unsigned": kwDecl,
	"signed":   kwDecl,
	"register": kwDecl,
	"static":   kwDecl,
	"global":   kwDecl,
	"extern":   kwDecl,
	"void":     kwDecl,
	"const":    kwDecl,
	"volatile": kwDecl,
	"auto":     kwDecl,
	"inline":   kwDecl,
	"if":       kwParen,
	"while":    kwParen,
	"for":      kwParen,
	"else":     kwNparen,
	"do":       kwNparen,
	"sizeof":   kwSizeof,
	"break":    kwOther,
	"goto":     kwOther,
	"return":   kwOther,
}

// lookup gives the class of str. Names registered as typenames behave
// like the builtin declaration keywords.
func lookup(str string, types map[string]struct{}) keyword {
	if kw, ok := keywords[str]; ok {
		return kw
	}
	if _, ok := types[str]; ok {
		return kwDecl
	}
	return kwNone
}
