package wrap

import (
	"strings"
	"unicode/utf8"
)

const (
	space = ' '
	tab   = '\t'
	nl    = '\n'
)

// Lines splits str into words and packs them greedily into lines of at
// most width characters. A word longer than width is put alone on its line.
// Lines returns nil when str has no words.
func Lines(str string, width int) []string {
	var (
		lines []string
		line  strings.Builder
		size  int
	)
	for _, w := range Words(str) {
		n := utf8.RuneCountInString(w)
		if size > 0 && size+1+n > width {
			lines = append(lines, line.String())
			line.Reset()
			size = 0
		}
		if size > 0 {
			line.WriteRune(space)
			size++
		}
		line.WriteString(w)
		size += n
	}
	if size > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// Words splits str on blanks and newlines.
func Words(str string) []string {
	return strings.FieldsFunc(str, isSpace)
}

func isSpace(r rune) bool {
	return r == space || r == tab || r == nl || r == '\r' || r == '\f' || r == '\v'
}
