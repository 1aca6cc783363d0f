package shlex

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrUnterminated = errors.New("unterminated")

// Split breaks the content of r into words. Words are separated by blanks
// and newlines. Quoted text is part of the word it appears in. C style comments
// and comments starting with # at the beginning of a word are skipped.
func Split(r io.Reader) ([]string, error) {
	var (
		rs  = bufio.NewReader(r)
		str []string
	)
	for {
		r, _, err := rs.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		var word string
		switch {
		case isNL(r) || isBlank(r):
			readBlank(rs)
			continue
		case r == pound:
			readLine(rs)
			continue
		case r == slash && peek(rs) == star:
			rs.ReadRune()
			if err := readComment(rs); err != nil {
				return nil, err
			}
			continue
		default:
			if word, err = readWord(rs, r); err != nil {
				return nil, err
			}
		}
		str = append(str, word)
	}
	return str, nil
}

func readWord(rs io.RuneScanner, r rune) (string, error) {
	var str strings.Builder
	for {
		if isQuote(r) {
			q, err := readQuote(rs, r)
			if err != nil {
				return "", err
			}
			str.WriteString(q)
		} else {
			str.WriteRune(r)
		}
		var err error
		if r, _, err = rs.ReadRune(); err != nil {
			return str.String(), nil
		}
		if eow(r) {
			break
		}
	}
	rs.UnreadRune()
	return str.String(), nil
}

func readQuote(rs io.RuneReader, quote rune) (string, error) {
	var (
		str  strings.Builder
		prev rune
	)
	for {
		r, _, err := rs.ReadRune()
		if err != nil {
			return "", fmt.Errorf("%w string", ErrUnterminated)
		}
		if r == quote && prev != backslash {
			break
		}
		prev = r
		str.WriteRune(r)
	}
	return str.String(), nil
}

func readComment(rs io.RuneReader) error {
	var prev rune
	for {
		r, _, err := rs.ReadRune()
		if err != nil {
			return fmt.Errorf("%w comment", ErrUnterminated)
		}
		if prev == star && r == slash {
			return nil
		}
		prev = r
	}
}

func readLine(rs io.RuneReader) {
	for {
		r, _, err := rs.ReadRune()
		if err != nil || r == nl {
			break
		}
	}
}

func readBlank(rs io.RuneScanner) {
	for {
		r, _, err := rs.ReadRune()
		if err != nil {
			return
		}
		if !isNL(r) && !isBlank(r) {
			break
		}
	}
	rs.UnreadRune()
}

func peek(rs io.RuneScanner) rune {
	r, _, err := rs.ReadRune()
	if err != nil {
		return 0
	}
	rs.UnreadRune()
	return r
}

const (
	space     = ' '
	tab       = '\t'
	squote    = '\''
	dquote    = '"'
	backslash = '\\'
	slash     = '/'
	star      = '*'
	pound     = '#'
	nl        = '\n'
	cr        = '\r'
)

func eow(r rune) bool {
	return isBlank(r) || isNL(r)
}

func isBlank(r rune) bool {
	return r == space || r == tab
}

func isQuote(r rune) bool {
	return r == dquote || r == squote
}

func isNL(r rune) bool {
	return r == cr || r == nl
}
