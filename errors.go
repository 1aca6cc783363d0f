package indent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/midbel/distance"
)

var (
	ErrUnknownOption = errors.New("unknown option")
	ErrInvalidValue  = errors.New("invalid value")
	ErrLineTooLong   = errors.New("input line too long")
	ErrLookahead     = errors.New("internal buffer overflow - move big comment from right after if, while, or whatever")
	ErrStackOverflow = errors.New("parser stack overflow")
	ErrToken         = errors.New("unexpected token")
)

type SuggestionError struct {
	Others []string
	Err    error
}

func Suggest(err error, name string, names []string) error {
	names = distance.Levenshtein(name, names)
	if len(names) == 0 {
		return err
	}
	return SuggestionError{
		Err:    err,
		Others: names,
	}
}

func (s SuggestionError) Error() string {
	return fmt.Sprintf("%s (did you mean %s?)", s.Err, strings.Join(s.Others, ", "))
}

func (s SuggestionError) Unwrap() error {
	return s.Err
}

type Severity int8

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "Error"
	}
	return "Warning"
}

// Diagnostic is a non fatal problem found in the input. Diagnostics are
// written in the output stream next to the line they relate to.
type Diagnostic struct {
	Severity
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("/**INDENT** %s@%d: %s */", d.Severity, d.Line, d.Message)
}

// DiagnosticError is returned by Format when at least one diagnostic of
// severity Error has been issued. The output is complete nonetheless.
type DiagnosticError struct {
	List []Diagnostic
}

func (e DiagnosticError) Error() string {
	var n int
	for _, d := range e.List {
		if d.Severity == Error {
			n++
		}
	}
	if n == 1 {
		return "1 error found while formatting"
	}
	return fmt.Sprintf("%d errors found while formatting", n)
}

func hasError(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}
