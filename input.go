package indent

import (
	"bufio"
	"errors"
	"io"

	"github.com/midbel/indent/internal/stack"
)

// MaxLineLength is the size past which a single input line is rejected.
const MaxLineLength = 1 << 20

// input is a line oriented character source. Text can be pushed back in
// front of it; the stream then resumes exactly where it was interrupted
// once the pushed back text has been consumed.
type input struct {
	rs *bufio.Reader

	buf []byte
	ptr int
	// the current segment is the end of the last line
	final bool

	pending stack.Stack[segment]

	eof bool
	err error
}

type segment struct {
	text  []byte
	final bool
}

func newInput(r io.Reader) *input {
	return &input{
		rs: bufio.NewReader(r),
	}
}

// fill loads the next segment of text. It reports whether the segment is a
// new line coming from the underlying reader.
func (i *input) fill() bool {
	for i.pending.Len() > 0 {
		seg := i.pending.Curr()
		i.pending.Pop()
		if len(seg.text) > 0 {
			i.buf, i.ptr, i.final = seg.text, 0, seg.final
			return false
		}
	}
	i.buf, i.ptr = i.readLine(), 0
	i.final = i.eof
	return true
}

func (i *input) readLine() []byte {
	var line []byte
	for {
		chunk, err := i.rs.ReadSlice(nl)
		line = append(line, chunk...)
		if len(line) > MaxLineLength {
			if i.err == nil {
				i.err = ErrLineTooLong
			}
			i.eof = true
			return []byte{space, nl}
		}
		if err == nil {
			return line
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if !errors.Is(err, io.EOF) && i.err == nil {
			i.err = err
		}
		i.eof = true
		return append(line, space, nl)
	}
}

// unread makes text the current segment. What remains of the current
// segment is read again after text.
func (i *input) unread(text []byte) {
	if i.ptr < len(i.buf) {
		i.pending.Push(segment{
			text:  i.buf[i.ptr:],
			final: i.final,
		})
	}
	i.buf, i.ptr, i.final = text, 0, false
}

// atEnd reports whether the current character is the newline ending the
// input.
func (i *input) atEnd() bool {
	return i.final && i.curr() == nl
}

func (i *input) curr() byte {
	return i.at(0)
}

func (i *input) at(n int) byte {
	if n += i.ptr; n >= 0 && n < len(i.buf) {
		return i.buf[n]
	}
	return 0
}

func (i *input) rest() []byte {
	if i.ptr >= len(i.buf) {
		return nil
	}
	return i.buf[i.ptr:]
}

// consumed gives the text of the current segment before the current
// position.
func (i *input) consumed() []byte {
	return i.buf[:i.ptr]
}

func (i *input) exhausted() bool {
	return i.ptr >= len(i.buf)
}
