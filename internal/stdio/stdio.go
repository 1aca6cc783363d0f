package stdio

import (
	"io"
	"os"
	"sync"
)

var (
	Stdout = Lock(os.Stdout)
	Stderr = Lock(os.Stderr)
)

type lockedWriter struct {
	mu sync.Mutex
	io.Writer
}

// Lock makes w safe for concurrent use. Every call to Write is written as a
// whole.
func Lock(w io.Writer) io.Writer {
	return &lockedWriter{
		Writer: w,
	}
}

func (w *lockedWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Writer.Write(b)
}

type nopWriterCloser struct {
	io.Writer
}

func NopCloser(w io.Writer) io.WriteCloser {
	return &nopWriterCloser{
		Writer: w,
	}
}

func (w *nopWriterCloser) Close() error {
	return nil
}

// Create opens file for writing. An empty name or "-" gives the standard
// output, which is never closed.
func Create(file string) (io.WriteCloser, error) {
	if file == "" || file == "-" {
		return NopCloser(Stdout), nil
	}
	return os.Create(file)
}
