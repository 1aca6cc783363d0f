package stdio_test

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/midbel/indent/internal/stdio"
)

func TestLock(t *testing.T) {
	var (
		buf bytes.Buffer
		w   = stdio.Lock(&buf)
		wg  sync.WaitGroup
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Write([]byte("abcdef\n"))
		}()
	}
	wg.Wait()
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line != "abcdef" {
			t.Fatalf("interleaved write: %q", line)
		}
	}
}

func TestNopCloser(t *testing.T) {
	var buf bytes.Buffer
	w := stdio.NopCloser(&buf)
	w.Write([]byte("foo"))
	if err := w.Close(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if buf.String() != "foo" {
		t.Fatalf("content mismatched! want foo, got %q", buf.String())
	}
}
