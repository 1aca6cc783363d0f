package stack_test

import (
	"testing"

	"github.com/midbel/indent/internal/stack"
)

func TestStack(t *testing.T) {
	s := stack.New(1, 2, 3)
	if s.Len() != 3 {
		t.Fatalf("length mismatched! want %d, got %d", 3, s.Len())
	}
	if got := s.Curr(); got != 3 {
		t.Errorf("top mismatched! want %d, got %d", 3, got)
	}
	s.Pop()
	s.Replace(20)
	if got := s.Curr(); got != 20 {
		t.Errorf("top mismatched after replace! want %d, got %d", 20, got)
	}
	if got := s.At(-1); got != 0 {
		t.Errorf("out of range item should be zero! got %d", got)
	}
	if got := s.At(10); got != 0 {
		t.Errorf("out of range item should be zero! got %d", got)
	}
}

func TestStackClone(t *testing.T) {
	s := stack.New("a", "b")
	c := s.Clone()
	c.Replace("z")
	c.Push("c")
	if s.Curr() != "b" || s.Len() != 2 {
		t.Errorf("original stack modified by its clone: %s (%d)", s.Curr(), s.Len())
	}
	if c.Curr() != "c" || c.At(1) != "z" {
		t.Errorf("clone not updated: %s, %s", c.Curr(), c.At(1))
	}
}

func TestStackTruncate(t *testing.T) {
	s := stack.New(1, 2, 3, 4)
	s.Truncate(2)
	if s.Len() != 2 || s.Curr() != 2 {
		t.Errorf("truncate failed: len=%d top=%d", s.Len(), s.Curr())
	}
	s.Truncate(-1)
	if s.Len() != 0 {
		t.Errorf("stack should be empty! got %d", s.Len())
	}
	s.Pop()
	if s.Len() != 0 {
		t.Errorf("pop on empty stack should be a no-op")
	}
}
