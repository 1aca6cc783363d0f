package stack

type Stack[T any] struct {
	list []T
}

func New[T any](items ...T) Stack[T] {
	var s Stack[T]
	for _, i := range items {
		s.Push(i)
	}
	return s
}

func (s *Stack[T]) Len() int {
	return len(s.list)
}

func (s *Stack[T]) Pop() {
	if len(s.list) == 0 {
		return
	}
	s.list = s.list[:s.Len()-1]
}

func (s *Stack[T]) Push(item T) {
	s.list = append(s.list, item)
}

func (s *Stack[T]) Curr() T {
	return s.At(s.Len() - 1)
}

// At returns the item at position i counting from the bottom of the stack.
// Out of range positions give the zero value of T.
func (s *Stack[T]) At(i int) T {
	var ret T
	if i >= 0 && i < s.Len() {
		ret = s.list[i]
	}
	return ret
}

func (s *Stack[T]) Set(i int, item T) {
	if i < 0 || i >= s.Len() {
		return
	}
	s.list[i] = item
}

func (s *Stack[T]) Replace(item T) {
	s.Set(s.Len()-1, item)
}

func (s *Stack[T]) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < s.Len() {
		s.list = s.list[:n]
	}
}

func (s *Stack[T]) Clone() Stack[T] {
	list := make([]T, len(s.list))
	copy(list, s.list)
	return Stack[T]{list: list}
}
