package main

// evalStack is the evaluation stack. sp names the logical top; the backing
// slice's length may exceed sp, since pop and truncate only move sp and
// leave the cells above it in place. Reads and writes through at, set and
// fromTop are bounded by sp, so only live cells are reachable through them;
// CALL's argument re-copy reads the caller's arguments, which are still
// live cells below the saved return address and base pointer it pushes.
type evalStack struct {
	cells []word
	sp    int
	limit uint // 0 means unbounded
}

func (s *evalStack) depth() int { return s.sp }

func (s *evalStack) push(v word) error {
	if s.limit != 0 && uint(s.sp+1) > s.limit {
		return errStackLimit
	}
	if s.sp == len(s.cells) {
		s.cells = append(s.cells, v)
	} else {
		s.cells[s.sp] = v
	}
	s.sp++
	return nil
}

func (s *evalStack) pop() (word, error) {
	if s.sp == 0 {
		return 0, errStackUnderflow
	}
	s.sp--
	return s.cells[s.sp], nil
}

func (s *evalStack) at(i int) (word, error) {
	if i < 0 || i >= s.sp {
		return 0, indexError{addr: uint(i), op: "stack read"}
	}
	return s.cells[i], nil
}

func (s *evalStack) set(i int, v word) error {
	if i < 0 || i >= s.sp {
		return indexError{addr: uint(i), op: "stack write"}
	}
	s.cells[i] = v
	return nil
}

// fromTop reads stack[stack_ptr-d], per PUSH_LET's distance addressing
// (d==1 names the current top).
func (s *evalStack) fromTop(d uint) (word, error) {
	return s.at(s.sp - int(d))
}

// truncate sets the logical top directly, used by RET to unwind a frame in
// one step. The cells above the new top stay in the backing array as
// scratch, same as after an ordinary pop.
func (s *evalStack) truncate(n int) error {
	if n < 0 || n > len(s.cells) {
		return indexError{addr: uint(n), op: "stack truncate"}
	}
	s.sp = n
	return nil
}
