package main

import (
	"context"

	"github.com/joshMeise/SchemeCompiler/internal/flushio"
)

// VM holds all mutable state for one run of a compiled program: the
// instruction stream, the program counter, the evaluation stack, the heap,
// and the current frame's base pointer. A VM runs exactly one program once;
// build a fresh one per run.
type VM struct {
	logging

	code []word
	prog uint // program counter, indexes code

	stack evalStack
	heap  heap
	base  int // base pointer: frame anchor into stack

	out     flushio.WriteFlusher
	closers []closer

	halted bool
	result word

	trace bool
}

type closer interface{ Close() error }

// fetch reads the word at the program counter and advances it.
func (vm *VM) fetch() word {
	if vm.prog >= uint(len(vm.code)) {
		vm.halt(progError(vm.prog))
		return 0
	}
	w := vm.code[vm.prog]
	vm.prog++
	return w
}

func (vm *VM) fetchUint() uint { return uint(uint64(vm.fetch())) }
func (vm *VM) fetchInt() int   { return int(rawInt(vm.fetch())) }

func (vm *VM) halt(err error) {
	if ferr := vm.out.Flush(); err == nil {
		err = ferr
	}
	err = haltError{err}
	vm.logf("!", "%v", err)
	panic(err)
}

func (vm *VM) haltif(err error) {
	if err != nil {
		vm.halt(err)
	}
}

func (vm *VM) push(v word)         { vm.haltif(vm.stack.push(v)) }
func (vm *VM) pop() word           { v, err := vm.stack.pop(); vm.haltif(err); return v }
func (vm *VM) at(i int) word       { v, err := vm.stack.at(i); vm.haltif(err); return v }
func (vm *VM) fromTop(d uint) word { v, err := vm.stack.fromTop(d); vm.haltif(err); return v }

func (vm *VM) hload(i uint) word      { v, err := vm.heap.load(i); vm.haltif(err); return v }
func (vm *VM) hstore(i uint, v word)  { vm.haltif(vm.heap.store(i, v)) }
func (vm *VM) halloc(vs ...word) uint { i, err := vm.heap.alloc(vs...); vm.haltif(err); return i }
func (vm *VM) hreserve(n int) uint    { i, err := vm.heap.reserve(n); vm.haltif(err); return i }

// step fetches and executes one instruction.
func (vm *VM) step() {
	at := vm.prog
	op := vm.fetchUint()
	if op >= uint(opMax) {
		vm.halt(opcodeError(op))
		return
	}
	if vm.trace {
		vm.logf("@", "%-4d %-18s sp=%-3d hp=%-3d base=%d", at, opNames[op], vm.stack.depth(), vm.heap.ptr(), vm.base)
	}
	opTable[op](vm)
}

// run drives the dispatch loop until the top-level RETURN halts it normally
// or ctx is canceled.
func (vm *VM) run(ctx context.Context) error {
	for !vm.halted {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		vm.step()
	}
	return nil
}

// opReturn is the top-level halt instruction: it is not a fault, so it sets
// halted directly rather than going through halt.
func (vm *VM) opReturn() {
	vm.result = vm.pop()
	vm.halted = true
}
