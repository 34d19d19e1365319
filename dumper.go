package main

import (
	"fmt"
	"io"
)

// vmDumper prints a post-run snapshot of VM state: the program counter and
// frame anchor, then every live stack and heap cell. Grounded on the
// teacher's memory-oriented vmDumper, adapted to this VM's stack/heap model
// (there is no dictionary to walk here).
type vmDumper struct {
	vm  *VM
	out io.Writer
}

func (d vmDumper) dump() {
	fmt.Fprintf(d.out, "# VM Dump\n")
	fmt.Fprintf(d.out, "  prog: %v\n", d.vm.prog)
	fmt.Fprintf(d.out, "  base: %v\n", d.vm.base)
	d.dumpStack()
	d.dumpHeap()
}

func (d vmDumper) dumpStack() {
	fmt.Fprintf(d.out, "  stack (depth %v):\n", d.vm.stack.depth())
	for i := 0; i < d.vm.stack.depth(); i++ {
		v, err := d.vm.stack.at(i)
		if err != nil {
			fmt.Fprintf(d.out, "    [%d] <error: %v>\n", i, err)
			continue
		}
		fmt.Fprintf(d.out, "    [%d] %#016x\n", i, uint64(v))
	}
}

func (d vmDumper) dumpHeap() {
	n := d.vm.heap.ptr()
	fmt.Fprintf(d.out, "  heap (size %v):\n", n)
	for i := uint(0); i < n; i++ {
		v, err := d.vm.heap.load(i)
		if err != nil {
			fmt.Fprintf(d.out, "    [%d] <error: %v>\n", i, err)
			continue
		}
		fmt.Fprintf(d.out, "    [%d] %#016x\n", i, uint64(v))
	}
}
