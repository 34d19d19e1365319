package main

// opLoad64 pushes the single immediate word verbatim.
func (vm *VM) opLoad64() {
	vm.push(vm.fetch())
}

func (vm *VM) opAdd1() { vm.push(tagFixnum(untagFixnum(vm.pop()) + 1)) }
func (vm *VM) opSub1() { vm.push(tagFixnum(untagFixnum(vm.pop()) - 1)) }

func (vm *VM) opIntToChar() { vm.push(tagChar(byte(untagFixnum(vm.pop())))) }
func (vm *VM) opCharToInt() { vm.push(tagFixnum(int64(untagChar(vm.pop())))) }

func (vm *VM) opIsNull() { vm.push(tagBool(isNull(vm.pop()))) }
func (vm *VM) opIsZero() { vm.push(tagBool(untagFixnum(vm.pop()) == 0)) }
func (vm *VM) opIsInt()  { vm.push(tagBool(isFixnum(vm.pop()))) }
func (vm *VM) opIsBool() { vm.push(tagBool(isBool(vm.pop()))) }
func (vm *VM) opNot()    { vm.push(tagBool(!truthy(vm.pop()))) }

// opPlus, opMinus, and opTimes pop b then a, so MINUS computes a-b with a
// the operand pushed first (deeper on the stack).
func (vm *VM) opPlus() {
	b, a := vm.pop(), vm.pop()
	vm.push(tagFixnum(untagFixnum(a) + untagFixnum(b)))
}
func (vm *VM) opMinus() {
	b, a := vm.pop(), vm.pop()
	vm.push(tagFixnum(untagFixnum(a) - untagFixnum(b)))
}
func (vm *VM) opTimes() {
	b, a := vm.pop(), vm.pop()
	vm.push(tagFixnum(untagFixnum(a) * untagFixnum(b)))
}

func (vm *VM) opLt() {
	b, a := vm.pop(), vm.pop()
	vm.push(tagBool(untagFixnum(a) < untagFixnum(b)))
}
func (vm *VM) opGt() {
	b, a := vm.pop(), vm.pop()
	vm.push(tagBool(untagFixnum(a) > untagFixnum(b)))
}
func (vm *VM) opLeq() {
	b, a := vm.pop(), vm.pop()
	vm.push(tagBool(untagFixnum(a) <= untagFixnum(b)))
}
func (vm *VM) opGeq() {
	b, a := vm.pop(), vm.pop()
	vm.push(tagBool(untagFixnum(a) >= untagFixnum(b)))
}
func (vm *VM) opEq() {
	b, a := vm.pop(), vm.pop()
	vm.push(tagBool(a == b))
}

// opPopJumpIfFalse and opJumpOverElse address their offset relative to the
// offset word's own position, not the position after consuming it: offset N
// means "land N words past where this offset is written". This is the same
// backpatch arithmetic a one-pass compiler naturally produces (emit the jump,
// remember the address of its operand, patch in target-minus-that-address
// once the target is known).
func (vm *VM) opPopJumpIfFalse() {
	base := vm.prog
	offset := vm.fetchInt()
	v := vm.pop()
	if !truthy(v) {
		vm.prog = uint(int(base) + offset)
	} else {
		vm.prog = base + 1
	}
}

func (vm *VM) opJumpOverElse() {
	base := vm.prog
	offset := vm.fetchInt()
	vm.prog = uint(int(base) + offset)
}

// opPushLet reads a value at a fixed distance below the current top without
// popping it, giving lexical bindings a home directly on the evaluation
// stack instead of in a side environment vector.
func (vm *VM) opPushLet() {
	d := vm.fetchUint()
	vm.push(vm.fromTop(d))
}

// opEndLet keeps the top value and discards the n scope slots beneath it.
func (vm *VM) opEndLet() {
	n := vm.fetchUint()
	v := vm.pop()
	for i := uint(0); i < n; i++ {
		vm.pop()
	}
	vm.push(v)
}

// opBeg keeps only the top of n values, discarding the rest; it implements a
// sequence of n expressions evaluated for the last one's value.
func (vm *VM) opBeg() {
	n := vm.fetchUint()
	v := vm.pop()
	for i := uint(1); i < n; i++ {
		vm.pop()
	}
	vm.push(v)
}

// opCons pops b (the stack top) then a, allocating [b, a] as [car, cdr]. The
// compiler pushes constructor arguments in reverse so that CAR(CONS a b)
// yields a at the source level.
func (vm *VM) opCons() {
	car := vm.pop()
	cdr := vm.pop()
	h := vm.halloc(car, cdr)
	vm.push(tagHeapRef(h, pairTag))
}

func (vm *VM) opCar() {
	p := vm.pop()
	vm.push(vm.hload(untagHeapRef(p)))
}

func (vm *VM) opCdr() {
	p := vm.pop()
	vm.push(vm.hload(untagHeapRef(p) + 1))
}

// buildObject allocates a string or vector record: a length cell followed by
// len element cells, with logical element i stored at offset len-i from the
// header (elements are laid out in reverse, per the wire format).
func (vm *VM) buildObject(tag uint64, elems []word) word {
	n := len(elems)
	cells := make([]word, n+1)
	cells[0] = rawWord(n)
	for i, e := range elems {
		cells[n-i] = e
	}
	h := vm.halloc(cells...)
	return tagHeapRef(h, tag)
}

// objElems reads a string or vector's elements back out in logical order.
// For strings the cells hold untagged byte values; for vectors they hold
// full tagged words. Either way objElems just returns what's stored.
func (vm *VM) objElems(obj word) []word {
	h := untagHeapRef(obj)
	n := int(rawInt(vm.hload(h)))
	elems := make([]word, n)
	for i := 0; i < n; i++ {
		elems[i] = vm.hload(h + uint(n-i))
	}
	return elems
}

// opStr pops n characters (top first) and untags each to a raw byte before
// storing, building a fresh string object.
func (vm *VM) opStr() {
	n := vm.fetchUint()
	elems := make([]word, n)
	for i := uint(0); i < n; i++ {
		elems[i] = word(untagChar(vm.pop()))
	}
	vm.push(vm.buildObject(stringTag, elems))
}

// opVec pops n values (top first) and stores them tagged, building a fresh
// vector object.
func (vm *VM) opVec() {
	n := vm.fetchUint()
	elems := make([]word, n)
	for i := uint(0); i < n; i++ {
		elems[i] = vm.pop()
	}
	vm.push(vm.buildObject(vectorTag, elems))
}

func (vm *VM) refIndex(obj, idx word) (h uint, offset uint) {
	h = untagHeapRef(obj)
	n := rawInt(vm.hload(h))
	i := untagFixnum(idx)
	if i < 0 || i >= n {
		vm.halt(indexError{addr: uint(i), op: "element ref"})
		return 0, 0
	}
	return h, uint(n - i)
}

func (vm *VM) opStrRef() {
	i := vm.pop()
	obj := vm.pop()
	h, off := vm.refIndex(obj, i)
	vm.push(tagChar(byte(rawInt(vm.hload(h + off)))))
}

func (vm *VM) opVecRef() {
	i := vm.pop()
	obj := vm.pop()
	h, off := vm.refIndex(obj, i)
	vm.push(vm.hload(h + off))
}

func (vm *VM) opStrSet() {
	v := vm.pop()
	i := vm.pop()
	obj := vm.pop()
	h, off := vm.refIndex(obj, i)
	vm.hstore(h+off, word(untagChar(v)))
	vm.push(obj)
}

func (vm *VM) opVecSet() {
	v := vm.pop()
	i := vm.pop()
	obj := vm.pop()
	h, off := vm.refIndex(obj, i)
	vm.hstore(h+off, v)
	vm.push(obj)
}

// opStrApp and opVecApp pop b then a, and normatively concatenate b's
// elements followed by a's: the reverse of typical source-level append
// argument order.
func (vm *VM) opStrApp() {
	b, a := vm.pop(), vm.pop()
	elems := append(vm.objElems(b), vm.objElems(a)...)
	vm.push(vm.buildObject(stringTag, elems))
}

func (vm *VM) opVecApp() {
	b, a := vm.pop(), vm.pop()
	elems := append(vm.objElems(b), vm.objElems(a)...)
	vm.push(vm.buildObject(vectorTag, elems))
}

// opCodeBlock allocates a closure record's header ([code_offset, arity],
// plus num_frees reserved cells for SET_FREES to fill in later), pushes its
// raw (untagged) heap index, then skips the dispatch loop over the inline
// function body that follows.
func (vm *VM) opCodeBlock() {
	codeLen := vm.fetchUint()
	arity := vm.fetchInt()
	numFrees := vm.fetchInt()
	bodyStart := vm.prog
	h := vm.halloc(rawWord(int(bodyStart)), rawWord(arity))
	if numFrees > 0 {
		vm.hreserve(numFrees)
	}
	vm.push(rawWord(int(h)))
	vm.prog = bodyStart + codeLen
}

// opClosure tags the raw heap index CODE left at a fixed stack distance as a
// callable closure value.
func (vm *VM) opClosure() {
	d := vm.fetchUint()
	h := uint(rawInt(vm.fromTop(d)))
	vm.push(tagHeapRef(h, closureTag))
}

// opSetFrees pops n free-variable values (top is free index 0) and writes
// them into the closure record named by a raw heap index at a fixed stack
// distance, starting at offset 2.
func (vm *VM) opSetFrees() {
	d := vm.fetchUint()
	n := vm.fetchUint()
	h := uint(rawInt(vm.fromTop(d)))
	for j := uint(0); j < n; j++ {
		vm.hstore(h+2+j, vm.pop())
	}
}

// opGetArg reads argument i of the current frame, addressed relative to the
// base pointer.
func (vm *VM) opGetArg() {
	i := vm.fetchUint()
	vm.push(vm.at(vm.base + 1 + int(i)))
}

// opGetFree reads free variable j out of the closure value sitting at a
// fixed stack distance. CALL does not place the callee's own closure in the
// new frame, so the closure must be reachable on the stack by distance.
func (vm *VM) opGetFree() {
	d := vm.fetchUint()
	j := vm.fetchUint()
	h := untagHeapRef(vm.fromTop(d))
	vm.push(vm.hload(h + 2 + j))
}

// opCall pops a closure, reads its code offset and arity, pushes a saved
// return address and base pointer, re-anchors the frame, and re-copies the
// arguments above the new anchor before jumping into the callee.
func (vm *VM) opCall() {
	c := vm.pop()
	h := untagHeapRef(c)
	codeLoc := vm.hload(h)
	numArgs := int(rawInt(vm.hload(h + 1)))

	vm.push(rawWord(int(vm.prog)))
	vm.push(rawWord(vm.base))
	vm.base = vm.stack.depth() - 1

	for i := numArgs - 1; i >= 0; i-- {
		vm.push(vm.at(vm.base - 2 - i))
	}
	vm.prog = uint(rawInt(codeLoc))
}

// opRet pops the return value, restores pc and the base pointer from the
// saved frame slots, drops the frame, and pushes the value back.
func (vm *VM) opRet() {
	v := vm.pop()
	retAddr := vm.at(vm.base - 1)
	savedBase := vm.at(vm.base)
	vm.haltif(vm.stack.truncate(vm.base - 1))
	vm.prog = uint(rawInt(retAddr))
	vm.base = int(rawInt(savedBase))
	vm.push(v)
}
