package main

import (
	"fmt"
	"strings"
)

// Sprint renders w as source-level syntax: fixnums in decimal, #t/#f,
// character literals, (), dotted pairs, strings as their raw bytes with no
// surrounding quotes, and vectors as #(e1 e2 ...) with each element rendered
// recursively; string and vector elements appear in their logical
// (un-reversed) order. It returns a tagError for any word that matches no
// known tag.
func (vm *VM) Sprint(w word) (string, error) {
	var buf strings.Builder
	if err := vm.writeValue(&buf, w); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (vm *VM) writeValue(buf *strings.Builder, w word) error {
	switch kindOf(w) {
	case kindFixnum:
		fmt.Fprintf(buf, "%d", untagFixnum(w))
	case kindBool:
		if untagBool(w) {
			buf.WriteString("#t")
		} else {
			buf.WriteString("#f")
		}
	case kindNull:
		buf.WriteString("()")
	case kindChar:
		c := untagChar(w)
		buf.WriteString("#\\")
		if c == '\n' {
			buf.WriteString("newline")
		} else {
			buf.WriteByte(c)
		}
	case kindClosure:
		buf.WriteString("function")
	case kindPair:
		h := untagHeapRef(w)
		car, err := vm.heap.load(h)
		if err != nil {
			return err
		}
		cdr, err := vm.heap.load(h + 1)
		if err != nil {
			return err
		}
		buf.WriteByte('(')
		if err := vm.writeValue(buf, car); err != nil {
			return err
		}
		buf.WriteString(" . ")
		if err := vm.writeValue(buf, cdr); err != nil {
			return err
		}
		buf.WriteByte(')')
	case kindString:
		elems, err := vm.readElems(w)
		if err != nil {
			return err
		}
		for _, e := range elems {
			buf.WriteByte(byte(rawInt(e)))
		}
	case kindVector:
		elems, err := vm.readElems(w)
		if err != nil {
			return err
		}
		buf.WriteString("#(")
		for i, e := range elems {
			if i > 0 {
				buf.WriteByte(' ')
			}
			if err := vm.writeValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(')')
	default:
		return tagError(w)
	}
	return nil
}

// readElems is objElems without the halt-on-error panic: printing happens
// after the dispatch loop has already stopped, so faults come back as plain
// errors instead.
func (vm *VM) readElems(w word) ([]word, error) {
	h := untagHeapRef(w)
	lenCell, err := vm.heap.load(h)
	if err != nil {
		return nil, err
	}
	n := int(rawInt(lenCell))
	elems := make([]word, n)
	for i := 0; i < n; i++ {
		c, err := vm.heap.load(h + uint(n-i))
		if err != nil {
			return nil, err
		}
		elems[i] = c
	}
	return elems, nil
}
