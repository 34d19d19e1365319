package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sprintTest(t *testing.T, w word) string {
	t.Helper()
	vm := New(nil)
	text, err := vm.Sprint(w)
	require.NoError(t, err)
	return text
}

func TestSprintFixnum(t *testing.T) {
	require.Equal(t, "7", sprintTest(t, tagFixnum(7)))
	require.Equal(t, "-3", sprintTest(t, tagFixnum(-3)))
}

func TestSprintBool(t *testing.T) {
	require.Equal(t, "#t", sprintTest(t, tagBool(true)))
	require.Equal(t, "#f", sprintTest(t, tagBool(false)))
}

func TestSprintNull(t *testing.T) {
	require.Equal(t, "()", sprintTest(t, nilWord))
}

func TestSprintChar(t *testing.T) {
	require.Equal(t, `#\x`, sprintTest(t, tagChar('x')))
	require.Equal(t, `#\newline`, sprintTest(t, tagChar('\n')))
}

func TestSprintClosure(t *testing.T) {
	require.Equal(t, "function", sprintTest(t, tagHeapRef(0, closureTag)))
}

func TestSprintPair(t *testing.T) {
	vm := New(nil)
	h, err := vm.heap.alloc(tagFixnum(1), tagFixnum(2))
	require.NoError(t, err)
	text, err := vm.Sprint(tagHeapRef(h, pairTag))
	require.NoError(t, err)
	require.Equal(t, "(1 . 2)", text)
}

func TestSprintInvalidTag(t *testing.T) {
	vm := New(nil)
	_, err := vm.Sprint(word(0xff))
	require.Error(t, err)
}
