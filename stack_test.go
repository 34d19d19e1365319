package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStackPushPop(t *testing.T) {
	var s evalStack
	require.NoError(t, s.push(tagFixnum(1)))
	require.NoError(t, s.push(tagFixnum(2)))
	require.Equal(t, 2, s.depth())

	v, err := s.pop()
	require.NoError(t, err)
	require.Equal(t, tagFixnum(2), v)
	require.Equal(t, 1, s.depth())
}

func TestStackPopEmptyUnderflows(t *testing.T) {
	var s evalStack
	_, err := s.pop()
	require.ErrorIs(t, err, errStackUnderflow)
}

func TestStackPoppedCellStaysLegibleAsScratch(t *testing.T) {
	// The backing array may outlive the logical top.
	var s evalStack
	require.NoError(t, s.push(tagFixnum(42)))
	v, err := s.pop()
	require.NoError(t, err)
	require.Equal(t, tagFixnum(42), v)
	require.Equal(t, tagFixnum(42), s.cells[0])
}

func TestStackFromTop(t *testing.T) {
	var s evalStack
	require.NoError(t, s.push(tagFixnum(1)))
	require.NoError(t, s.push(tagFixnum(2)))
	require.NoError(t, s.push(tagFixnum(3)))

	v, err := s.fromTop(1)
	require.NoError(t, err)
	require.Equal(t, tagFixnum(3), v)

	v, err = s.fromTop(3)
	require.NoError(t, err)
	require.Equal(t, tagFixnum(1), v)
}

func TestStackLimit(t *testing.T) {
	s := evalStack{limit: 1}
	require.NoError(t, s.push(tagFixnum(1)))
	require.ErrorIs(t, s.push(tagFixnum(2)), errStackLimit)
}

func TestStackTruncate(t *testing.T) {
	var s evalStack
	require.NoError(t, s.push(tagFixnum(1)))
	require.NoError(t, s.push(tagFixnum(2)))
	require.NoError(t, s.push(tagFixnum(3)))
	require.NoError(t, s.truncate(1))
	require.Equal(t, 1, s.depth())
}
