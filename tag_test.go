package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixnumRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 7, -7, 1 << 40} {
		w := tagFixnum(n)
		assert.True(t, isFixnum(w), "tag_fixnum(%d) should be a fixnum", n)
		assert.Equal(t, n, untagFixnum(w))
	}
}

func TestBoolRoundTrip(t *testing.T) {
	assert.True(t, isBool(tagBool(true)))
	assert.True(t, isBool(tagBool(false)))
	assert.True(t, untagBool(tagBool(true)))
	assert.False(t, untagBool(tagBool(false)))
}

func TestCharRoundTrip(t *testing.T) {
	w := tagChar('x')
	assert.True(t, isChar(w))
	assert.Equal(t, byte('x'), untagChar(w))
}

func TestNullAndHeapTagsDoNotCollide(t *testing.T) {
	assert.True(t, isNull(nilWord))
	assert.False(t, isFixnum(nilWord))
	assert.False(t, isBool(nilWord))
	assert.False(t, isChar(nilWord))

	pair := tagHeapRef(0, pairTag)
	vec := tagHeapRef(0, vectorTag)
	str := tagHeapRef(0, stringTag)
	clo := tagHeapRef(0, closureTag)

	assert.True(t, isPair(pair))
	assert.True(t, isVector(vec))
	assert.True(t, isString(str))
	assert.True(t, isClosure(clo))

	for _, w := range []word{pair, vec, str, clo} {
		assert.False(t, isFixnum(w))
		assert.False(t, isBool(w))
		assert.False(t, isChar(w))
		assert.False(t, isNull(w))
	}
}

func TestTruthy(t *testing.T) {
	assert.False(t, truthy(tagBool(false)))
	assert.True(t, truthy(tagBool(true)))
	assert.True(t, truthy(tagFixnum(0)))
	assert.True(t, truthy(nilWord))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, kindFixnum, kindOf(tagFixnum(3)))
	assert.Equal(t, kindBool, kindOf(tagBool(true)))
	assert.Equal(t, kindChar, kindOf(tagChar('a')))
	assert.Equal(t, kindNull, kindOf(nilWord))
	assert.Equal(t, kindPair, kindOf(tagHeapRef(0, pairTag)))
}
