package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeWordsRoundTrip(t *testing.T) {
	in := []word{tagFixnum(1), tagFixnum(-2), rawWord(3)}
	var data []byte
	for _, w := range in {
		b := encodeWord(w)
		data = append(data, b[:]...)
	}

	out, err := decodeWords(data)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestDecodeWordsBadLength(t *testing.T) {
	_, err := decodeWords([]byte{1, 2, 3})
	require.ErrorIs(t, err, errDecodeLength)
}
