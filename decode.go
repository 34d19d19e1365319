package main

import "encoding/binary"

// decodeWords reads a byte stream as a sequence of little-endian 64-bit
// words, the wire format produced by the (external) compiler.
func decodeWords(data []byte) ([]word, error) {
	if len(data)%8 != 0 {
		return nil, errDecodeLength
	}
	words := make([]word, len(data)/8)
	for i := range words {
		words[i] = word(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return words, nil
}

// encodeWord is the inverse of one element of decodeWords, used by tests
// that build binary fixtures.
func encodeWord(w word) [8]byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(w))
	return b
}
