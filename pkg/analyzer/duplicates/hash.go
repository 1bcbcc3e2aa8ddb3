package duplicates

import (
	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"

	"github.com/panbanda/mccabre/pkg/lang"
)

// rollBase is the multiplier of the polynomial rolling hash. It is odd, so
// multiplication is invertible modulo 2^64, and has well mixed bits.
const rollBase uint64 = 0x9E3779B97F4A7C15

// TokenHasher maps a token to the value fed into the rolling hash. Equal
// tokens (same kind and text) must hash equally.
type TokenHasher func(lang.Token) uint64

// HashToken is the default TokenHasher: xxhash over the kind byte followed by
// the literal text.
func HashToken(tok lang.Token) uint64 {
	var d xxhash.Digest
	d.Reset()
	_, _ = d.Write([]byte{byte(tok.Kind)})
	_, _ = d.WriteString(tok.Text)
	return d.Sum64()
}

// windowHashes returns the rolling hash of every window of w consecutive
// values. Arithmetic wraps modulo 2^64, so each shift costs O(1).
func windowHashes(values []uint64, w int) []uint64 {
	if w <= 0 || len(values) < w {
		return nil
	}

	pow := uint64(1) // rollBase^(w-1)
	for i := 1; i < w; i++ {
		pow *= rollBase
	}

	out := make([]uint64, len(values)-w+1)
	var h uint64
	for i := 0; i < w; i++ {
		h = h*rollBase + values[i]
	}
	out[0] = h
	for i := 1; i < len(out); i++ {
		h = (h-values[i-1]*pow)*rollBase + values[i+w-1]
		out[i] = h
	}
	return out
}

// contentKey digests a token run so that runs with identical content share a
// key regardless of where they occur.
func contentKey(tokens []lang.Token) [32]byte {
	h := blake3.New()
	for _, tok := range tokens {
		_, _ = h.Write([]byte{byte(tok.Kind)})
		_, _ = h.Write([]byte(tok.Text))
		_, _ = h.Write([]byte{0})
	}
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}
