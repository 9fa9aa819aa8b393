package huffman

import (
	"strconv"
	"strings"

	"github.com/DODOEX/b64huff/internal/common"
)

// Code is a bit sequence read root to leaf. The low Len bits of Bits hold
// it, first bit at position Len-1.
type Code struct {
	Bits uint64
	Len  uint8
}

// Bit returns the i-th transmitted bit, 0 <= i < Len.
func (c Code) Bit(i int) uint8 {
	return uint8(c.Bits>>(int(c.Len)-1-i)) & 1
}

// HasPrefix reports whether p is a prefix of c (or equal to it).
func (c Code) HasPrefix(p Code) bool {
	if p.Len > c.Len {
		return false
	}
	return c.Bits>>(c.Len-p.Len) == p.Bits
}

func (c Code) String() string {
	if c.Len == 0 {
		return ""
	}
	s := strconv.FormatUint(c.Bits, 2)
	return strings.Repeat("0", int(c.Len)-len(s)) + s
}

// Codebook maps every alphabet symbol to its code.
type Codebook [AlphabetSize]Code

// GenerateCodebook traces each leaf up to the root, then reverses the edge
// labels into transmission order.
func GenerateCodebook(t *Tree) (Codebook, error) {
	var cb Codebook
	var path [MaxCodeLength]uint8

	for s := 0; s < AlphabetSize; s++ {
		n := 0
		id := NodeID(s)
		for {
			parent, ok := t.Parent(id)
			if !ok {
				break
			}
			if n == MaxCodeLength {
				return Codebook{}, common.CodeTooLongError("code for " + Symbol(s).String() + " exceeds " + strconv.Itoa(MaxCodeLength) + " bits")
			}
			path[n] = uint8(t.nodes[id].side)
			n++
			id = parent
		}

		var code Code
		for i := n - 1; i >= 0; i-- {
			code.Bits = code.Bits<<1 | uint64(path[i])
		}
		code.Len = uint8(n)
		cb[s] = code
	}

	return cb, nil
}

// Validate checks that every code has a legal length and that the set is
// prefix-free.
func (cb *Codebook) Validate() error {
	for s, c := range cb {
		if c.Len < 1 || c.Len > MaxCodeLength {
			return common.MalformedArtifactError("code for " + Symbol(s).String() + " has invalid length " + strconv.Itoa(int(c.Len)))
		}
		if c.Len < 64 && c.Bits>>c.Len != 0 {
			return common.MalformedArtifactError("code for " + Symbol(s).String() + " is wider than its length")
		}
	}
	for a := range cb {
		for b := range cb {
			if a != b && cb[b].HasPrefix(cb[a]) {
				return common.MalformedArtifactError("codebook is not prefix-free: " + Symbol(a).String() + " prefixes " + Symbol(b).String())
			}
		}
	}
	return nil
}

// PayloadBits is the payload length for a stream with the given weights.
func (cb *Codebook) PayloadBits(weights *WeightTable) uint64 {
	var n uint64
	for s, w := range weights {
		n += w * uint64(cb[s].Len)
	}
	return n
}

// String renders one "symbol length bits" line per record.
func (cb *Codebook) String() string {
	var b strings.Builder
	for s, c := range cb {
		b.WriteString(Symbol(s).String())
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(int(c.Len)))
		b.WriteByte(' ')
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Padding returns how many zero bits fill the last payload byte, 0..7.
func Padding(payloadBits uint64) uint8 {
	return uint8((8 - payloadBits%8) % 8)
}

// BuildCodebook runs the builder, derives the codes and tears the tree down.
func BuildCodebook(weights *WeightTable) (Codebook, error) {
	t := BuildTree(weights)
	defer t.Teardown()
	return GenerateCodebook(t)
}
