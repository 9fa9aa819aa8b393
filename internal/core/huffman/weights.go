package huffman

import (
	"io"
	"strconv"

	"github.com/DODOEX/b64huff/internal/common"
)

// WeightTable holds one occurrence count per alphabet symbol.
type WeightTable [AlphabetSize]uint64

// Total is the number of symbols counted.
func (w *WeightTable) Total() (n uint64) {
	for _, c := range w {
		n += c
	}
	return n
}

// Counter is an io.Writer that tallies alphabet symbols.
// Feed it the output of a Base64 encoder.
type Counter struct {
	weights WeightTable
}

func (c *Counter) Write(p []byte) (int, error) {
	for i, b := range p {
		s, ok := SymbolOf(b)
		if !ok {
			return i, common.IOError("unexpected character " + strconv.QuoteToASCII(string(rune(b))) + " in base64 stream")
		}
		c.weights[s]++
	}
	return len(p), nil
}

// Weights returns the counts seen so far.
func (c *Counter) Weights() WeightTable {
	return c.weights
}

// CountWeights reads text to EOF and counts its symbols. On a read error no
// table is returned.
func CountWeights(text io.Reader) (WeightTable, error) {
	var c Counter
	if _, err := io.Copy(&c, text); err != nil {
		if common.IsCodecErrors(err) {
			return WeightTable{}, err
		}
		return WeightTable{}, common.IOError("failed to read symbol stream", err)
	}
	return c.Weights(), nil
}
