package huffman

import (
	"bufio"
	"encoding/binary"
	"io"
	"strconv"

	"github.com/DODOEX/b64huff/internal/common"
	"github.com/icza/bitio"
)

// Artifact layout:
//
//	padding  = 1 byte, zero bits appended to the last payload byte (0..7)
//	records  = 65 × 10 bytes in alphabet order:
//	  symbol = 1 byte, the alphabet character
//	  length = 1 byte, code length in bits (1..64)
//	  value  = 8 bytes big-endian, code in the low `length` bits
//	payload  = codes of the Base64 stream, MSB first
const (
	headerSize   = 1
	recordSize   = 10
	codebookSize = AlphabetSize * recordSize

	// PrologueSize is the number of bytes before the payload.
	PrologueSize = headerSize + codebookSize
)

func appendPrologue(b []byte, padding uint8, cb *Codebook) []byte {
	b = append(b, padding)
	for s, c := range cb {
		b = append(b, Alphabet[s], c.Len)
		b = binary.BigEndian.AppendUint64(b, c.Bits)
	}
	return b
}

// Writer packs a Base64 stream into an artifact. The header and codebook
// are written by NewWriter; Write appends payload bits; Close pads the
// final byte and flushes.
type Writer struct {
	out  *bufio.Writer
	bits *bitio.Writer
	cb   Codebook

	padding     uint8
	payloadBits uint64
	want, seen  WeightTable
	written     int64
	closed      bool
}

// NewWriter writes the prologue for a stream with the given weights. The
// payload later passed to Write must have exactly these weights.
func NewWriter(w io.Writer, cb Codebook, weights WeightTable) (*Writer, error) {
	payloadBits := cb.PayloadBits(&weights)
	pw := &Writer{
		out:         bufio.NewWriter(w),
		cb:          cb,
		padding:     Padding(payloadBits),
		payloadBits: payloadBits,
		want:        weights,
	}

	prologue := appendPrologue(make([]byte, 0, PrologueSize), pw.padding, &cb)
	if _, err := pw.out.Write(prologue); err != nil {
		return nil, common.IOError("failed to write artifact header", err)
	}
	pw.written = PrologueSize
	pw.bits = bitio.NewWriter(pw.out)
	return pw, nil
}

func (w *Writer) Write(p []byte) (int, error) {
	for i, b := range p {
		s, ok := SymbolOf(b)
		if !ok {
			return i, common.IOError("unexpected character " + strconv.QuoteToASCII(string(rune(b))) + " in base64 stream")
		}
		c := w.cb[s]
		if err := w.bits.WriteBits(c.Bits, c.Len); err != nil {
			return i, common.IOError("failed to write payload", err)
		}
		w.seen[s]++
	}
	return len(p), nil
}

// Close checks the payload against the announced weights, pads the last
// byte and flushes. It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if w.seen != w.want {
		return common.IOError("source changed while encoding: symbol counts differ between passes")
	}

	skipped, err := w.bits.Align()
	if err != nil {
		return common.IOError("failed to write payload", err)
	}
	if skipped != w.padding {
		return common.IOError("payload padding mismatch: wrote " + strconv.Itoa(int(skipped)) + " bits, header says " + strconv.Itoa(int(w.padding)))
	}
	if err := w.bits.Close(); err != nil {
		return common.IOError("failed to write payload", err)
	}
	if err := w.out.Flush(); err != nil {
		return common.IOError("failed to flush artifact", err)
	}
	w.written += int64((w.payloadBits + uint64(w.padding)) / 8)
	return nil
}

// Padding is the header padding count.
func (w *Writer) Padding() uint8 {
	return w.padding
}

// PayloadBits is the number of meaningful payload bits.
func (w *Writer) PayloadBits() uint64 {
	return w.payloadBits
}

// Size is the artifact size in bytes once Close succeeded.
func (w *Writer) Size() int64 {
	return w.written
}
