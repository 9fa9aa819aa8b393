package huffman

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"strconv"

	"github.com/DODOEX/b64huff/internal/common"
	"github.com/icza/bitio"
)

// Header is the parsed prologue of an artifact.
type Header struct {
	Padding  uint8
	Codebook Codebook
}

// ReadHeader reads and validates the padding byte and the 65 codebook
// records.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [PrologueSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, common.MalformedArtifactError("artifact is shorter than its header", err)
		}
		return Header{}, common.IOError("failed to read artifact header", err)
	}
	return parseHeader(buf[:])
}

func parseHeader(b []byte) (Header, error) {
	h := Header{Padding: b[0]}
	if h.Padding > 7 {
		return Header{}, common.MalformedArtifactError("padding count " + strconv.Itoa(int(h.Padding)) + " is out of range")
	}

	records := b[headerSize:]
	for s := 0; s < AlphabetSize; s++ {
		rec := records[s*recordSize : (s+1)*recordSize]
		if rec[0] != Alphabet[s] {
			return Header{}, common.MalformedArtifactError("record " + strconv.Itoa(s) + " holds " + strconv.QuoteToASCII(string(rune(rec[0]))) + ", want " + Symbol(s).String())
		}
		h.Codebook[s] = Code{Len: rec[1], Bits: binary.BigEndian.Uint64(rec[2:])}
	}

	if err := h.Codebook.Validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}

type trieNode struct {
	child    [2]uint16
	hasChild [2]bool
	leaf     bool
	symbol   Symbol
}

// decodeTrie is a binary trie over the codebook; node 0 is the root.
type decodeTrie []trieNode

func buildTrie(cb *Codebook) (decodeTrie, error) {
	t := make(decodeTrie, 1, NodeCount)
	for s, c := range cb {
		cur := 0
		for i := 0; i < int(c.Len); i++ {
			if t[cur].leaf {
				return nil, common.MalformedArtifactError("codebook is not prefix-free at " + Symbol(s).String())
			}
			bit := c.Bit(i)
			if !t[cur].hasChild[bit] {
				t = append(t, trieNode{})
				t[cur].child[bit] = uint16(len(t) - 1)
				t[cur].hasChild[bit] = true
			}
			cur = int(t[cur].child[bit])
		}
		if t[cur].leaf || t[cur].hasChild[0] || t[cur].hasChild[1] {
			return nil, common.MalformedArtifactError("codebook is not prefix-free at " + Symbol(s).String())
		}
		t[cur].leaf = true
		t[cur].symbol = Symbol(s)
	}

	for i := range t {
		if !t[i].leaf && !(t[i].hasChild[0] && t[i].hasChild[1]) {
			return nil, common.MalformedArtifactError("codebook is incomplete")
		}
	}
	return t, nil
}

// payloadSource feeds the bit reader one byte at a time and remembers
// whether the byte it just handed out was the last one.
type payloadSource struct {
	r     *bufio.Reader
	read  int64
	final bool
	err   error
}

func (p *payloadSource) more() bool {
	if p.err != nil {
		return false
	}
	if _, err := p.r.Peek(1); err != nil {
		if err != io.EOF {
			p.err = err
		}
		return false
	}
	return true
}

func (p *payloadSource) ReadByte() (byte, error) {
	b, err := p.r.ReadByte()
	if err != nil {
		return 0, err
	}
	p.read++
	if _, err := p.r.Peek(1); err != nil {
		if err == io.EOF {
			p.final = true
		} else {
			p.err = err
		}
	}
	return b, nil
}

func (p *payloadSource) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	c, err := p.ReadByte()
	if err != nil {
		return 0, err
	}
	b[0] = c
	return 1, nil
}

// Reader decodes an artifact back into its Base64 stream.
type Reader struct {
	header Header
	trie   decodeTrie
	src    *payloadSource
	bits   *bitio.Reader

	cur     int
	avail   int
	symbols int64
	pad     int
	err     error
}

// NewReader parses the artifact prologue from r. Payload bytes are read
// on demand by Read.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	h, err := ReadHeader(br)
	if err != nil {
		return nil, err
	}
	t, err := buildTrie(&h.Codebook)
	if err != nil {
		return nil, err
	}

	src := &payloadSource{r: br}
	return &Reader{
		header: h,
		trie:   t,
		src:    src,
		bits:   bitio.NewReader(src),
	}, nil
}

// Header returns the parsed prologue.
func (r *Reader) Header() Header {
	return r.header
}

// Symbols reports how many symbols have been decoded so far.
func (r *Reader) Symbols() int64 {
	return r.symbols
}

// PayloadBytes reports how many payload bytes have been consumed so far.
func (r *Reader) PayloadBytes() int64 {
	return r.src.read
}

func (r *Reader) nextBit() (bit uint8, ok bool, err error) {
	if r.avail == 0 {
		if !r.src.more() {
			if r.src.err != nil {
				return 0, false, common.IOError("failed to read payload", r.src.err)
			}
			return 0, false, nil
		}
		r.avail = 8
	}

	b, err := r.bits.ReadBool()
	if err != nil {
		return 0, false, common.IOError("failed to read payload", err)
	}
	r.avail--
	// the last byte only carries 8-padding meaningful bits
	if r.src.final && r.avail == int(r.header.Padding) {
		r.avail = 0
	}
	if b {
		return 1, true, nil
	}
	return 0, true, nil
}

// Read fills p with decoded Base64 characters.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}

	n := 0
	for n < len(p) {
		bit, ok, err := r.nextBit()
		if err != nil {
			r.err = err
			return n, err
		}
		if !ok {
			r.err = r.finish()
			if n > 0 && r.err == io.EOF {
				return n, nil
			}
			return n, r.err
		}

		node := &r.trie[r.cur]
		r.cur = int(node.child[bit])
		if next := &r.trie[r.cur]; next.leaf {
			if err := r.checkPadding(next.symbol); err != nil {
				r.err = err
				return n, err
			}
			p[n] = next.symbol.Char()
			n++
			r.symbols++
			r.cur = 0
		}
	}
	return n, nil
}

func (r *Reader) finish() error {
	if r.src.read == 0 && r.header.Padding != 0 {
		return common.MalformedArtifactError("empty payload with padding " + strconv.Itoa(int(r.header.Padding)))
	}
	if r.cur != 0 {
		return common.MalformedArtifactError("payload ends in the middle of a code")
	}
	if r.symbols%4 != 0 {
		return common.MalformedArtifactError("symbol count " + strconv.FormatInt(r.symbols, 10) + " is not a multiple of 4")
	}
	return io.EOF
}

// checkPadding allows '=' only as the last one or two symbols of the
// stream.
func (r *Reader) checkPadding(s Symbol) error {
	if s == padSymbol {
		r.pad++
		if r.pad > 2 {
			return common.MalformedArtifactError("more than two padding symbols at symbol " + strconv.FormatInt(r.symbols, 10))
		}
		return nil
	}
	if r.pad > 0 {
		return common.MalformedArtifactError(s.String() + " follows padding at symbol " + strconv.FormatInt(r.symbols, 10))
	}
	return nil
}
