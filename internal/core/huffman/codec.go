package huffman

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"

	"github.com/DODOEX/b64huff/internal/common"
)

// Stats describes one encode or decode call.
type Stats struct {
	InputBytes    int64
	OutputBytes   int64
	Symbols       uint64
	PayloadBits   uint64
	Padding       uint8
	Codebook      Codebook
	ArtifactBytes int64
}

// countingReader counts bytes pulled from the source.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// sink records write failures so they can be told apart from read
// failures after io.Copy.
type sink struct {
	w   io.Writer
	n   int64
	err error
}

func (s *sink) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	s.n += int64(n)
	if err != nil {
		s.err = err
	}
	return n, err
}

// expand streams src through a Base64 encoder into w.
func expand(w io.Writer, src io.Reader) (int64, error) {
	enc := base64.NewEncoder(base64.StdEncoding, w)
	cr := &countingReader{r: src}
	if _, err := io.Copy(enc, cr); err != nil {
		if common.IsCodecErrors(err) {
			return cr.n, err
		}
		return cr.n, common.IOError("failed to read source", err)
	}
	if err := enc.Close(); err != nil {
		if common.IsCodecErrors(err) {
			return cr.n, err
		}
		return cr.n, common.IOError("failed to flush base64 stream", err)
	}
	return cr.n, nil
}

// Encode writes the artifact for src to dst. src is read twice, once to
// count symbol weights and once to pack the payload, starting from its
// current offset both times.
func Encode(dst io.Writer, src io.ReadSeeker) (Stats, error) {
	start, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return Stats{}, common.IOError("source is not seekable", err)
	}

	var counter Counter
	n, err := expand(&counter, src)
	if err != nil {
		return Stats{}, err
	}
	weights := counter.Weights()

	cb, err := BuildCodebook(&weights)
	if err != nil {
		return Stats{}, err
	}

	if _, err := src.Seek(start, io.SeekStart); err != nil {
		return Stats{}, common.IOError("failed to rewind source", err)
	}

	w, err := NewWriter(dst, cb, weights)
	if err != nil {
		return Stats{}, err
	}
	if _, err := expand(w, src); err != nil {
		return Stats{}, err
	}
	if err := w.Close(); err != nil {
		return Stats{}, err
	}

	return Stats{
		InputBytes:    n,
		OutputBytes:   w.Size(),
		Symbols:       weights.Total(),
		PayloadBits:   w.PayloadBits(),
		Padding:       w.Padding(),
		Codebook:      cb,
		ArtifactBytes: w.Size(),
	}, nil
}

// Decode reads an artifact from src and writes the original bytes to dst.
func Decode(dst io.Writer, src io.Reader) (Stats, error) {
	cr := &countingReader{r: src}
	r, err := NewReader(cr)
	if err != nil {
		return Stats{}, err
	}

	out := &sink{w: dst}
	if _, err := io.Copy(out, base64.NewDecoder(base64.StdEncoding, r)); err != nil {
		var corrupt base64.CorruptInputError
		switch {
		case out.err != nil:
			return Stats{}, common.IOError("failed to write output", out.err)
		case common.IsCodecErrors(err):
			return Stats{}, err
		case errors.As(err, &corrupt), errors.Is(err, io.ErrUnexpectedEOF):
			return Stats{}, common.MalformedArtifactError("decoded symbols are not valid base64", err)
		}
		return Stats{}, common.IOError("failed to read artifact", err)
	}

	h := r.Header()
	bits := uint64(r.PayloadBytes()) * 8
	if r.PayloadBytes() > 0 {
		bits -= uint64(h.Padding)
	}
	return Stats{
		InputBytes:    cr.n,
		OutputBytes:   out.n,
		Symbols:       uint64(r.Symbols()),
		PayloadBits:   bits,
		Padding:       h.Padding,
		Codebook:      h.Codebook,
		ArtifactBytes: cr.n,
	}, nil
}

// EncodeBytes is Encode over an in-memory input.
func EncodeBytes(data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	if _, err := Encode(buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeBytes is Decode over an in-memory artifact.
func DecodeBytes(artifact []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	if _, err := Decode(buf, bytes.NewReader(artifact)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
