package helpers

import (
	"bytes"
	"io"

	"github.com/icza/huffman/hufio"
)

// Compress runs data through the general purpose byte-level Huffman coder.
// Jobs use it as a size reference for their own artifacts.
func Compress(data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := hufio.NewWriter(buf)

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func Decompress(data []byte) ([]byte, error) {
	r := hufio.NewReader(bytes.NewReader(data))
	if data, err := io.ReadAll(r); err != nil {
		return nil, err
	} else {
		return data, nil
	}
}

// CompressedSize streams r through the reference coder and reports the
// compressed size without keeping the output.
func CompressedSize(r io.Reader) (int64, error) {
	cw := &countWriter{}
	w := hufio.NewWriter(cw)
	if _, err := io.Copy(w, r); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return cw.n, nil
}

type countWriter struct {
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}
