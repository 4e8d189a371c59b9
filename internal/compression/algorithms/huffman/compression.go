// Package huffman implements a byte-oriented Huffman coder.
//
// A compressed stream starts with the symbol table: a 16-bit count of
// distinct symbols followed by one (8-bit symbol, 64-bit frequency) entry per
// symbol in ascending byte order. The concatenated codes of the input follow,
// zero-padded to a byte boundary. The decoder rebuilds the same tree from the
// table and stops after the announced number of symbols.
package huffman

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/adilg123/file-compressor/internal/compression/bitstream"
)

// Codec holds the knobs shared by compression and decompression.
type Codec struct {
	// Workers bounds frequency-counting parallelism; <= 0 means one per CPU.
	Workers int
	// Strict makes Decompress fail with ErrTruncated instead of returning a
	// short result when the input ends early.
	Strict bool
}

// Compress encodes r into w with a default Codec.
func Compress(r io.Reader, w io.Writer) error {
	return (&Codec{}).Compress(r, w)
}

// Decompress decodes r into w with a default Codec.
func Decompress(r io.Reader, w io.Writer) error {
	return (&Codec{}).Decompress(r, w)
}

// Compress reads r twice: once to count frequencies and once to encode. A
// seekable r is rewound between the passes; any other r is buffered in
// memory during the counting pass.
func (c *Codec) Compress(r io.Reader, w io.Writer) (err error) {
	src, freqs, err := c.survey(r)
	if err != nil {
		return err
	}

	bw := bitstream.NewWriter(w)
	defer func() {
		if cerr := bw.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("huffman: flushing output: %w", cerr)
		}
	}()

	tree := buildTree(&freqs)
	codes := generateCodes(&tree)
	if err := writeHeader(bw, &freqs); err != nil {
		return err
	}
	return encode(bufio.NewReader(src), bw, &codes)
}

func (c *Codec) survey(r io.Reader) (io.Reader, FrequencyTable, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		if start, err := rs.Seek(0, io.SeekCurrent); err == nil {
			freqs, err := CountFrequencies(rs, c.Workers)
			if err != nil {
				return nil, freqs, fmt.Errorf("huffman: %w", err)
			}
			if _, err := rs.Seek(start, io.SeekStart); err != nil {
				return nil, freqs, fmt.Errorf("huffman: rewinding input: %w", err)
			}
			return rs, freqs, nil
		}
	}
	var buf bytes.Buffer
	freqs, err := CountFrequencies(io.TeeReader(r, &buf), c.Workers)
	if err != nil {
		return nil, freqs, fmt.Errorf("huffman: %w", err)
	}
	return &buf, freqs, nil
}

func writeHeader(bw *bitstream.Writer, freqs *FrequencyTable) error {
	if err := bw.WriteU16(uint16(freqs.Distinct())); err != nil {
		return fmt.Errorf("huffman: writing header: %w", err)
	}
	for b, c := range freqs {
		if c == 0 {
			continue
		}
		if err := bw.WriteU8(byte(b)); err != nil {
			return fmt.Errorf("huffman: writing header: %w", err)
		}
		if err := bw.WriteU64(c); err != nil {
			return fmt.Errorf("huffman: writing header: %w", err)
		}
	}
	return nil
}

func encode(src io.ByteReader, bw *bitstream.Writer, codes *codeTable) error {
	for {
		b, err := src.ReadByte()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("huffman: reading input: %w", err)
		}
		code := codes[b]
		if code == "" {
			return fmt.Errorf("huffman: byte %#02x has no code, input changed between passes", b)
		}
		for i := 0; i < len(code); i++ {
			if err := bw.WriteBit(code[i] == '1'); err != nil {
				return fmt.Errorf("huffman: writing output: %w", err)
			}
		}
	}
}
