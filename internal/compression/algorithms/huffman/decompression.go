package huffman

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/adilg123/file-compressor/internal/compression/bitstream"
)

// Decompress rebuilds the tree from the stream header and decodes exactly as
// many symbols as the header announces. A stream with no bytes at all decodes
// to nothing.
func (c *Codec) Decompress(r io.Reader, w io.Writer) (err error) {
	br := bitstream.NewReader(r)
	freqs, err := readHeader(br)
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}

	out := bufio.NewWriter(w)
	defer func() {
		if ferr := out.Flush(); err == nil && ferr != nil {
			err = fmt.Errorf("huffman: writing output: %w", ferr)
		}
	}()

	tree := buildTree(&freqs)
	err = decode(br, out, &tree, freqs.Total())
	if isEndOfStream(err) {
		if c.Strict {
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		return nil
	}
	return err
}

func isEndOfStream(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

// readHeader returns io.EOF when the stream is completely empty.
func readHeader(br *bitstream.Reader) (FrequencyTable, error) {
	var freqs FrequencyTable
	k, err := br.ReadU16()
	if err == io.EOF {
		return freqs, io.EOF
	}
	if err != nil {
		return freqs, headerError(err)
	}
	if k > 256 {
		return freqs, fmt.Errorf("%w: %d distinct symbols", ErrCorruptStream, k)
	}

	var total uint64
	prev := -1
	for i := 0; i < int(k); i++ {
		sym, err := br.ReadByte()
		if err != nil {
			return freqs, headerError(err)
		}
		freq, err := br.ReadU64()
		if err != nil {
			return freqs, headerError(err)
		}
		if int(sym) <= prev {
			return freqs, fmt.Errorf("%w: symbol %#02x out of order", ErrCorruptStream, sym)
		}
		if freq == 0 {
			return freqs, fmt.Errorf("%w: symbol %#02x has zero frequency", ErrCorruptStream, sym)
		}
		if freq > math.MaxUint64-total {
			return freqs, fmt.Errorf("%w: frequency total overflows", ErrCorruptStream)
		}
		total += freq
		freqs[sym] = freq
		prev = int(sym)
	}
	return freqs, nil
}

func headerError(err error) error {
	if isEndOfStream(err) {
		return fmt.Errorf("%w: header cut short", ErrCorruptStream)
	}
	return fmt.Errorf("huffman: reading header: %w", err)
}

// decode walks the tree one bit at a time, 0 to the left and 1 to the
// right, emitting a byte at every leaf. A lone-leaf tree consumes one bit per
// symbol.
func decode(br *bitstream.Reader, out io.ByteWriter, t *huffmanTree, count uint64) error {
	if t.empty() {
		return nil
	}
	for produced := uint64(0); produced < count; produced++ {
		id := t.root
		if t.nodes[id].isLeaf() {
			if _, err := br.ReadBit(); err != nil {
				return fmt.Errorf("huffman: reading input: %w", err)
			}
		}
		for !t.nodes[id].isLeaf() {
			bit, err := br.ReadBit()
			if err != nil {
				return fmt.Errorf("huffman: reading input: %w", err)
			}
			if bit {
				id = t.nodes[id].right
			} else {
				id = t.nodes[id].left
			}
		}
		if err := out.WriteByte(t.nodes[id].symbol); err != nil {
			return fmt.Errorf("huffman: writing output: %w", err)
		}
	}
	return nil
}
