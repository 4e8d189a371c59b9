// Package lzss implements an LZSS dictionary coder with a 4095-byte window
// and matches of 3 to 15 bytes.
//
// The stream is a sequence of tokens with no header. Each token starts with a
// flag bit: 1 is followed by a literal byte, 0 by a 16-bit field holding the
// backward offset in its high 12 bits and the match length in its low 4 bits.
// The final byte is zero-padded, which a decoder sees as an unfinished
// reference and ignores.
package lzss

import (
	"errors"
	"fmt"
	"io"

	"github.com/adilg123/file-compressor/internal/compression/bitstream"
)

// Codec holds the knobs shared by compression and decompression.
type Codec struct {
	// Strict makes Decompress fail with ErrTruncated when the input ends
	// inside a token instead of in the final byte's padding.
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

// Compress reads r in blocks of up to 1 MiB. The last MaxOffset bytes of
// each block stay in the working buffer as search history for the next one.
func (c *Codec) Compress(r io.Reader, w io.Writer) (err error) {
	bw := bitstream.NewWriter(w)
	defer func() {
		if cerr := bw.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("lzss: flushing output: %w", cerr)
		}
	}()

	emit := func(tok Token) error {
		if err := writeToken(bw, tok); err != nil {
			return fmt.Errorf("lzss: writing output: %w", err)
		}
		return nil
	}

	buf := make([]byte, MaxOffset+workingBufferSize)
	history := 0
	var mf matchFinder
	for {
		n, rerr := io.ReadFull(r, buf[history:])
		if n > 0 {
			data := buf[:history+n]
			if err := encodeBlock(&mf, data, history, emit); err != nil {
				return err
			}
			keep := min(MaxOffset, len(data))
			copy(buf, data[len(data)-keep:])
			history = keep
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) || errors.Is(rerr, io.ErrUnexpectedEOF) {
				return nil
			}
			return fmt.Errorf("lzss: reading input: %w", rerr)
		}
	}
}

func writeToken(bw *bitstream.Writer, tok Token) error {
	if !tok.IsReference() {
		if err := bw.WriteBit(true); err != nil {
			return err
		}
		return bw.WriteU8(tok.Literal)
	}
	if err := bw.WriteBit(false); err != nil {
		return err
	}
	return bw.WriteU16(tok.pack())
}

// encodeBlock tokenizes data[start:]; data[:start] is history that may be
// referenced but is not emitted again.
func encodeBlock(mf *matchFinder, data []byte, start int, emit func(Token) error) error {
	mf.reset(data)
	for p := 0; p < start; p++ {
		mf.insert(p)
	}
	for pos := start; pos < len(data); {
		offset, length := mf.find(pos)
		tok := Token{Literal: data[pos]}
		advance := 1
		if length >= MinMatchLength {
			tok = Token{Offset: uint16(offset), Length: uint8(length)}
			advance = length
		}
		if err := emit(tok); err != nil {
			return err
		}
		for i := 0; i < advance; i++ {
			mf.insert(pos + i)
		}
		pos += advance
	}
	return nil
}

const hashBits = 15

// matchFinder chains together every position sharing a 3-byte prefix hash,
// newest first, so candidates are visited from the nearest offset outwards.
// Only the hash is used to skip candidates; every candidate is verified byte
// by byte, so results equal an exhaustive scan of the window.
type matchFinder struct {
	data []byte
	head [1 << hashBits]int32
	prev []int32
}

func hash3(b []byte) uint32 {
	return (uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])) * 2654435761 >> (32 - hashBits)
}

func (m *matchFinder) reset(data []byte) {
	m.data = data
	for i := range m.head {
		m.head[i] = -1
	}
	if cap(m.prev) < len(data) {
		m.prev = make([]int32, len(data))
	}
	m.prev = m.prev[:len(data)]
}

func (m *matchFinder) insert(p int) {
	if p+MinMatchLength > len(m.data) {
		return
	}
	h := hash3(m.data[p:])
	m.prev[p] = m.head[h]
	m.head[h] = int32(p)
}

// find returns the longest match for data[pos:] within MaxOffset bytes back
// and MaxLength bytes ahead. A farther candidate replaces the best so far
// only when strictly longer, so ties go to the nearest offset. A match may
// run into the bytes it reproduces. Matches shorter than MinMatchLength are
// reported as length 0.
func (m *matchFinder) find(pos int) (offset, length int) {
	data := m.data
	if pos+MinMatchLength > len(data) {
		return 0, 0
	}
	end := min(len(data), pos+MaxLength)
	limit := pos - MaxOffset
	for cand := m.head[hash3(data[pos:])]; cand >= 0 && int(cand) >= limit; cand = m.prev[cand] {
		i := int(cand)
		n := 0
		for pos+n < end && data[i+n] == data[pos+n] {
			n++
		}
		if n > length {
			offset, length = pos-i, n
			if pos+n == end {
				break
			}
		}
	}
	if length < MinMatchLength {
		return 0, 0
	}
	return offset, length
}
