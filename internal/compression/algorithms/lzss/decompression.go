package lzss

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/adilg123/file-compressor/internal/compression/bitstream"
)

// Decompress replays tokens against a history of the last MaxOffset output
// bytes until the input runs out.
//
// Running out of input between tokens, or inside the zero padding of the
// final byte, is a clean end. Running out anywhere else keeps the output
// produced so far and is reported as ErrTruncated only in strict mode. A
// reference outside the history fails with ErrCorruptStream.
func (c *Codec) Decompress(r io.Reader, w io.Writer) (err error) {
	br := bitstream.NewReader(r)
	out := bufio.NewWriter(w)
	defer func() {
		if ferr := out.Flush(); err == nil && ferr != nil {
			err = fmt.Errorf("lzss: writing output: %w", ferr)
		}
	}()

	var history window
	for {
		start := br.BitsRead()
		literal, err := br.ReadBit()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("lzss: reading input: %w", err)
		}

		if literal {
			b, err := br.ReadByte()
			if err != nil {
				return c.endOfStream(err, false)
			}
			if err := out.WriteByte(b); err != nil {
				return fmt.Errorf("lzss: writing output: %w", err)
			}
			history.push(b)
			continue
		}

		field, err := br.ReadU16()
		if err != nil {
			padding := br.BitsRead()-start < 8 && field == 0
			return c.endOfStream(err, padding)
		}
		ref := unpack(field)
		offset, length := int(ref.Offset), int(ref.Length)
		if offset == 0 || offset > history.filled || length < MinMatchLength {
			return fmt.Errorf("%w: reference offset %d length %d with %d bytes of history",
				ErrCorruptStream, offset, length, history.filled)
		}
		for i := 0; i < length; i++ {
			b := history.back(offset)
			if err := out.WriteByte(b); err != nil {
				return fmt.Errorf("lzss: writing output: %w", err)
			}
			history.push(b)
		}
	}
}

func (c *Codec) endOfStream(err error, padding bool) error {
	if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("lzss: reading input: %w", err)
	}
	if padding || !c.Strict {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrTruncated, err)
}
