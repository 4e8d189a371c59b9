package bitstream

import (
	"bufio"
	"io"

	"github.com/icza/bitio"
)

type flusher interface {
	Flush() error
}

// Writer packs bits into bytes. A byte reaches the underlying io.Writer only
// once all 8 of its bits are written, or when Flush pads it with zeros.
//
// Callers must Close (or Flush) the Writer on every exit path, otherwise the
// trailing partial byte is lost.
type Writer struct {
	sink io.Writer
	buf  *bufio.Writer
	bw   *bitio.Writer
}

func NewWriter(w io.Writer) *Writer {
	buf := bufio.NewWriter(w)
	return &Writer{
		sink: w,
		buf:  buf,
		bw:   bitio.NewWriter(buf),
	}
}

func (w *Writer) WriteBit(bit bool) error {
	return w.bw.WriteBool(bit)
}

// WriteBits writes the low n bits of u, most significant first.
func (w *Writer) WriteBits(u uint64, n uint8) error {
	if n < 64 {
		u &= 1<<n - 1
	}
	return w.bw.WriteBits(u, n)
}

func (w *Writer) WriteU8(b byte) error {
	return w.bw.WriteBits(uint64(b), 8)
}

func (w *Writer) WriteU16(u uint16) error {
	return w.bw.WriteBits(uint64(u), 16)
}

func (w *Writer) WriteU64(u uint64) error {
	return w.bw.WriteBits(u, 64)
}

// Flush writes out any partial byte, padding its low-order bits with 0, and
// flushes the underlying writer when it supports flushing.
func (w *Writer) Flush() error {
	if _, err := w.bw.Align(); err != nil {
		return err
	}
	if err := w.buf.Flush(); err != nil {
		return err
	}
	if f, ok := w.sink.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes the writer. It does not close the underlying io.Writer.
func (w *Writer) Close() error {
	return w.Flush()
}
