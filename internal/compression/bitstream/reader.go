// Package bitstream reads and writes individual bits and fixed-width
// big-endian integers over a byte stream, most significant bit first.
//
// Readers and writers hold a single partially consumed or partially filled
// byte and must not be shared between goroutines.
package bitstream

import (
	"io"

	"github.com/icza/bitio"
)

// Reader pulls bits from an underlying io.Reader.
type Reader struct {
	br       *bitio.Reader
	consumed uint64
}

func NewReader(r io.Reader) *Reader {
	return &Reader{br: bitio.NewReader(r)}
}

// ReadBit returns the next bit. It returns io.EOF once the underlying
// stream is exhausted.
func (r *Reader) ReadBit() (bool, error) {
	bit, err := r.br.ReadBool()
	if err != nil {
		return false, err
	}
	r.consumed++
	return bit, nil
}

// ReadBits composes n calls to ReadBit into an unsigned value, first bit
// read landing in the most significant position. n must not exceed 64.
//
// If the stream ends before the first bit the error is io.EOF; if it ends
// after some bits were read the error is io.ErrUnexpectedEOF. On error the
// returned value holds the bits read before the failure.
func (r *Reader) ReadBits(n uint8) (uint64, error) {
	var u uint64
	for i := uint8(0); i < n; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			if err == io.EOF && i > 0 {
				err = io.ErrUnexpectedEOF
			}
			return u, err
		}
		u <<= 1
		if bit {
			u |= 1
		}
	}
	return u, nil
}

func (r *Reader) ReadByte() (byte, error) {
	u, err := r.ReadBits(8)
	return byte(u), err
}

func (r *Reader) ReadU16() (uint16, error) {
	u, err := r.ReadBits(16)
	return uint16(u), err
}

func (r *Reader) ReadU64() (uint64, error) {
	return r.ReadBits(64)
}

// BitsRead reports how many bits have been returned so far.
func (r *Reader) BitsRead() uint64 {
	return r.consumed
}
