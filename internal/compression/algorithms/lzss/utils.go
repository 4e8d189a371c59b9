package lzss

import "errors"

const (
	// MaxOffset is the farthest a reference may reach back.
	MaxOffset = 4095
	// MaxLength caps the number of bytes a single reference reproduces.
	MaxLength = 15
	// MinMatchLength is the shortest match worth a reference; shorter
	// matches cost more than the literals they replace.
	MinMatchLength = 3

	// workingBufferSize is how much new input the encoder holds at once,
	// on top of the MaxOffset bytes of history carried between refills.
	workingBufferSize = 1 << 20

	lengthBits = 4
	lengthMask = 1<<lengthBits - 1
)

var (
	// ErrCorruptStream reports a reference that points outside the history
	// decoded so far or carries an impossible length.
	ErrCorruptStream = errors.New("lzss: corrupt stream")
	// ErrTruncated reports a stream that ended inside a token. Only returned
	// in strict mode.
	ErrTruncated = errors.New("lzss: truncated stream")
)

// Token is one unit of the encoded stream: a literal byte when Length is 0,
// otherwise a reference copying Length bytes from Offset bytes back.
type Token struct {
	Literal byte
	Offset  uint16
	Length  uint8
}

func (t Token) IsReference() bool {
	return t.Length > 0
}

// pack places the offset in the high 12 bits and the length in the low 4.
func (t Token) pack() uint16 {
	return t.Offset<<lengthBits | uint16(t.Length)
}

func unpack(field uint16) Token {
	return Token{Offset: field >> lengthBits, Length: uint8(field & lengthMask)}
}
