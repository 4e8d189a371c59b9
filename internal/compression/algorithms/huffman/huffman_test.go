package huffman

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func allBytes() []byte {
	data := make([]byte, 0, 256*3)
	for i := 0; i < 3; i++ {
		for b := 0; b < 256; b++ {
			data = append(data, byte(b))
		}
	}
	return data
}

func roundTrip(t *testing.T, c *Codec, data []byte) []byte {
	t.Helper()
	var compressed bytes.Buffer
	if err := c.Compress(bytes.NewReader(data), &compressed); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	encoded := append([]byte(nil), compressed.Bytes()...)
	var out bytes.Buffer
	if err := c.Decompress(&compressed, &out); err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(out.Bytes(), data) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", out.Len(), len(data))
	}
	return encoded
}

func TestRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"single_byte", []byte{0x7F}},
		{"two_symbols", []byte("abababbbbba")},
		{"all_byte_values", allBytes()},
		{"text", []byte(strings.Repeat("It was the best of times, it was the worst of times. ", 200))},
		{"skewed_random", randomBytes(700_001, 9)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			roundTrip(t, &Codec{}, tc.data)
			roundTrip(t, &Codec{Workers: 1, Strict: true}, tc.data)
		})
	}
}

func TestPackageLevelEntryPoints(t *testing.T) {
	data := []byte("package level helpers use the default codec")
	var compressed, out bytes.Buffer
	if err := Compress(bytes.NewReader(data), &compressed); err != nil {
		t.Fatal(err)
	}
	if err := Decompress(&compressed, &out); err != nil {
		t.Fatal(err)
	}
	if out.String() != string(data) {
		t.Fatalf("got %q", out.String())
	}
}

func TestSingleValuedInputUsesOneBitPerSymbol(t *testing.T) {
	data := bytes.Repeat([]byte{0x41}, 1000)
	encoded := roundTrip(t, &Codec{}, data)
	// count + one table entry + 1000 one-bit codes
	if want := 2 + 9 + 1000/8; len(encoded) != want {
		t.Fatalf("encoded size %d, want %d", len(encoded), want)
	}
}

func TestEmptyInputEncodesToBareHeader(t *testing.T) {
	encoded := roundTrip(t, &Codec{}, nil)
	if !bytes.Equal(encoded, []byte{0, 0}) {
		t.Fatalf("empty input encoded as % x", encoded)
	}

	var out bytes.Buffer
	if err := Decompress(bytes.NewReader(nil), &out); err != nil || out.Len() != 0 {
		t.Fatalf("zero-byte stream: %d bytes, err %v", out.Len(), err)
	}
}

func TestCompressNonSeekableInput(t *testing.T) {
	data := []byte(strings.Repeat("pipes cannot be rewound; ", 100))
	var compressed, out bytes.Buffer
	// io.MultiReader hides the Seek method of the bytes.Reader.
	if err := Compress(io.MultiReader(bytes.NewReader(data)), &compressed); err != nil {
		t.Fatal(err)
	}
	if err := Decompress(&compressed, &out); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Bytes(), data) {
		t.Fatal("round trip mismatch for non-seekable input")
	}
}

func TestCompressRewindsToStartingOffset(t *testing.T) {
	r := strings.NewReader("skip:payload payload payload")
	if _, err := r.Seek(5, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	var compressed, out bytes.Buffer
	if err := Compress(r, &compressed); err != nil {
		t.Fatal(err)
	}
	if err := Decompress(&compressed, &out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "payload payload payload" {
		t.Fatalf("got %q", out.String())
	}
}

func TestTruncatedStream(t *testing.T) {
	data := []byte(strings.Repeat("truncation is not the same as a clean end. ", 50))
	var compressed bytes.Buffer
	if err := Compress(bytes.NewReader(data), &compressed); err != nil {
		t.Fatal(err)
	}
	cut := compressed.Bytes()[:compressed.Len()-20]

	var lenient bytes.Buffer
	if err := (&Codec{}).Decompress(bytes.NewReader(cut), &lenient); err != nil {
		t.Fatalf("lenient decode: %v", err)
	}
	if lenient.Len() == 0 || lenient.Len() >= len(data) || !bytes.HasPrefix(data, lenient.Bytes()) {
		t.Fatalf("lenient decode produced %d bytes, want a proper prefix", lenient.Len())
	}

	var strict bytes.Buffer
	err := (&Codec{Strict: true}).Decompress(bytes.NewReader(cut), &strict)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("strict decode err = %v, want ErrTruncated", err)
	}
	if !bytes.Equal(strict.Bytes(), lenient.Bytes()) {
		t.Fatal("strict decode did not keep the output produced before the cut")
	}
}

func TestCorruptHeaders(t *testing.T) {
	testCases := []struct {
		name   string
		stream []byte
	}{
		{"half_count", []byte{0x00}},
		{"too_many_symbols", []byte{0x01, 0x01}},
		{"entry_cut_short", []byte{0x00, 0x01, 'a', 0, 0}},
		{"zero_frequency", append([]byte{0x00, 0x01, 'a'}, make([]byte, 8)...)},
		{"out_of_order", []byte{
			0x00, 0x02,
			'b', 0, 0, 0, 0, 0, 0, 0, 1,
			'a', 0, 0, 0, 0, 0, 0, 0, 1,
		}},
		{"duplicate_symbol", []byte{
			0x00, 0x02,
			'a', 0, 0, 0, 0, 0, 0, 0, 1,
			'a', 0, 0, 0, 0, 0, 0, 0, 1,
		}},
		{"frequency_overflow", []byte{
			0x00, 0x02,
			'a', 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
			'b', 0, 0, 0, 0, 0, 0, 0, 1,
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			err := Decompress(bytes.NewReader(tc.stream), &out)
			if !errors.Is(err, ErrCorruptStream) {
				t.Fatalf("err = %v, want ErrCorruptStream", err)
			}
		})
	}
}

func BenchmarkCompress(b *testing.B) {
	data := randomBytes(1<<20, 11)
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		if err := Compress(bytes.NewReader(data), io.Discard); err != nil {
			b.Fatal(err)
		}
	}
}
