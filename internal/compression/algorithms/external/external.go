// Package external wraps third-party codecs in the same
// func(io.Reader, io.Writer) error shape as the built-in Huffman and LZSS
// coders, so they can be served and compared side by side.
package external

import (
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// encodeWith copies r through the compressing writer zw, always closing it
// so trailers reach w.
func encodeWith(name string, zw io.WriteCloser, r io.Reader) error {
	if _, err := io.Copy(zw, r); err != nil {
		zw.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func decodeWith(name string, zr io.Reader, w io.Writer) error {
	if _, err := io.Copy(w, zr); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func FlateCompress(r io.Reader, w io.Writer) error {
	zw, err := flate.NewWriter(w, flate.DefaultCompression)
	if err != nil {
		return fmt.Errorf("flate: %w", err)
	}
	return encodeWith("flate", zw, r)
}

func FlateDecompress(r io.Reader, w io.Writer) error {
	zr := flate.NewReader(r)
	defer zr.Close()
	return decodeWith("flate", zr, w)
}

func GzipCompress(r io.Reader, w io.Writer) error {
	return encodeWith("gzip", gzip.NewWriter(w), r)
}

func GzipDecompress(r io.Reader, w io.Writer) error {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("gzip: %w", err)
	}
	defer zr.Close()
	return decodeWith("gzip", zr, w)
}

func ZstdCompress(r io.Reader, w io.Writer) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("zstd: %w", err)
	}
	return encodeWith("zstd", zw, r)
}

func ZstdDecompress(r io.Reader, w io.Writer) error {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return fmt.Errorf("zstd: %w", err)
	}
	defer zr.Close()
	return decodeWith("zstd", zr, w)
}

func SnappyCompress(r io.Reader, w io.Writer) error {
	return encodeWith("snappy", snappy.NewBufferedWriter(w), r)
}

func SnappyDecompress(r io.Reader, w io.Writer) error {
	return decodeWith("snappy", snappy.NewReader(r), w)
}

func BrotliCompress(r io.Reader, w io.Writer) error {
	return encodeWith("brotli", brotli.NewWriter(w), r)
}

func BrotliDecompress(r io.Reader, w io.Writer) error {
	return decodeWith("brotli", brotli.NewReader(r), w)
}

func LZ4Compress(r io.Reader, w io.Writer) error {
	return encodeWith("lz4", lz4.NewWriter(w), r)
}

func LZ4Decompress(r io.Reader, w io.Writer) error {
	return decodeWith("lz4", lz4.NewReader(r), w)
}
