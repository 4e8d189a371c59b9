package compression

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/adilg123/file-compressor/internal/compression/algorithms/external"
	"github.com/adilg123/file-compressor/internal/compression/algorithms/huffman"
	"github.com/adilg123/file-compressor/internal/compression/algorithms/lzss"
	"github.com/adilg123/file-compressor/internal/compression/stream"
	"github.com/pierrec/xxHash/xxHash32"
)

// Options contains compression/decompression options
type Options struct {
	Algorithm string
	Workers   int  // Huffman frequency counting; <= 0 means one per CPU
	Strict    bool // reject truncated input instead of returning a prefix
}

// Stats contains compression statistics
type Stats struct {
	OriginalSize     int
	ProcessedSize    int
	CompressionRatio float64
	Algorithm        string
	// Checksum is the xxHash32 of the uncompressed data.
	Checksum uint32
}

// AlgorithmFactory defines the interface for compression algorithms
type AlgorithmFactory interface {
	NewCompressionReaderAndWriter(options Options) (io.ReadCloser, io.WriteCloser)
	NewDecompressionReaderAndWriter(options Options) (io.ReadCloser, io.WriteCloser)
}

type codecFactory struct {
	description string
	extension   string
	compress    func(Options) stream.Func
	decompress  func(Options) stream.Func
}

func (f *codecFactory) NewCompressionReaderAndWriter(options Options) (io.ReadCloser, io.WriteCloser) {
	return stream.NewReaderAndWriter(f.compress(options))
}

func (f *codecFactory) NewDecompressionReaderAndWriter(options Options) (io.ReadCloser, io.WriteCloser) {
	return stream.NewReaderAndWriter(f.decompress(options))
}

var _ AlgorithmFactory = (*codecFactory)(nil)

func fixed(fn stream.Func) func(Options) stream.Func {
	return func(Options) stream.Func { return fn }
}

// factoryMap maps algorithm names to their factories
var factoryMap = map[string]*codecFactory{
	"huffman": {
		description: "Huffman coding - lossless data compression using variable-length codes",
		extension:   "huff",
		compress: func(o Options) stream.Func {
			c := &huffman.Codec{Workers: o.Workers, Strict: o.Strict}
			return c.Compress
		},
		decompress: func(o Options) stream.Func {
			c := &huffman.Codec{Workers: o.Workers, Strict: o.Strict}
			return c.Decompress
		},
	},
	"lzss": {
		description: "Lempel-Ziv-Storer-Szymanski - dictionary-based compression",
		extension:   "lzss",
		compress: func(o Options) stream.Func {
			c := &lzss.Codec{Strict: o.Strict}
			return c.Compress
		},
		decompress: func(o Options) stream.Func {
			c := &lzss.Codec{Strict: o.Strict}
			return c.Decompress
		},
	},
	"flate": {
		description: "DEFLATE - combination of LZ77 and Huffman coding",
		extension:   "flate",
		compress:    fixed(external.FlateCompress),
		decompress:  fixed(external.FlateDecompress),
	},
	"gzip": {
		description: "GZIP - wrapper around DEFLATE with headers and checksums",
		extension:   "gz",
		compress:    fixed(external.GzipCompress),
		decompress:  fixed(external.GzipDecompress),
	},
	"zstd": {
		description: "Zstandard - LZ77 with finite state entropy coding",
		extension:   "zst",
		compress:    fixed(external.ZstdCompress),
		decompress:  fixed(external.ZstdDecompress),
	},
	"snappy": {
		description: "Snappy - fast LZ77 without entropy coding (framed format)",
		extension:   "sz",
		compress:    fixed(external.SnappyCompress),
		decompress:  fixed(external.SnappyDecompress),
	},
	"brotli": {
		description: "Brotli - LZ77 with context-modeled Huffman coding",
		extension:   "br",
		compress:    fixed(external.BrotliCompress),
		decompress:  fixed(external.BrotliDecompress),
	},
	"lz4": {
		description: "LZ4 - byte-aligned LZ77 tuned for speed (frame format)",
		extension:   "lz4",
		compress:    fixed(external.LZ4Compress),
		decompress:  fixed(external.LZ4Decompress),
	},
}

// IsValidAlgorithm checks if the provided algorithm is supported
func IsValidAlgorithm(algorithm string) bool {
	_, exists := factoryMap[algorithm]
	return exists
}

// GetSupportedAlgorithms returns a sorted list of supported algorithms
func GetSupportedAlgorithms() []string {
	names := make([]string, 0, len(factoryMap))
	for name := range factoryMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the human readable description of an algorithm.
func Describe(algorithm string) string {
	if f, ok := factoryMap[algorithm]; ok {
		return f.description
	}
	return ""
}

// Extension returns the file extension used for an algorithm's output.
func Extension(algorithm string) string {
	if f, ok := factoryMap[algorithm]; ok {
		return f.extension
	}
	return "compressed"
}

// IsCorrupt reports whether err means the input was not a valid stream.
func IsCorrupt(err error) bool {
	return errors.Is(err, huffman.ErrCorruptStream) || errors.Is(err, lzss.ErrCorruptStream) ||
		errors.Is(err, huffman.ErrTruncated) || errors.Is(err, lzss.ErrTruncated)
}

func lookup(algorithm string) (*codecFactory, error) {
	factory, ok := factoryMap[algorithm]
	if !ok {
		return nil, fmt.Errorf("unsupported algorithm: %s", algorithm)
	}
	return factory, nil
}

// CompressStream compresses r into w without buffering the whole input
// (Huffman still buffers non-seekable input for its counting pass).
func CompressStream(r io.Reader, w io.Writer, options Options) error {
	factory, err := lookup(options.Algorithm)
	if err != nil {
		return err
	}
	return factory.compress(options)(r, w)
}

// DecompressStream decompresses r into w.
func DecompressStream(r io.Reader, w io.Writer, options Options) error {
	factory, err := lookup(options.Algorithm)
	if err != nil {
		return err
	}
	return factory.decompress(options)(r, w)
}

// Compress compresses data using the specified algorithm
func Compress(data []byte, options Options) ([]byte, *Stats, error) {
	factory, err := lookup(options.Algorithm)
	if err != nil {
		return nil, nil, err
	}
	reader, writer := factory.NewCompressionReaderAndWriter(options)

	compressedData, err := processData(data, reader, writer)
	if err != nil {
		return nil, nil, fmt.Errorf("compression failed: %w", err)
	}

	stats := &Stats{
		OriginalSize:  len(data),
		ProcessedSize: len(compressedData),
		Algorithm:     options.Algorithm,
		Checksum:      xxHash32.Checksum(data, 0),
	}
	if len(data) > 0 {
		stats.CompressionRatio = float64(len(compressedData)) / float64(len(data)) * 100
	}
	return compressedData, stats, nil
}

// Decompress decompresses data using the specified algorithm
func Decompress(data []byte, options Options) ([]byte, *Stats, error) {
	factory, err := lookup(options.Algorithm)
	if err != nil {
		return nil, nil, err
	}
	reader, writer := factory.NewDecompressionReaderAndWriter(options)

	decompressedData, err := processData(data, reader, writer)
	if err != nil {
		return nil, nil, fmt.Errorf("decompression failed: %w", err)
	}

	stats := &Stats{
		OriginalSize:  len(data),
		ProcessedSize: len(decompressedData),
		Algorithm:     options.Algorithm,
		Checksum:      xxHash32.Checksum(decompressedData, 0),
	}
	if len(decompressedData) > 0 {
		stats.CompressionRatio = float64(len(data)) / float64(len(decompressedData)) * 100
	}
	return decompressedData, stats, nil
}

// processData writes the input through writer, closes it to run the codec and
// collects the result from reader.
func processData(inputData []byte, reader io.ReadCloser, writer io.WriteCloser) ([]byte, error) {
	defer reader.Close()

	if _, err := writer.Write(inputData); err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to write data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return io.ReadAll(reader)
}

// Checksum returns the xxHash32 of everything read from r.
func Checksum(r io.Reader) (uint32, error) {
	h := xxHash32.New(0)
	if _, err := io.Copy(h, r); err != nil {
		return 0, err
	}
	return h.Sum32(), nil
}
