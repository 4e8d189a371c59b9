// Command compressor compresses or decompresses a single file with one of the
// registered algorithms.
//
//	compressor [-algo huffman] [-d] [-verify] [-progress] input [output]
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/adilg123/file-compressor/internal/compression"
	"github.com/adilg123/file-compressor/internal/config"
	"github.com/adilg123/file-compressor/internal/fileops"
	"github.com/cheggaaa/pb/v3"
	"github.com/pierrec/xxHash/xxHash32"
)

type options struct {
	compression.Options
	decompress bool
	verify     bool
	progress   bool
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: compressor [flags] input [output]\n")
	flag.PrintDefaults()
	os.Exit(2)
}

var errVerifyDecompress = errors.New("-verify only applies when compressing")

func (o options) validate() error {
	if !compression.IsValidAlgorithm(o.Algorithm) {
		return fmt.Errorf("unknown algorithm %q, supported: %v", o.Algorithm, compression.GetSupportedAlgorithms())
	}
	if o.verify && o.decompress {
		return errVerifyDecompress
	}
	return nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("compressor: ")

	cfg := config.Load()
	var opts options
	flag.StringVar(&opts.Algorithm, "algo", "huffman",
		fmt.Sprintf("compression algorithm (%s)", strings.Join(compression.GetSupportedAlgorithms(), ", ")))
	flag.BoolVar(&opts.decompress, "d", false, "decompress instead of compress")
	flag.BoolVar(&opts.verify, "verify", false, "decompress the result and compare checksums (compression only)")
	flag.BoolVar(&opts.progress, "progress", false, "show a progress bar on stderr")
	flag.BoolVar(&opts.Strict, "strict", cfg.StrictDecode, "reject truncated compressed input")
	flag.IntVar(&opts.Workers, "workers", cfg.Workers, "huffman frequency counting workers (0 = one per CPU)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		usage()
	}
	if err := opts.validate(); err != nil {
		log.Fatal(err)
	}

	input := flag.Arg(0)
	output := flag.Arg(1)
	if output == "" {
		output = outputPath(input, opts)
	}

	if err := run(input, output, opts); err != nil {
		log.Fatal(err)
	}
}

// outputPath derives the destination from the input name: the algorithm's
// extension is appended when compressing and stripped when decompressing.
func outputPath(input string, opts options) string {
	ext := "." + compression.Extension(opts.Algorithm)
	if !opts.decompress {
		return input + ext
	}
	if strings.HasSuffix(input, ext) && len(input) > len(ext) {
		return strings.TrimSuffix(input, ext)
	}
	return input + ".out"
}

func run(input, output string, opts options) (err error) {
	in, err := os.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fileops.CreateExclusive(output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(output)
		}
	}()

	var src io.Reader = in
	if opts.progress {
		info, err := in.Stat()
		if err != nil {
			return err
		}
		bar := pb.New64(info.Size()).Set(pb.Bytes, true).SetWriter(os.Stderr).Start()
		defer bar.Finish()
		src = bar.NewProxyReader(in)
	}

	hash := xxHash32.New(0)
	if opts.verify && !opts.decompress {
		src = io.TeeReader(src, hash)
	}

	bw := bufio.NewWriter(out)
	if opts.decompress {
		err = compression.DecompressStream(src, bw, opts.Options)
	} else {
		err = compression.CompressStream(src, bw, opts.Options)
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", opts.Algorithm, action(opts), err)
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	if opts.verify && !opts.decompress {
		if err := verify(out, hash.Sum32(), opts); err != nil {
			return err
		}
		log.Printf("verified %s (xxh32 %08x)", filepath.Base(output), hash.Sum32())
	}
	return nil
}

func action(opts options) string {
	if opts.decompress {
		return "decompression"
	}
	return "compression"
}

var errChecksumMismatch = errors.New("checksum mismatch after round trip")

// verify decodes the freshly written file and compares its checksum with
// the one taken while reading the input.
func verify(out *os.File, want uint32, opts options) error {
	if _, err := out.Seek(0, io.SeekStart); err != nil {
		return err
	}
	hash := xxHash32.New(0)
	if err := compression.DecompressStream(bufio.NewReader(out), hash, opts.Options); err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if got := hash.Sum32(); got != want {
		return fmt.Errorf("%w: got %08x, want %08x", errChecksumMismatch, got, want)
	}
	return nil
}
