package huffman

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const (
	// pageBytesPerWorker sizes each read page as workers*pageBytesPerWorker.
	pageBytesPerWorker = 80_000
	// Pages shorter than this are counted on the calling goroutine.
	parallelThreshold = 320_000
)

// FrequencyTable maps every byte value to its number of occurrences.
type FrequencyTable [256]uint64

// Merge adds other into t element-wise.
func (t *FrequencyTable) Merge(other *FrequencyTable) {
	for i, c := range other {
		t[i] += c
	}
}

func (t *FrequencyTable) Total() uint64 {
	var total uint64
	for _, c := range t {
		total += c
	}
	return total
}

// Distinct reports how many byte values occur at least once.
func (t *FrequencyTable) Distinct() int {
	n := 0
	for _, c := range t {
		if c > 0 {
			n++
		}
	}
	return n
}

func countSerial(t *FrequencyTable, data []byte) {
	for _, b := range data {
		t[b]++
	}
}

// countChunk is the per-worker counting step.
var countChunk = countSerial

// countParallel splits data into contiguous chunks, counts each chunk on its
// own goroutine into a private table and merges the tables once every worker
// has returned. A panicking worker fails the whole count.
func countParallel(data []byte, workers int) (FrequencyTable, error) {
	var result FrequencyTable
	if len(data) == 0 {
		return result, nil
	}
	if workers < 1 {
		workers = 1
	}
	chunkSize := len(data)/workers + 1
	var chunks [][]byte
	for start := 0; start < len(data); start += chunkSize {
		chunks = append(chunks, data[start:min(start+chunkSize, len(data))])
	}

	partials := make([]FrequencyTable, len(chunks))
	var g errgroup.Group
	for i, chunk := range chunks {
		g.Go(func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					err = fmt.Errorf("frequency worker %d: %v", i, p)
				}
			}()
			countChunk(&partials[i], chunk)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return FrequencyTable{}, err
	}
	for i := range partials {
		result.Merge(&partials[i])
	}
	return result, nil
}

// CountFrequencies reads r to the end in pages and counts every byte.
// workers <= 0 selects runtime.NumCPU().
func CountFrequencies(r io.Reader, workers int) (FrequencyTable, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var result FrequencyTable
	page := make([]byte, workers*pageBytesPerWorker)
	for {
		n, err := io.ReadFull(r, page)
		data := page[:n]
		switch {
		case n == 0:
		case n < parallelThreshold:
			countSerial(&result, data)
		default:
			partial, perr := countParallel(data, workers)
			if perr != nil {
				return FrequencyTable{}, perr
			}
			result.Merge(&partial)
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return result, nil
			}
			return FrequencyTable{}, fmt.Errorf("reading input: %w", err)
		}
	}
}
