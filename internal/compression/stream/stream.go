// Package stream turns a whole-input codec function into a connected
// io.WriteCloser/io.ReadCloser pair: input written to the writer is buffered,
// closing the writer runs the codec, and the reader then serves the output.
package stream

import (
	"bytes"
	"errors"
	"io"
	"sync"
)

// Func transforms everything read from r into w.
type Func func(r io.Reader, w io.Writer) error

var (
	ErrNotClosed = errors.New("stream: output requested before input was closed")
	ErrClosed    = errors.New("stream: write after close")
)

type core struct {
	lock                sync.Mutex
	isInputBufferClosed bool
	inputBuffer         bytes.Buffer
	outputBuffer        bytes.Buffer
	run                 Func
}

type Writer struct {
	core *core
}

type Reader struct {
	core *core
}

func NewReaderAndWriter(run Func) (io.ReadCloser, io.WriteCloser) {
	c := &core{run: run}
	return &Reader{core: c}, &Writer{core: c}
}

func (w *Writer) Write(data []byte) (int, error) {
	w.core.lock.Lock()
	defer w.core.lock.Unlock()
	if w.core.isInputBufferClosed {
		return 0, ErrClosed
	}
	return w.core.inputBuffer.Write(data)
}

// Close runs the codec over the buffered input. Closing twice is a no-op.
func (w *Writer) Close() error {
	w.core.lock.Lock()
	defer w.core.lock.Unlock()
	if w.core.isInputBufferClosed {
		return nil
	}
	w.core.isInputBufferClosed = true
	input := bytes.NewReader(w.core.inputBuffer.Bytes())
	err := w.core.run(input, &w.core.outputBuffer)
	w.core.inputBuffer.Reset()
	return err
}

func (r *Reader) Read(data []byte) (int, error) {
	r.core.lock.Lock()
	defer r.core.lock.Unlock()
	if !r.core.isInputBufferClosed {
		return 0, ErrNotClosed
	}
	return r.core.outputBuffer.Read(data)
}

// Close releases the buffered output.
func (r *Reader) Close() error {
	r.core.lock.Lock()
	defer r.core.lock.Unlock()
	r.core.outputBuffer.Reset()
	return nil
}
