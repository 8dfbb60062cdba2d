package renderer

import (
	"fmt"
	"io"
	"sync"
	"unicode/utf8"
)

const (
	// defaultLineCapacity fits a framed 80 column line of 4-byte glyphs
	defaultLineCapacity = 4 * 82

	// Buffers larger than this are dropped instead of pooled to prevent
	// memory bloat from occasional very wide renders
	maxRetainLineBuffer = 16 * 1024
)

// outputPool manages output state objects to reduce allocations.
// Animation loops render the same bitmap size many times per second, so
// the line buffer is reused across render calls.
var outputPool = sync.Pool{
	New: func() interface{} {
		return &output{
			buf: make([]byte, 0, defaultLineCapacity),
		}
	},
}

// output batches one line of characters and hands it to the sink in a
// single Write. The first failure is kept and every later call is a no-op,
// so nothing is written after a failed write.
type output struct {
	w       io.Writer
	buf     []byte
	written int
	lines   int
	err     error
}

// acquireOutput gets an output from the pool bound to w.
func acquireOutput(w io.Writer) *output {
	o := outputPool.Get().(*output)
	o.w = w
	o.buf = o.buf[:0]
	o.written = 0
	o.lines = 0
	o.err = nil
	return o
}

// releaseOutput returns an output to the pool.
func releaseOutput(o *output) {
	if o == nil {
		return
	}
	o.w = nil
	if cap(o.buf) > maxRetainLineBuffer {
		o.buf = make([]byte, 0, defaultLineCapacity)
	}
	outputPool.Put(o)
}

func (o *output) writeRune(r rune) {
	if o.err != nil {
		return
	}
	o.buf = utf8.AppendRune(o.buf, r)
}

func (o *output) writeString(s string) {
	if o.err != nil {
		return
	}
	o.buf = append(o.buf, s...)
}

// repeat appends count copies of r.
func (o *output) repeat(r rune, count int) {
	for i := 0; i < count; i++ {
		o.writeRune(r)
	}
}

// endLine terminates the current line and sends it to the sink.
func (o *output) endLine() error {
	if o.err != nil {
		return o.err
	}
	o.buf = append(o.buf, '\n')
	o.lines++
	return o.flush()
}

// flush sends any batched characters to the sink.
func (o *output) flush() error {
	if o.err != nil || len(o.buf) == 0 {
		return o.err
	}
	n, err := o.w.Write(o.buf)
	o.written += n
	if err == nil && n < len(o.buf) {
		err = io.ErrShortWrite
	}
	o.buf = o.buf[:0]
	if err != nil {
		o.err = fmt.Errorf("%w: %w", ErrSinkWrite, err)
	}
	return o.err
}

// flushSink flushes the sink itself when it supports it.
func (o *output) flushSink() (bool, error) {
	if o.err != nil {
		return false, o.err
	}
	f, ok := o.w.(Flusher)
	if !ok {
		return false, nil
	}
	if err := f.Flush(); err != nil {
		o.err = fmt.Errorf("%w: flush: %w", ErrSinkWrite, err)
		return false, o.err
	}
	return true, nil
}
