package main

import (
	"bufio"
	"bytes"
	"io"

	"github.com/jcorbin/bf/internal/flushio"
)

// Option configures an Executor at construction time.
type Option interface{ apply(ex *Executor) }

var defaultOptions = Options(
	withInput(bytes.NewReader(nil)),
	withOutput(io.Discard),
	initialSizeOption(2048),
)

// Options flattens any number of Option values into one.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(*Executor) {}

type options []Option

func (opts options) apply(ex *Executor) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(ex)
		}
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(ex *Executor) { ex.logfn = logfn }

// WithLogf routes trace/diagnostic logging through the given printf-shaped
// function.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }

func withInput(r io.Reader) inputOption   { return inputOption{r} }
func withOutput(w io.Writer) outputOption { return outputOption{w} }

// WithInput sets the ',' input stream. If r is also an io.Closer, it is
// closed when the Executor's Close is called.
func WithInput(r io.Reader) Option { return withInput(r) }

// WithOutput sets the '.' output stream. If w is also an io.Closer, it is
// closed when the Executor's Close is called.
func WithOutput(w io.Writer) Option { return withOutput(w) }

func (i inputOption) apply(ex *Executor) {
	if br, ok := i.Reader.(io.ByteReader); ok {
		ex.in = br
	} else {
		ex.in = bufio.NewReader(i.Reader)
	}
	if cl, ok := i.Reader.(io.Closer); ok {
		ex.closers = append(ex.closers, cl)
	}
}

func (o outputOption) apply(ex *Executor) {
	if ex.out != nil {
		ex.out.Flush()
	}
	ex.out = flushio.NewWriteFlusher(o.Writer)
	if cl, ok := o.Writer.(io.Closer); ok {
		ex.closers = append(ex.closers, cl)
	}
}

type tapeLimitOption int64

// WithTapeLimit sets a hard limit on pointer magnitude; 0 means unbounded.
func WithTapeLimit(limit int64) Option { return tapeLimitOption(limit) }

func (lim tapeLimitOption) apply(ex *Executor) { ex.tapeLimit = int64(lim) }

type initialSizeOption int

// WithInitialTapeSize sets the flat tape's starting allocation (ignored by
// a negative-tape executor, which allocates in fixed-size pages instead).
func WithInitialTapeSize(n int) Option { return initialSizeOption(n) }

func (n initialSizeOption) apply(ex *Executor) { ex.initialSize = int(n) }

type negativeTapeOption bool

// WithNegativeTape selects the segmented, negative-index-capable tape
// model instead of the default flat, zero-floored one.
func WithNegativeTape(enabled bool) Option { return negativeTapeOption(enabled) }

func (b negativeTapeOption) apply(ex *Executor) { ex.negativeTape = bool(b) }

type traceOption bool

// WithTrace enables per-instruction trace logging via the configured Logf.
func WithTrace(enabled bool) Option { return traceOption(enabled) }

func (b traceOption) apply(ex *Executor) { ex.trace = bool(b) }
