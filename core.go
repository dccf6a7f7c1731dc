package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/bf/internal/flushio"
)

// Core holds the pieces of executor state that are about I/O and
// diagnostics rather than Brainfuck semantics: a leveled logging facility,
// the input/output streams, and any resources that need closing when the
// run ends.
type Core struct {
	logging
	in      io.ByteReader
	out     flushio.WriteFlusher
	closers []io.Closer
}

// Close releases any resources registered by input/output options, in
// reverse registration order, returning the first error encountered.
func (core *Core) Close() (err error) {
	for i := len(core.closers) - 1; i >= 0; i-- {
		if cerr := core.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (core *Core) writeByte(b byte) error {
	if core.out == nil {
		return nil
	}
	if _, err := core.out.Write([]byte{b}); err != nil {
		return OutputFailedError{Err: err}
	}
	return nil
}

func (core *Core) readByte() (byte, error) {
	if core.in == nil {
		return 0, InputExhaustedError{}
	}
	b, err := core.in.ReadByte()
	if err != nil {
		if err == io.EOF {
			return 0, InputExhaustedError{}
		}
		return 0, err
	}
	return b, nil
}

// halt flushes any buffered output (swallowing a panic while doing so),
// logs the halting error, and panics with it wrapped so Execute's recover
// can unwrap and return it as a normal error.
func (core *Core) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if core.out != nil {
			if ferr := core.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()

	// ignore any panics while logging
	func() {
		defer func() { recover() }()
		core.logf("#", "halt: %v", err)
	}()

	panic(haltError{err})
}

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
