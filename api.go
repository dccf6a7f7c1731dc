package main

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/bf/internal/panicerr"
)

// New builds an Executor from the given options, applying defaultOptions
// first so every Executor has a discard output and a 2048-byte initial tape
// even when the caller supplies nothing.
func New(opts ...Option) *Executor {
	var ex Executor
	defaultOptions.apply(&ex)
	Options(opts...).apply(&ex)
	return &ex
}

// Compile runs the lex/parse/analyze pipeline over source, producing
// executable IR or a parse error (an UnmatchedLeftBracketError or
// UnmatchedRightBracketError).
func Compile(src []byte) (*IRRoot, error) {
	toks := Lex(src)
	root, err := Parse(toks)
	if err != nil {
		return nil, err
	}
	return Analyze(root), nil
}

// Run compiles and executes source against ex, isolating both phases in a
// recoverable goroutine (so a runtime panic or stray runtime.Goexit comes
// back as a plain error rather than taking down the process) and racing
// execution against ctx's deadline, if any.
//
// Run does not close ex; callers that opened resources via
// WithInput/WithOutput should defer ex.Close().
func Run(ctx context.Context, ex *Executor, src []byte) error {
	var prog *IRRoot
	err := panicerr.Recover("compile", func() error {
		var cerr error
		prog, cerr = Compile(src)
		return cerr
	})
	if err != nil {
		return err
	}
	return runIsolated(ctx, ex, prog)
}

// runIsolated races an isolated Execute call against ctx. Execute itself
// also polls ctx.Err() between loop iterations, so a timeout typically
// stops the interpreter promptly rather than merely winning the race.
func runIsolated(ctx context.Context, ex *Executor, prog *IRRoot) error {
	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		return panicerr.Recover("execute", func() error {
			return ex.Execute(gctx, prog)
		})
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			return gctx.Err()
		case <-done:
			return nil
		}
	})

	return g.Wait()
}
