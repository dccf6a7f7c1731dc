package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jcorbin/bf/internal/logio"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		memLimit     int64
		initialSize  int
		negativeTape bool
		timeout      time.Duration
		trace        bool
		dump         bool
	)

	cmd := &cobra.Command{
		Use:           "bf <path>",
		Short:         "an optimizing Brainfuck interpreter",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// the zero-path case overrides cobra's own usage/error
			// handling: print the bare usage line and exit 0.
			if len(args) < 1 {
				fmt.Printf("Usage: %v <.bf filepath>\n", os.Args[0])
				return nil
			}
			return runFile(args[0], memLimit, initialSize, negativeTape, timeout, trace, dump)
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&memLimit, "mem-limit", 0, "hard tape limit in bytes (0 means unbounded)")
	flags.IntVar(&initialSize, "initial-size", 2048, "initial flat-tape allocation in bytes")
	flags.BoolVar(&negativeTape, "negative-tape", false, "use the segmented tape, allowing negative pointers")
	flags.DurationVar(&timeout, "timeout", 0, "abort the run after this long")
	flags.BoolVar(&trace, "trace", false, "log each executed instruction")
	flags.BoolVar(&dump, "dump", false, "print an IR/tape dump after the run")

	return cmd
}

func runFile(path string, memLimit int64, initialSize int, negativeTape bool, timeout time.Duration, trace, dump bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer os.Exit(log.ExitCode())

	ex := New(
		WithLogf(log.Leveledf("TRACE")),
		WithTapeLimit(memLimit),
		WithInitialTapeSize(initialSize),
		WithNegativeTape(negativeTape),
		WithTrace(trace),
		WithInput(os.Stdin),
		WithOutput(os.Stdout),
	)
	defer ex.Close()

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	compileStart := time.Now()
	prog, err := Compile(src)
	compileDur := time.Since(compileStart)
	if err != nil {
		log.ErrorIf(err)
		return nil
	}

	if dump {
		lw := &logio.Writer{Logf: log.Leveledf("DUMP")}
		defer lw.Close()
		defer Dumper{Ex: ex, Out: lw}.Dump(prog)
	}

	execStart := time.Now()
	runErr := runIsolated(ctx, ex, prog)
	execDur := time.Since(execStart)

	if runErr != nil {
		log.ErrorIf(runErr)
		return nil
	}

	fmt.Printf("compile time usage: %.6fs\n", compileDur.Seconds())
	fmt.Printf("execute time usage: %.6fs\n", execDur.Seconds())
	fmt.Printf("bf memory allocated: %d\n", ex.Tape().Allocated())
	fmt.Printf("bf memory used: %d\n", ex.Tape().HighWater())
	return nil
}
