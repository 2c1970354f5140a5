// Command rew rewrites each value read from stdin through a small
// filter-pipeline pattern language.
//
// Usage:
//
//	rew [global options] PATTERN
//	rew seq [FROM..[TO]] [STEP]
//
// Use "rew -help" for the global option list.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/tmc/rew"
	"github.com/tmc/rew/internal/diag"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("rew: ")
	os.Exit(Main())
}

// Main runs the program body against os.Args/os.Stdin/os.Stdout and returns
// the process exit code, without calling os.Exit itself; used both by main
// and by the scripttest harness, which re-execs the test binary as "rew".
func Main() int {
	return run(os.Args[1:])
}

// run is the full program body, isolated from main so tests can drive it
// without touching process exit codes directly.
func run(args []string) int {
	if len(args) > 0 && args[0] == "seq" {
		return runSeq(args[1:])
	}
	return runPipeline(args)
}

func runPipeline(args []string) int {
	opts, pattern, err := parseGlobalOptions(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	p, err := compilePattern(pattern, opts)
	if err != nil {
		printDiag(err, pattern)
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var exitCode int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})
	g.Go(func() error {
		defer cancel() // unblock the signal-watcher goroutine on normal completion too
		code, err := runPipelineBody(p, opts)
		exitCode = code
		return err
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "rew:", err)
		if exitCode == 0 {
			exitCode = 3
		}
	}
	return exitCode
}

func runPipelineBody(p *rew.Pipeline, cfg runConfig) (int, error) {
	result, err := p.Run(os.Stdin, os.Stdout, cfg.run)
	if err != nil {
		var de *diag.Error
		if errors.As(err, &de) {
			if de.Kind == diag.IoError && isBrokenPipe(err) {
				return 0, nil
			}
			if de.Kind == diag.EvalError {
				printDiag(err, "")
				return 1, nil
			}
			printDiag(err, "")
			return 3, nil
		}
		return 3, err
	}
	if result.SawEvalError {
		return 1, nil
	}
	return 0, nil
}

// isBrokenPipe reports whether err is (or wraps) EPIPE; diag.Error carries
// only the formatted message by the time it reaches here, so this falls
// back to matching the standard Go error text for a broken pipe.
func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || strings.Contains(err.Error(), "broken pipe")
}

func printDiag(err error, source string) {
	var de *diag.Error
	if errors.As(err, &de) {
		opts := diag.OptionsForStderr(os.Stderr.Fd(), 100)
		fmt.Fprint(os.Stderr, diag.Render(source, de, opts))
		return
	}
	fmt.Fprintln(os.Stderr, "rew:", err)
}
