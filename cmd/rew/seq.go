package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/tmc/rew/internal/frame"
	"github.com/tmc/rew/internal/seq"
)

// runSeq implements `rew seq [FROM..[TO]] [STEP]`: an arithmetic
// sequence emitted without reading stdin (spec §6).
func runSeq(args []string) int {
	if len(args) == 0 || len(args) > 2 {
		fmt.Fprintln(os.Stderr, "usage: rew seq [FROM..[TO]] [STEP]")
		return 2
	}
	rangeArg := args[0]
	stepArg := ""
	hasStep := len(args) == 2
	if hasStep {
		stepArg = args[1]
	}

	s, err := seq.ParseCLI(rangeArg, stepArg, hasStep)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rew seq:", err)
		return 2
	}

	w := bufio.NewWriter(os.Stdout)
	term := frame.LF.Value

	var writeErr error
	s.Each(func(v int) bool {
		if _, err := fmt.Fprintf(w, "%d%s", v, term); err != nil {
			writeErr = err
			return false
		}
		return true
	})
	if writeErr == nil {
		writeErr = w.Flush()
	}
	if writeErr != nil {
		if isBrokenPipe(writeErr) || errors.Is(writeErr, os.ErrClosed) {
			return 0
		}
		fmt.Fprintln(os.Stderr, "rew seq:", writeErr)
		return 3
	}
	return 0
}
