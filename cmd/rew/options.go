package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/tmc/rew"
	"github.com/tmc/rew/internal/diag"
	"github.com/tmc/rew/internal/frame"
)

// runConfig bundles every global flag into the values rew.Compile and
// Pipeline.Run need.
type runConfig struct {
	compile rew.Options
	run     rew.RunOptions
}

func parseGlobalOptions(args []string) (runConfig, string, error) {
	fs := flag.NewFlagSet("rew", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var (
		printStr  string
		printNul  bool
		printRaw  bool
		noEnd     bool
		readStr   string
		readNul   bool
		readRaw   bool
		diffMode  bool
		prettyM   bool
		escape    string
		seed      string
		failFast  bool
	)

	for _, names := range [][2]string{{"T", "print"}} {
		fs.StringVar(&printStr, names[0], "", "output terminator")
		fs.StringVar(&printStr, names[1], "", "output terminator")
	}
	for _, names := range [][2]string{{"Z", "print-nul"}} {
		fs.BoolVar(&printNul, names[0], false, "output terminator is NUL")
		fs.BoolVar(&printNul, names[1], false, "output terminator is NUL")
	}
	for _, names := range [][2]string{{"R", "print-raw"}} {
		fs.BoolVar(&printRaw, names[0], false, "no output terminator")
		fs.BoolVar(&printRaw, names[1], false, "no output terminator")
	}
	for _, names := range [][2]string{{"L", "no-print-end"}} {
		fs.BoolVar(&noEnd, names[0], false, "omit the terminator after the last value")
		fs.BoolVar(&noEnd, names[1], false, "omit the terminator after the last value")
	}
	for _, names := range [][2]string{{"I", "read"}} {
		fs.StringVar(&readStr, names[0], "", "input separator")
		fs.StringVar(&readStr, names[1], "", "input separator")
	}
	for _, names := range [][2]string{{"0", "read-nul"}} {
		fs.BoolVar(&readNul, names[0], false, "input separator is NUL")
		fs.BoolVar(&readNul, names[1], false, "input separator is NUL")
	}
	for _, names := range [][2]string{{"r", "read-raw"}} {
		fs.BoolVar(&readRaw, names[0], false, "input is a single value, unsplit")
		fs.BoolVar(&readRaw, names[1], false, "input is a single value, unsplit")
	}
	for _, names := range [][2]string{{"b", "diff"}} {
		fs.BoolVar(&diffMode, names[0], false, "diff output mode")
		fs.BoolVar(&diffMode, names[1], false, "diff output mode")
	}
	for _, names := range [][2]string{{"p", "pretty"}} {
		fs.BoolVar(&prettyM, names[0], false, "pretty output mode")
		fs.BoolVar(&prettyM, names[1], false, "pretty output mode")
	}
	for _, names := range [][2]string{{"e", "escape"}} {
		fs.StringVar(&escape, names[0], "", "override the '#' escape character")
		fs.StringVar(&escape, names[1], "", "override the '#' escape character")
	}
	fs.StringVar(&seed, "seed", "", "seed the generator PRNG")
	fs.BoolVar(&failFast, "fail-fast", false, "exit immediately on the first runtime error")

	// The flag package only knows whole flag names, so a short string flag
	// with its value attached ("-T:") is rewritten to "-T=:" first.
	args = append([]string(nil), args...)
	for i, a := range args {
		if a == "--" || len(a) < 2 || a[0] != '-' {
			break
		}
		if len(a) > 2 && a[1] != '-' && a[2] != '=' && fs.Lookup(a[1:]) == nil {
			if f := fs.Lookup(a[1:2]); f != nil {
				if _, isBool := f.Value.(interface{ IsBoolFlag() bool }); !isBool {
					args[i] = a[:2] + "=" + a[2:]
				}
			}
		}
	}
	if err := fs.Parse(args); err != nil {
		return runConfig{}, "", err
	}

	rest := fs.Args()
	if len(rest) != 1 {
		return runConfig{}, "", errors.New("usage: rew [global options] PATTERN")
	}
	pattern := rest[0]

	if diffMode && prettyM {
		return runConfig{}, "", errors.New("--diff and --pretty are mutually exclusive")
	}
	if countTrue(printStr != "", printNul, printRaw) > 1 {
		return runConfig{}, "", errors.New("--print, --print-nul, and --print-raw are mutually exclusive")
	}
	if readNul && readStr != "" {
		return runConfig{}, "", errors.New("--read and --read-nul are mutually exclusive")
	}

	var cfg runConfig

	if escape != "" {
		if len(escape) != 1 {
			return runConfig{}, "", fmt.Errorf("--escape must be a single byte, got %q", escape)
		}
		cfg.compile.Escape = escape[0]
	}

	switch {
	case printNul:
		cfg.run.Terminator = frame.NUL
	case printRaw:
		cfg.run.Terminator = frame.Raw
	case printStr != "":
		cfg.run.Terminator = frame.Custom(printStr)
	default:
		cfg.run.Terminator = frame.LF
	}
	cfg.run.NoPrintEnd = noEnd

	switch {
	case diffMode:
		cfg.run.Mode = frame.Diff
	case prettyM:
		cfg.run.Mode = frame.Pretty
	default:
		cfg.run.Mode = frame.Standard
	}

	switch {
	case readRaw:
		cfg.run.Read = rew.ReadRaw
	case readNul:
		cfg.run.Read = rew.ReadLines
		cfg.run.Separator = "\x00"
	case readStr != "":
		cfg.run.Read = rew.ReadLines
		cfg.run.Separator = readStr
	default:
		cfg.run.Read = rew.ReadLines
		cfg.run.Separator = "\n"
	}

	if seed != "" {
		n, err := parseSeed(seed)
		if err != nil {
			return runConfig{}, "", err
		}
		cfg.run.Seed = &n
	}
	cfg.run.FailFast = failFast
	cfg.run.OnEvalError = func(e *diag.Error) {
		opts := diag.OptionsForStderr(os.Stderr.Fd(), 100)
		fmt.Fprint(os.Stderr, diag.Render("", e, opts))
	}

	return cfg, pattern, nil
}

func countTrue(bs ...bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}

func parseSeed(s string) (uint64, error) {
	var n uint64
	_, err := fmt.Sscanf(s, "%d", &n)
	if err != nil {
		return 0, fmt.Errorf("invalid --seed %q: %w", s, err)
	}
	return n, nil
}

func compilePattern(pattern string, cfg runConfig) (*rew.Pipeline, error) {
	return rew.Compile(pattern, cfg.compile)
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, "usage: rew [global options] PATTERN\n       rew seq [FROM..[TO]] [STEP]\n\n")
	fs.PrintDefaults()
}
