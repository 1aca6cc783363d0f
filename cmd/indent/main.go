package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/midbel/indent"
	"github.com/midbel/indent/internal/logging"
	"github.com/midbel/indent/internal/stdio"
	"golang.org/x/sync/errgroup"
)

var CmdVersion = "0.1.0"

var (
	errUsage  = errors.New("usage")
	errFailed = errors.New("failed")
)

type cli struct {
	Write    bool
	Output   string
	Parallel int
	Verbose  bool
	Version  bool
	Help     bool

	Switches []string
	Files    []string
}

func main() {
	c, err := parseArgs(os.Args[1:])
	if err != nil {
		report(err)
		indent.Usage(stdio.Stderr)
		os.Exit(2)
	}
	if c.Help {
		indent.Usage(stdio.Stdout)
		return
	}
	if c.Version {
		fmt.Printf("indent %s", CmdVersion)
		fmt.Println()
		return
	}
	logger := logging.Setup(stdio.Stderr, c.Verbose)

	cfg, err := indent.Setup(c.Switches)
	if err != nil {
		report(err)
		os.Exit(2)
	}
	if err := c.Run(cfg, logger); err != nil {
		if !errors.Is(err, errFailed) {
			report(err)
		}
		os.Exit(1)
	}
}

func parseArgs(args []string) (cli, error) {
	c := cli{
		Parallel: runtime.NumCPU(),
	}
	for i := 0; i < len(args); i++ {
		switch a := args[i]; a {
		case "-w":
			c.Write = true
		case "-o", "-j":
			if i+1 >= len(args) {
				return c, fmt.Errorf("%s: missing value", a)
			}
			i++
			if a == "-o" {
				c.Output = args[i]
				break
			}
			n, err := strconv.Atoi(args[i])
			if err != nil || n <= 0 {
				return c, fmt.Errorf("%s: %w", a, indent.ErrInvalidValue)
			}
			c.Parallel = n
		case "-verbose":
			c.Verbose = true
		case "-version":
			c.Version = true
		case "-h", "-help", "--help":
			c.Help = true
		case "-":
			c.Files = append(c.Files, a)
		default:
			if strings.HasPrefix(a, "-") {
				c.Switches = append(c.Switches, a)
			} else {
				c.Files = append(c.Files, a)
			}
		}
	}
	if c.Write && c.Output != "" {
		return c, fmt.Errorf("-w and -o can not be used together: %w", errUsage)
	}
	if c.Output != "" && len(c.Files) > 1 {
		return c, fmt.Errorf("-o needs at most one input file: %w", errUsage)
	}
	if c.Write && len(c.Files) == 0 {
		return c, fmt.Errorf("-w needs at least one input file: %w", errUsage)
	}
	return c, nil
}

func (c cli) Run(cfg indent.Config, logger *slog.Logger) error {
	switch {
	case c.Write:
		return c.each(func(file string) error {
			return rewriteFile(cfg, logger, file)
		})
	case len(c.Files) <= 1:
		var file string
		if len(c.Files) == 1 {
			file = c.Files[0]
		}
		w, err := stdio.Create(c.Output)
		if err != nil {
			return err
		}
		err = formatFile(cfg, logger, file, w)
		return hasError(err, w.Close())
	default:
		return c.formatAll(cfg, logger)
	}
}

// formatAll formats the files concurrently and prints their results in the
// order they were given.
func (c cli) formatAll(cfg indent.Config, logger *slog.Logger) error {
	var (
		results = make([]bytes.Buffer, len(c.Files))
		errs    = make([]error, len(c.Files))
		group   errgroup.Group
		sema    = make(chan struct{}, c.Parallel)
	)
	for i, file := range c.Files {
		sema <- struct{}{}
		i, file := i, file
		group.Go(func() error {
			defer func() { <-sema }()
			errs[i] = formatFile(cfg, logger, file, &results[i])
			return errs[i]
		})
	}
	err := group.Wait()
	if err != nil {
		err = errFailed
	}
	for i := range results {
		if errs[i] != nil && !isDiagnostic(errs[i]) {
			continue
		}
		if _, err := io.Copy(stdio.Stdout, &results[i]); err != nil {
			return err
		}
	}
	for i := range errs {
		if errs[i] != nil {
			report(fmt.Errorf("%s: %w", c.Files[i], errs[i]))
		}
	}
	return err
}

func (c cli) each(fn func(string) error) error {
	var (
		group errgroup.Group
		sema  = make(chan struct{}, c.Parallel)
	)
	for _, file := range c.Files {
		sema <- struct{}{}
		file := file
		group.Go(func() error {
			defer func() { <-sema }()
			err := fn(file)
			if err != nil {
				report(fmt.Errorf("%s: %w", file, err))
			}
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return errFailed
	}
	return nil
}

func formatFile(cfg indent.Config, logger *slog.Logger, file string, w io.Writer) error {
	var r io.Reader = os.Stdin
	if file != "" && file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
		logger = logger.With("file", file)
	}
	f, err := indent.New(w, indent.WithConfig(cfg), indent.WithLogger(logger))
	if err != nil {
		return err
	}
	return f.Format(r)
}

// rewriteFile replaces file with its formatted version. The file is left
// untouched when formatting is aborted.
func rewriteFile(cfg indent.Config, logger *slog.Logger, file string) error {
	info, err := os.Stat(file)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(file), "."+filepath.Base(file)+".*")
	if err != nil {
		return err
	}
	err = formatFile(cfg, logger, file, tmp)
	if err != nil && !isDiagnostic(err) {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if e := hasError(tmp.Chmod(info.Mode()), tmp.Close()); e != nil {
		os.Remove(tmp.Name())
		return e
	}
	if e := os.Rename(tmp.Name(), file); e != nil {
		os.Remove(tmp.Name())
		return e
	}
	return err
}

func isDiagnostic(err error) bool {
	var diag indent.DiagnosticError
	return errors.As(err, &diag)
}

func hasError(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

func report(err error) {
	fmt.Fprintf(stdio.Stderr, "%s %s\n", color.RedString("indent:"), err)
}
