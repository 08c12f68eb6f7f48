package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/qri-io/semequal"
)

func jsoneq(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		cfg.Main.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: jsoneq requires 2 args, got %v", cli.ErrUsage, args)
	}
	if cfg.Diff && cfg.JSON {
		return fmt.Errorf("%w: must specify at most one of -diff -json", cli.ErrUsage)
	}
	if args[0] == "-" && args[1] == "-" {
		return fmt.Errorf("%w: only one document can be read from stdin", cli.ErrUsage)
	}

	log := newLogger(os.Stderr, cfg.Verbose)
	differs, err := compareFiles(cfg, log, cc.In, cc.Out, cfg.colorOut(cc.Out), args[0], args[1])
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// compareFiles compares the documents at paths a (expected) & b (actual),
// writing a report to w when they differ
func compareFiles(cfg *MainConfig, log *slog.Logger, in io.Reader, w io.Writer, colorTTY bool, a, b string) (bool, error) {
	expected, err := readDoc(cfg, in, a)
	if err != nil {
		return false, err
	}
	actual, err := readDoc(cfg, in, b)
	if err != nil {
		return false, err
	}

	exclude := semequal.NewExclusionSet(cfg.Exclude...)
	if err := exclude.Validate(); err != nil {
		return false, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	for _, p := range exclude.Paths() {
		if _, err := semequal.Lookup(expected, p); err != nil {
			log.Warn("exclusion matches nothing in expected", "path", p, "reason", err)
		}
	}

	stats := &semequal.Stats{}
	cmpErr := semequal.Compare(expected, actual, exclude, semequal.OptionSetStats(stats))
	log.Debug("compared", "expected", a, "actual", b, "equal", cmpErr == nil)

	if f, ok := cmpErr.(*semequal.Failure); ok {
		if err := writeFailure(cfg, w, colorTTY, expected, actual, f); err != nil {
			return false, err
		}
	}
	if cfg.Stats {
		if _, err := io.WriteString(w, semequal.FormatPrettyStats(stats)); err != nil {
			return false, err
		}
	}
	return cmpErr != nil, nil
}

func writeFailure(cfg *MainConfig, w io.Writer, colorTTY bool, expected, actual *semequal.Node, f *semequal.Failure) error {
	switch {
	case cfg.JSON:
		return json.NewEncoder(w).Encode(f)
	case cfg.Diff:
		if err := semequal.FormatLineDiff(w, expected, actual, colorTTY); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, f.Error())
		return err
	}
	return semequal.FormatPretty(w, expected, actual, f, colorTTY)
}

func readDoc(cfg *MainConfig, in io.Reader, path string) (*semequal.Node, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = in
	}

	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	n, err := cfg.parse(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return n, nil
}
