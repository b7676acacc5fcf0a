// Command frameagg loads a Parquet file and prints row-scanning reductions
// over it.
//
//	frameagg [-config frameagg.yaml] [-op count|max|max_horizontal|mean|mean_horizontal|all] [-columns a,b] file.parquet
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	frame "github.com/mweidwork/training-frames"
	"github.com/mweidwork/training-frames/agg"
	"github.com/mweidwork/training-frames/internal/config"
	"github.com/mweidwork/training-frames/internal/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "frameagg: %v\n", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("usage: frameagg [flags] file.parquet")

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("frameagg", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file")
	op := fs.String("op", "", "reduction to run, or \"all\" (default: aggregate.ops from config)")
	columns := fs.String("columns", "", "comma-separated columns to load (default: input.columns from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}
	path := fs.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *columns != "" {
		cfg.Input.Columns = splitList(*columns)
	}
	ops := cfg.Aggregate.Ops
	switch *op {
	case "":
	case "all":
		ops = agg.Ops
	default:
		if !agg.ValidOp(*op) {
			return &agg.UnknownOpError{Op: *op}
		}
		ops = []string{*op}
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer log.Sync()

	frame.SetParallelConfig(cfg.FrameParallel())
	display := cfg.FrameDisplay()

	start := time.Now()
	df, err := frame.ReadParquet(path, cfg.ParquetOptions())
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	log.Info("loaded table", "path", path, "rows", df.Height(), "columns", df.Width(), "elapsed", time.Since(start))

	a := agg.New(agg.WithLogger(log.Desugar()))
	for _, name := range ops {
		out, err := a.Run(name, df)
		if err != nil {
			log.Error("aggregation failed", "op", name, "error", err)
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Fprintf(stdout, "%s\n%s\n\n", name, out.StringWithConfig(display))
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
