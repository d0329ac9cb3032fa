// Command calcserver runs a serial task runner with one concurrent submitter per
// configured operation. Each submitter writes its results to <out_dir>/Task<N>.txt,
// which are verified after the runner stopped.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	perrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/huangjunwen/taskserver/calc"
	"github.com/huangjunwen/taskserver/logr"
	"github.com/huangjunwen/taskserver/logr/zerologr"
	"github.com/huangjunwen/taskserver/taskrunner/serialrunner"
)

func main() {
	configFile := pflag.StringP("config", "c", os.Getenv("CALCSERVER_CONFIG"), "config file (yaml, json or toml)")
	pflag.Parse()

	cfg, err := LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %+v\n", err)
		os.Exit(2)
	}

	zl := newZerolog(cfg.LogLevel)
	logger := zerologr.New(zl)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	files, err := run(ctx, cfg, logger)
	if err != nil {
		logger.Error(err, "calcserver failed")
		os.Exit(1)
	}

	ok := true
	for _, file := range files {
		if !verifyFile(file, logger) {
			ok = false
		}
	}
	if !ok {
		os.Exit(1)
	}
}

func newZerolog(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

// run starts a runner, submits concurrently from one go routine per op and
// returns the result log files.
func run(ctx context.Context, cfg *Config, logger logr.Logger) ([]string, error) {
	r, err := serialrunner.New[float64](
		serialrunner.Logger(logger),
		serialrunner.Name("calcserver"),
	)
	if err != nil {
		return nil, err
	}
	if err := r.Start(); err != nil {
		return nil, err
	}
	defer r.Stop()

	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return nil, perrors.Wrap(err, "create out dir")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	files := make([]string, 0, len(cfg.Ops))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range cfg.Ops {
		op, err := calc.ParseOp(name)
		if err != nil {
			return nil, err
		}

		file := filepath.Join(cfg.OutDir, fmt.Sprintf("Task%d.txt", i+1))
		files = append(files, file)

		s := &calc.Submitter{
			Runner: r,
			Op:     op,
			Count:  cfg.Count,
			Rand:   rand.New(rand.NewSource(seed + int64(i))),
		}
		g.Go(func() error {
			f, err := os.Create(file)
			if err != nil {
				return perrors.Wrap(err, "create result log")
			}
			defer f.Close()

			s.Out = f
			start := time.Now()
			if err := s.Run(ctx); err != nil {
				return err
			}
			logger.Info("submitter done", "op", string(s.Op), "count", s.Count, "file", file, "elapsed", time.Since(start).String())
			return f.Close()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := r.Stats()
	logger.Info("all submitters done", "completed", stats.Completed, "failed", stats.Failed)
	return files, nil
}

// verifyFile reports mismatches of one result log.
func verifyFile(file string, logger logr.Logger) bool {
	f, err := os.Open(file)
	if err != nil {
		logger.Error(err, "open result log failed", "file", file)
		return false
	}
	defer f.Close()

	report, err := calc.Verify(f)
	if err != nil {
		logger.Error(err, "verify failed", "file", file)
		return false
	}
	for _, m := range report.Mismatches {
		logger.Error(m.Err, "mismatch", "file", file, "line", m.Line, "text", m.Text)
	}
	logger.Info("verified", "file", file, "total", report.Total, "passed", report.Passed())
	return report.OK()
}
