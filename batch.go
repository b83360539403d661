package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInputTooLarge = errors.New("input too large")
	ErrStdinReused   = errors.New("stdin can only be read once")
)

// Result 是一个输入的处理结果
type Result struct {
	Stats
	Name    string        `json:"input"`
	Elapsed time.Duration `json:"-"`

	//调试输出（--show/--trace），按输入顺序写出
	detail []byte
}

// Runner 批量处理多个输入，每个输入单独运行一次清理。
type Runner struct {
	Marker        byte
	Parallel      int
	MaxInputBytes int64
	Show          bool
	Trace         bool

	Logger *zap.Logger

	//打开输入，默认读文件，"-" 读 Stdin
	Open func(name string) (io.ReadCloser, error)
}

func (r *Runner) open(name string) (io.ReadCloser, error) {
	if r.Open != nil {
		return r.Open(name)
	}
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}

// Run 并行处理 names，返回的结果与 names 顺序一致。任何一个输入出错都会取消剩余的输入。
func (r *Runner) Run(ctx context.Context, names []string) ([]Result, error) {
	parallel := r.Parallel
	if parallel < 1 {
		parallel = 1
	}
	stdin := 0
	for _, name := range names {
		if name == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return nil, fmt.Errorf("%w: \"-\" given %d times", ErrStdinReused, stdin)
	}
	results := make([]Result, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, name := range names {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.runOne(name)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) runOne(name string) (Result, error) {
	raw, err := r.load(name)
	if err != nil {
		return Result{}, err
	}

	logger := r.logger().With(zap.String("input", name))
	startTime := time.Now()

	g := ParseGrid(raw, r.Marker)
	logger.Debug("grid parsed",
		zap.Int("width", g.Width()-2),
		zap.Int("height", g.Height()-2),
		zap.Int("occupied", g.Count()))

	var detail bytes.Buffer
	if r.Show {
		if err := g.Render(&detail, fmt.Sprintf("%s start", name)); err != nil {
			return Result{}, err
		}
	}

	ctx := NewClearance(g)
	if r.Trace {
		ctx.Observer = func(c Cell, phase Phase) {
			fmt.Fprintf(&detail, "%s remove %v\n", phase, c)
		}
	}
	stats := ctx.Run()
	elapsed := time.Since(startTime)

	if r.Show {
		if err := g.Render(&detail, fmt.Sprintf("%s cleared", name)); err != nil {
			return Result{}, err
		}
	}

	logger.Debug("clearance finished",
		zap.Int("tests", ctx.Tests),
		zap.Int("rounds", ctx.Rounds),
		zap.Uint64("hash", g.Hash()))
	logger.Info("solved",
		zap.Int("accessible", stats.Accessible),
		zap.Int("total_removable", stats.TotalRemovable),
		zap.Duration("elapsed", elapsed))

	return Result{
		Name:    name,
		Stats:   stats,
		Elapsed: elapsed,
		detail:  detail.Bytes(),
	}, nil
}

func (r *Runner) load(name string) (string, error) {
	f, err := r.open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	limit := r.MaxInputBytes
	if limit <= 0 {
		limit = defaultMaxInputBytes
	}
	raw, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return "", err
	}
	if int64(len(raw)) > limit {
		return "", fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, limit)
	}
	return string(raw), nil
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// WriteResults 按顺序输出结果
func WriteResults(w io.Writer, results []Result) error {
	for _, res := range results {
		if len(res.detail) > 0 {
			if _, err := w.Write(res.detail); err != nil {
				return err
			}
		}
		if len(results) > 1 {
			if _, err := fmt.Fprintf(w, "%s:\n", res.Name); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "  Accessible: %d\n  Total removable: %d\n",
			res.Accessible, res.TotalRemovable); err != nil {
			return err
		}
	}
	return nil
}

// WriteResultsJSON 每个结果输出一行 JSON
func WriteResultsJSON(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	for _, res := range results {
		if err := enc.Encode(res); err != nil {
			return err
		}
	}
	return nil
}
