package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dotcommander/codecred/internal/config"
	"github.com/dotcommander/codecred/internal/discovery"
	"github.com/dotcommander/codecred/internal/metrics"
	"github.com/dotcommander/codecred/internal/output"
	"github.com/dotcommander/codecred/internal/textscan"
)

var scoreCmd = &cobra.Command{
	Use:   "score [paths...]",
	Short: "Score source files across the six quality metrics",
	Long: `Score evaluates source files and reports a composite quality score
per file. With explicit paths only those files are scored ("-" reads from
stdin); otherwise the project root is walked for source files.`,
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(rootPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	summary := &output.Summary{
		MinScore:  cfg.MinScore,
		StartTime: time.Now(),
	}

	files, skipped, err := collectFiles(cfg, args)
	if err != nil {
		return err
	}
	for _, s := range skipped {
		summary.Skipped = append(summary.Skipped, output.SkippedFile{File: s.RelPath, Reason: s.Reason})
	}

	summary.Results, err = scoreFiles(cfg, files)
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(cfg.Format, cfg.Quiet, cfg.Verbose, cfg.Output)
	if err != nil {
		return err
	}
	if err := formatter.Format(summary); err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}

	if cfg.MinScore > 0 && summary.FailedFiles() > 0 {
		return fmt.Errorf("%d of %d files scored below %.2f",
			summary.FailedFiles(), summary.TotalFiles(), cfg.MinScore)
	}
	return nil
}

// collectFiles loads explicit paths, or walks the project root when none are
// given.
func collectFiles(cfg *config.Config, args []string) ([]discovery.File, []discovery.Skipped, error) {
	if len(args) == 0 {
		d := discovery.New(cfg.Root, cfg.Extensions, cfg.Exclude, cfg.MaxFileSize)
		return d.Discover()
	}

	var files []discovery.File
	var skipped []discovery.Skipped
	for _, path := range args {
		if path == "-" {
			file, err := readStdin(cfg.MaxFileSize)
			if err != nil {
				return nil, nil, err
			}
			files = append(files, file)
			continue
		}
		file, err := discovery.Load(path, cfg.MaxFileSize)
		if err != nil {
			if errors.Is(err, discovery.ErrInputTooLarge) {
				skipped = append(skipped, discovery.Skipped{RelPath: path, Reason: err.Error()})
				continue
			}
			return nil, nil, err
		}
		file.RelPath = path
		files = append(files, file)
	}
	return files, skipped, nil
}

// readStdin reads code from standard input, subject to the same size cap as
// files on disk.
func readStdin(maxFileSize int64) (discovery.File, error) {
	contents, err := io.ReadAll(io.LimitReader(os.Stdin, maxFileSize+1))
	if err != nil {
		return discovery.File{}, fmt.Errorf("error reading stdin: %w", err)
	}
	if int64(len(contents)) > maxFileSize {
		return discovery.File{}, fmt.Errorf("%w: stdin exceeds %d bytes",
			discovery.ErrInputTooLarge, maxFileSize)
	}
	return discovery.File{
		Path:     "-",
		RelPath:  "<stdin>",
		Contents: string(contents),
		Size:     int64(len(contents)),
	}, nil
}

// scoreFiles runs the engine over each file, bounded by the configured
// concurrency. Results keep the discovery order.
func scoreFiles(cfg *config.Config, files []discovery.File) ([]output.FileReport, error) {
	engine := metrics.NewEngine().WithParallel(cfg.Parallel)
	reports := make([]output.FileReport, len(files))

	var g errgroup.Group
	g.SetLimit(cfg.Concurrency)
	for i, file := range files {
		g.Go(func() error {
			evaluations := engine.EvaluateAll(file.Contents)
			composite := evaluations.Composite()
			reports[i] = output.FileReport{
				File:        file.RelPath,
				Lines:       len(textscan.SplitLines(file.Contents)),
				Evaluations: evaluations,
				Composite:   composite,
				Label:       metrics.LabelFromScore(composite),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
