// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/sumprep"
	"github.com/poiesic/sumprep/core"
	"github.com/poiesic/sumprep/dataset"
	"github.com/poiesic/sumprep/ingestion"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "sumprep",
		Usage: "Prepare sentence/summary-membership pairs for extractive summarization",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Prepare document groups from a JSON Lines file and store the pairs",
				Action: ingestCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "src",
						Aliases:  []string{"s"},
						Usage:    "JSON Lines file of document groups (- for stdin)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent preparation workers (0 for NumCPU/2)",
					},
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Number of document groups per worker task",
						Value: ingestion.DefaultChunkSize,
					},
					&cli.StringFlag{
						Name:  "split",
						Usage: "Token split mode for the fragment filter (space, whitespace)",
						Value: core.SplitSpace.String(),
					},
					&cli.BoolFlag{
						Name:  "keep-fragments",
						Usage: "Keep single-token fragments instead of dropping them",
					},
				},
			},
			{
				Name:   "export",
				Usage:  "Export stored pairs as CSV or JSON Lines",
				Action: exportCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "Output file (- for stdout)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format (csv, jsonl)",
						Value: string(dataset.FormatCSV),
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of pairs to fetch in each batch",
						Value: dataset.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N pairs",
						Value: 1000,
					},
					&cli.BoolFlag{
						Name:  "resume",
						Usage: "Continue after the last exported pair, appending to the output file",
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Print pair counts by summary membership",
				Action: statsCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
		},
	}
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	splitMode, err := core.ParseSplitMode(c.String("split"))
	if err != nil {
		return err
	}
	if c.Int("chunk-size") <= 0 {
		return fmt.Errorf("chunk-size must be greater than 0")
	}

	src, closeSrc, err := openInput(c.String("src"))
	if err != nil {
		return err
	}
	defer closeSrc()

	groups, err := dataset.ReadGroups(src)
	if err != nil {
		return fmt.Errorf("failed to read document groups: %w", err)
	}

	db, err := sumprep.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	opts := []ingestion.Option{
		ingestion.WithChunkSize(c.Int("chunk-size")),
		ingestion.WithSplitMode(splitMode),
		ingestion.WithKeepFragments(c.Bool("keep-fragments")),
	}
	if c.Int("pool-size") > 0 {
		opts = append(opts, ingestion.WithPoolSize(c.Int("pool-size")))
	}

	pipeline, err := db.NewIngestionPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	result, err := pipeline.Ingest(ctx, groups)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Ingested %d groups: %d pairs, %d stored, %d fragments dropped\n",
		result.Groups, result.Pairs, result.Stored, result.Fragments)
	return nil
}

func exportCommand(c *cli.Context) error {
	ctx := context.Background()

	format, err := dataset.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}
	config := &dataset.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		Resume:         c.Bool("resume"),
	}
	if err := config.Validate(); err != nil {
		return err
	}

	out, hasData, closeOut, err := openOutput(c.String("out"), c.App.Writer, config.Resume)
	if err != nil {
		return err
	}
	defer closeOut()

	db, err := sumprep.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// Appended output already carries its header
	exporter, err := db.NewExporter(out, format, config, c.App.ErrWriter, dataset.WithHeader(!hasData))
	if err != nil {
		return fmt.Errorf("failed to create exporter: %w", err)
	}

	if _, err := exporter.Run(ctx); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	db, err := sumprep.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	stats, err := db.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("failed to collect stats: %w", err)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Pairs:      %d\n", stats.Pairs)
	fmt.Fprintf(w, "Documents:  %d\n", stats.Documents)
	fmt.Fprintf(w, "Summary:    %d\n", stats.ByMembership[core.MembershipYes])
	fmt.Fprintf(w, "Other:      %d\n", stats.ByMembership[core.MembershipNo])
	fmt.Fprintf(w, "Unlabeled:  %d\n", stats.ByMembership[core.MembershipUnlabeled])
	return nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open source: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// openOutput opens the export destination. With appendTo set, an existing
// file is extended instead of truncated, and hasData reports whether it
// already held output.
func openOutput(path string, stdout io.Writer, appendTo bool) (w io.Writer, hasData bool, closeFn func(), err error) {
	if path == "-" {
		return stdout, false, func() {}, nil
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if appendTo {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, false, nil, fmt.Errorf("failed to create output: %w", err)
	}

	if appendTo {
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, false, nil, fmt.Errorf("failed to inspect output: %w", err)
		}
		hasData = info.Size() > 0
	}

	return f, hasData, func() {
		if err := f.Close(); err != nil {
			slog.Error("error closing output", "path", path, "err", err)
		}
	}, nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
