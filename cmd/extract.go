/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/humaidq/labscan/db"
	"github.com/humaidq/labscan/pathology"
	"github.com/humaidq/labscan/pdftext"
)

var CmdExtract = newExtractCommand()

func newExtractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Extract pathology reports (PDF or text) into JSON",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "directory for <name>.json exports (default: JSON array on stdout)",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Value:   runtime.NumCPU(),
				Usage:   "documents processed concurrently",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "store every extracted report in the database",
			},
			referenceTableFlag(),
			databaseURLFlag(),
		},
		Action: extract,
	}
}

// document is one input file and the result of processing it.
type document struct {
	path       string
	outputName string
	export     pathology.Export
	err        error
}

// outputNames maps every input to a distinct <base>.json name.
func outputNames(paths []string) []string {
	names := make([]string, len(paths))
	seen := make(map[string]int, len(paths))

	for i, path := range paths {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

		seen[base]++
		if n := seen[base]; n > 1 {
			base += "-" + strconv.Itoa(n)
		}

		names[i] = base + ".json"
	}

	return names
}

func extract(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return errNoInputFiles
	}

	jobs := cmd.Int("jobs")
	if jobs < 1 {
		return errInvalidJobs
	}

	table, err := loadReferenceTable(cmd.String("reference-table"))
	if err != nil {
		return err
	}

	save := cmd.Bool("save")
	if save {
		if err := connectDatabase(ctx, cmd.String("database-url"), table); err != nil {
			return err
		}
		defer db.Close()
	}

	outputDir := cmd.String("output")
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	extractor := pathology.NewExtractor(table)
	names := outputNames(paths)
	docs := make([]document, len(paths))

	var g errgroup.Group
	g.SetLimit(jobs)

	for i, path := range paths {
		docs[i] = document{path: path, outputName: names[i]}

		g.Go(func() error {
			// A cancelled run stops scheduling work; document errors never do.
			if err := ctx.Err(); err != nil {
				return err
			}

			docs[i].export, docs[i].err = processDocument(ctx, extractor, path, save)
			if docs[i].err == nil && outputDir != "" {
				docs[i].err = writeExport(filepath.Join(outputDir, docs[i].outputName), docs[i].export)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	var failures []error

	exports := make([]pathology.Export, 0, len(docs))

	for _, d := range docs {
		if d.err != nil {
			extractLogger.Error("Failed to extract report", "file", d.path, "error", d.err)
			failures = append(failures, fmt.Errorf("%s: %w", d.path, d.err))

			continue
		}

		exports = append(exports, d.export)
	}

	if outputDir == "" {
		enc := json.NewEncoder(cmd.Root().Writer)
		enc.SetIndent("", "  ")

		if err := enc.Encode(exports); err != nil {
			return fmt.Errorf("failed to write exports: %w", err)
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("%w: %d of %d documents: %w", errExtractFailed, len(failures), len(docs), errors.Join(failures...))
	}

	return nil
}

// processDocument reads, extracts and optionally stores a single report.
func processDocument(ctx context.Context, extractor *pathology.Extractor, path string, save bool) (pathology.Export, error) {
	text, err := pdftext.FromFile(path)
	if err != nil {
		return pathology.Export{}, err
	}

	report := extractor.Extract(text)
	if report.IsEmpty() {
		extractLogger.Warn("No report data recognised", "file", path)
	}

	if save {
		id, err := db.SaveReport(ctx, filepath.Base(path), report)
		if err != nil {
			return pathology.Export{}, fmt.Errorf("failed to save report: %w", err)
		}

		extractLogger.Info("Saved report", "file", path, "id", id)
	}

	return extractor.Export(report), nil
}

func writeExport(path string, export pathology.Export) error {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	extractLogger.Info("Wrote export", "file", path)

	return nil
}
