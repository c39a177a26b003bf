package export

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/smallbiznis/billora/internal/clock"
	"github.com/smallbiznis/billora/internal/config"
	"github.com/smallbiznis/billora/internal/invoice/domain"
	"github.com/smallbiznis/billora/internal/observability/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Above this many successes the batch ships as one zip; at or below,
// the UI downloads each file in sequence.
const archiveThreshold = 3

// Moderate compression bounds CPU time on large batches.
const deflateLevel = 6

// RenderFunc produces the artifact for one order. The exporter treats
// each call as independent; a failure marks that order failed and the
// rest of the batch continues.
type RenderFunc func(ctx context.Context, orderName string) (domain.Artifact, error)

// Exporter fans invoice generation out over a bounded worker pool and
// packages the results.
type Exporter struct {
	concurrency int
	clock       clock.Clock
	metrics     *metrics.ExportMetrics
	log         *zap.Logger
}

func New(cfg config.Config, clk clock.Clock, m *metrics.ExportMetrics, log *zap.Logger) *Exporter {
	n := cfg.Export.Concurrency
	if n < 1 {
		n = 1
	}
	return &Exporter{
		concurrency: n,
		clock:       clk,
		metrics:     m,
		log:         log.Named("invoice.export"),
	}
}

// ExportBatch renders every order concurrently, bounded by the
// configured limit, and decides between individual artifacts and a
// single archive. An empty selection is a no-op. The error return is
// reserved for packaging faults; per-order failures land in the
// summary.
func (e *Exporter) ExportBatch(ctx context.Context, orderNames []string, render RenderFunc) (domain.ExportSummary, error) {
	if len(orderNames) == 0 {
		return domain.ExportSummary{}, nil
	}
	e.metrics.ObserveBatch(len(orderNames))

	type outcome struct {
		artifact domain.Artifact
		err      error
	}
	results := make([]outcome, len(orderNames))

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i, name := range orderNames {
		i, name := i, name
		g.Go(func() error {
			artifact, err := render(ctx, name)
			results[i] = outcome{artifact: artifact, err: err}
			return nil
		})
	}
	g.Wait()

	var summary domain.ExportSummary
	artifacts := make([]domain.Artifact, 0, len(orderNames))
	entryNames := make([]string, 0, len(orderNames))
	for i, res := range results {
		if res.err != nil {
			e.log.Warn("order export failed",
				zap.String("order", orderNames[i]),
				zap.Error(res.err))
			summary.Failed++
			summary.FailedOrders = append(summary.FailedOrders, orderNames[i])
			continue
		}
		summary.Succeeded++
		artifacts = append(artifacts, res.artifact)
		entryNames = append(entryNames, entryName(orderNames[i]))
	}
	e.metrics.IncDocuments("success", summary.Succeeded)
	e.metrics.IncDocuments("failure", summary.Failed)

	if summary.Succeeded > archiveThreshold {
		archive, err := e.buildArchive(entryNames, artifacts)
		if err != nil {
			return summary, err
		}
		summary.Archive = &archive
		e.metrics.IncArchives()
		return summary, nil
	}
	summary.Files = artifacts
	return summary, nil
}

func (e *Exporter) buildArchive(names []string, artifacts []domain.Artifact) (domain.Artifact, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, deflateLevel)
	})

	for i, a := range artifacts {
		w, err := zw.Create(names[i])
		if err != nil {
			return domain.Artifact{}, fmt.Errorf("archive entry %s: %w", names[i], err)
		}
		if _, err := w.Write(a.Data); err != nil {
			return domain.Artifact{}, fmt.Errorf("archive entry %s: %w", names[i], err)
		}
	}
	if err := zw.Close(); err != nil {
		return domain.Artifact{}, fmt.Errorf("close archive: %w", err)
	}

	return domain.Artifact{
		Filename: "Invoices-" + e.clock.Now().Format("2006-01-02") + ".zip",
		Data:     buf.Bytes(),
	}, nil
}

func entryName(orderName string) string {
	return "Invoice-" + strings.TrimPrefix(orderName, "#") + ".pdf"
}
