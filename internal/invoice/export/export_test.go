package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smallbiznis/billora/internal/clock"
	"github.com/smallbiznis/billora/internal/config"
	"github.com/smallbiznis/billora/internal/invoice/domain"
	"github.com/smallbiznis/billora/internal/observability/metrics"
	"go.uber.org/zap"
)

func newExporter(concurrency int) *Exporter {
	cfg := config.Config{}
	cfg.Export.Concurrency = concurrency
	m := metrics.NewExportMetrics(prometheus.NewRegistry(), metrics.Config{ServiceName: "test"})
	return New(cfg, clock.NewManual(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)), m, zap.NewNop())
}

func okRender(ctx context.Context, name string) (domain.Artifact, error) {
	return domain.Artifact{Filename: "Invoice-" + name + ".pdf", Data: []byte("%PDF " + name)}, nil
}

func TestExportBatchEmptySelection(t *testing.T) {
	summary, err := newExporter(4).ExportBatch(context.Background(), nil, okRender)
	if err != nil {
		t.Fatalf("empty selection: %v", err)
	}
	if summary.Succeeded != 0 || summary.Failed != 0 || summary.Archive != nil || len(summary.Files) != 0 {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
}

func TestExportBatchThreeYieldsIndividualFiles(t *testing.T) {
	names := []string{"#1001", "#1002", "#1003"}
	summary, err := newExporter(4).ExportBatch(context.Background(), names, okRender)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if summary.Archive != nil {
		t.Fatalf("three successes must not be archived")
	}
	if len(summary.Files) != 3 || summary.Succeeded != 3 {
		t.Fatalf("summary = %+v", summary)
	}
	for i, name := range names {
		if !bytes.Contains(summary.Files[i].Data, []byte(name)) {
			t.Errorf("file %d out of submission order", i)
		}
	}
}

func TestExportBatchFourYieldsArchive(t *testing.T) {
	names := []string{"#1001", "#1002", "#1003", "#1004"}
	summary, err := newExporter(4).ExportBatch(context.Background(), names, okRender)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if summary.Archive == nil {
		t.Fatalf("four successes must produce an archive")
	}
	if len(summary.Files) != 0 {
		t.Fatalf("archived batch must not also list files")
	}
	if summary.Archive.Filename != "Invoices-2024-03-10.zip" {
		t.Errorf("archive name = %q", summary.Archive.Filename)
	}

	zr, err := zip.NewReader(bytes.NewReader(summary.Archive.Data), int64(len(summary.Archive.Data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 4 {
		t.Fatalf("archive has %d entries, want 4", len(zr.File))
	}
	want := map[string]bool{
		"Invoice-1001.pdf": true, "Invoice-1002.pdf": true,
		"Invoice-1003.pdf": true, "Invoice-1004.pdf": true,
	}
	for _, f := range zr.File {
		if !want[f.Name] {
			t.Errorf("unexpected entry %q", f.Name)
		}
	}
}

func TestExportBatchPartialFailure(t *testing.T) {
	names := []string{"#1001", "#1002", "#1003", "#1004", "#1005"}
	render := func(ctx context.Context, name string) (domain.Artifact, error) {
		if name == "#1003" {
			return domain.Artifact{}, errors.New("order_not_found")
		}
		return okRender(ctx, name)
	}

	summary, err := newExporter(2).ExportBatch(context.Background(), names, render)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if summary.Succeeded != 4 || summary.Failed != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(summary.FailedOrders) != 1 || summary.FailedOrders[0] != "#1003" {
		t.Fatalf("failed orders = %v", summary.FailedOrders)
	}
	if summary.Archive == nil {
		t.Fatalf("four successes must still be archived")
	}
	zr, err := zip.NewReader(bytes.NewReader(summary.Archive.Data), int64(len(summary.Archive.Data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 4 {
		t.Fatalf("archive has %d entries, want 4", len(zr.File))
	}
}

func TestExportBatchBoundedConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	render := func(ctx context.Context, name string) (domain.Artifact, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return okRender(ctx, name)
	}

	names := make([]string, 12)
	for i := range names {
		names[i] = "#1"
	}
	if _, err := newExporter(2).ExportBatch(context.Background(), names, render); err != nil {
		t.Fatalf("export: %v", err)
	}
	if p := peak.Load(); p > 2 {
		t.Fatalf("observed %d concurrent renders, limit is 2", p)
	}
}
