// Package report は照合結果をHTML・Excel・YAML・端末の表に出力します
package report

import (
	"time"

	"ledgercompare/models"
	"ledgercompare/reconcile"
)

// View はレポート出力に必要な情報一式です
type View struct {
	RunID       string
	GeneratedAt time.Time
	SystemA     string
	SystemB     string
	Buckets     models.Buckets
	Summary     reconcile.Summary
	LedgerA     models.Ledger
	LedgerB     models.Ledger
	Warnings    []reconcile.Warning
}

// NewView は照合結果からViewを組み立てます
func NewView(runID string, at time.Time, a, b models.Ledger, ms reconcile.MatchSet, buckets models.Buckets) View {
	return View{
		RunID:       runID,
		GeneratedAt: at,
		SystemA:     a.Name,
		SystemB:     b.Name,
		Buckets:     buckets,
		Summary:     reconcile.Summarize(buckets),
		LedgerA:     a,
		LedgerB:     b,
		Warnings:    ms.Warnings,
	}
}
