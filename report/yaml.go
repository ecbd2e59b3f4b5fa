package report

import (
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"ledgercompare/apperrors"
	"ledgercompare/models"
	"ledgercompare/reconcile"
)

// SummaryDocument はYAMLで出力する照合結果です
type SummaryDocument struct {
	RunID       string            `yaml:"run_id"`
	GeneratedAt time.Time         `yaml:"generated_at"`
	SystemA     string            `yaml:"system_a"`
	SystemB     string            `yaml:"system_b"`
	Summary     reconcile.Summary `yaml:"summary"`
	Warnings    []summaryWarning  `yaml:"warnings,omitempty"`
	Records     summaryRecords    `yaml:"records"`
}

type summaryWarning struct {
	Kind   string `yaml:"kind"`
	System string `yaml:"system"`
	Key    string `yaml:"key"`
	Rows   []int  `yaml:"rows,flow"`
	Kept   int    `yaml:"kept"`
}

type summaryRecords struct {
	Match       []models.PairedRecord `yaml:"match"`
	CrossSprint []models.PairedRecord `yaml:"cross_sprint"`
	AOnly       []models.SoloRecord   `yaml:"a_only"`
	BOnly       []models.SoloRecord   `yaml:"b_only"`
}

// NewSummaryDocument はViewからYAML出力用の構造体を作成します
func NewSummaryDocument(v View) SummaryDocument {
	doc := SummaryDocument{
		RunID:       v.RunID,
		GeneratedAt: v.GeneratedAt,
		SystemA:     v.SystemA,
		SystemB:     v.SystemB,
		Summary:     v.Summary,
		Records: summaryRecords{
			Match:       v.Buckets.Match,
			CrossSprint: v.Buckets.CrossSprint,
			AOnly:       v.Buckets.AOnly,
			BOnly:       v.Buckets.BOnly,
		},
	}
	for _, w := range v.Warnings {
		doc.Warnings = append(doc.Warnings, summaryWarning{
			Kind:   string(w.Kind),
			System: string(w.System),
			Key:    w.Key,
			Rows:   w.Rows,
			Kept:   w.Kept,
		})
	}
	return doc
}

// WriteSummaryYAML は照合結果をYAMLでwに出力します
func WriteSummaryYAML(w io.Writer, v View) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewSummaryDocument(v)); err != nil {
		return apperrors.NewReportError("yaml", err)
	}
	if err := enc.Close(); err != nil {
		return apperrors.NewReportError("yaml", err)
	}
	return nil
}

// WriteSummaryYAMLFile は照合結果をYAMLファイルに保存します
func WriteSummaryYAMLFile(path string, v View) error {
	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewFileError("create", path, err)
	}
	defer file.Close()

	return WriteSummaryYAML(file, v)
}
