package services

import (
	"strings"

	"ledgercompare/models"
	"ledgercompare/reconcile"
)

// BuildLedger はCSVの行を台帳に変換します。
// キー列が空の行はタイトルからキーを抽出します。
func BuildLedger(system models.System, name string, headers []string, records []models.CSVRecord, mapping ColumnMapping, grammar reconcile.KeyGrammar) models.Ledger {
	ledger := models.Ledger{
		System:  system,
		Name:    name,
		Columns: headers,
		Rows:    make([]models.Row, 0, len(records)),
	}

	for i, rec := range records {
		title := strings.TrimSpace(value(rec, mapping.Title))

		key := strings.TrimSpace(value(rec, mapping.Key))
		if key == "" {
			key, _ = grammar.Extract(title)
		}

		sprint := value(rec, mapping.Sprint)
		status := strings.TrimSpace(value(rec, mapping.Status))

		if system == models.SystemA {
			ledger.Rows = append(ledger.Rows, models.ARow{
				Position:   i,
				Summary:    title,
				IssueKey:   key,
				Components: sprint,
				State:      status,
				Source:     rec,
			})
		} else {
			ledger.Rows = append(ledger.Rows, models.BRow{
				Position:      i,
				Summary:       title,
				IssueKey:      key,
				ReleaseSprint: sprint,
				State:         status,
				Source:        rec,
			})
		}
	}

	return ledger
}

func value(rec models.CSVRecord, column string) string {
	if column == "" {
		return ""
	}
	return rec[column]
}
