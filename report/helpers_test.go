package report

import (
	"time"

	"ledgercompare/models"
	"ledgercompare/reconcile"
)

func sampleView() View {
	buckets := models.Buckets{
		Match: []models.PairedRecord{{
			A: models.Side{Key: "META-1", Title: "Login page", Sprint: "Sprint 3", Status: "Готово", URL: "https://a.example/browse/META-1"},
			B: models.Side{Key: "MT-1", Title: "META-1 Login page", Sprint: "Sprint 3", Status: "Done", URL: "https://b.example/browse/MT-1"},
		}},
		CrossSprint: []models.PairedRecord{{
			A:        models.Side{Key: "META-2", Title: "[Баг] Broken export", Sprint: "Sprint 4", Status: "В работе", URL: "#"},
			B:        models.Side{Key: "MT-2", Title: "Broken export", Sprint: "Sprint 5", Status: "In Progress", URL: "https://b.example/browse/MT-2"},
			IsDefect: true,
		}},
		AOnly: []models.SoloRecord{{
			System: models.SystemA,
			Side:   models.Side{Key: "META-3", Title: "Reports <draft>", Sprint: models.NoSprint, Status: models.UnknownStatus, URL: "#"},
		}},
		BOnly: []models.SoloRecord{{
			System: models.SystemB,
			Side:   models.Side{Key: "PART-7", Title: "Cleanup", Sprint: "Sprint 10", Status: "Open", URL: "https://b.example/browse/PART-7"},
		}},
	}

	a := models.Ledger{
		System:  models.SystemA,
		Name:    "DIT",
		Columns: []string{"Тема", "Ключ"},
		Rows: []models.Row{
			models.ARow{Position: 0, Summary: "Login page", IssueKey: "META-1", Source: models.CSVRecord{"Тема": "Login page", "Ключ": "META-1"}},
		},
	}
	b := models.Ledger{
		System:  models.SystemB,
		Name:    "Invaders",
		Columns: []string{"Summary", "Issue key"},
		Rows: []models.Row{
			models.BRow{Position: 0, Summary: "META-1 Login page", IssueKey: "MT-1", Source: models.CSVRecord{"Summary": "META-1 Login page", "Issue key": "MT-1"}},
		},
	}

	return View{
		RunID:       "run-1",
		GeneratedAt: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		SystemA:     "DIT",
		SystemB:     "Invaders",
		Buckets:     buckets,
		Summary:     reconcile.Summarize(buckets),
		LedgerA:     a,
		LedgerB:     b,
		Warnings: []reconcile.Warning{{
			Kind:   reconcile.WarningDuplicateKey,
			System: models.SystemB,
			Key:    "MT-9",
			Rows:   []int{4, 8},
			Kept:   8,
		}},
	}
}
