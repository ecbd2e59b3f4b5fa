package reconcile

import "ledgercompare/models"

type aSpec struct {
	key, title, sprint, status string
}

type bSpec struct {
	key, title, sprint, status string
}

func ledgerA(specs ...aSpec) models.Ledger {
	l := models.Ledger{System: models.SystemA, Name: "DIT"}
	for i, s := range specs {
		l.Rows = append(l.Rows, models.ARow{
			Position:   i,
			Summary:    s.title,
			IssueKey:   s.key,
			Components: s.sprint,
			State:      s.status,
		})
	}
	return l
}

func ledgerB(specs ...bSpec) models.Ledger {
	l := models.Ledger{System: models.SystemB, Name: "Invaders"}
	for i, s := range specs {
		l.Rows = append(l.Rows, models.BRow{
			Position:      i,
			Summary:       s.title,
			IssueKey:      s.key,
			ReleaseSprint: s.sprint,
			State:         s.status,
		})
	}
	return l
}

func defaultCategorizer() *Categorizer {
	return NewCategorizer(NewKeyGrammar(DefaultBPrefixes...), nil)
}
