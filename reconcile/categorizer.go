package reconcile

import (
	"strings"

	"ledgercompare/models"
)

// DefaultDefectMarkers はタイトルに含まれていれば不具合とみなすマーカーです。
// 同じマーカーの英語表記とロシア語表記です。
var DefaultDefectMarkers = []string{"[Defect]", "[Баг]"}

// LinkFunc はキーから閲覧用URLを組み立てる外部の協調者です
type LinkFunc func(system models.System, key string) string

// Categorizer は照合結果と2つの台帳から4つのバケットを作成します
type Categorizer struct {
	// GrammarB はB側のキーを再正規化するための文法です
	GrammarB KeyGrammar
	// Links が nil の場合、URLは空になります
	Links         LinkFunc
	DefectMarkers []string
}

// NewCategorizer はデフォルトの不具合マーカーを使うCategorizerを作成します
func NewCategorizer(grammarB KeyGrammar, links LinkFunc) *Categorizer {
	return &Categorizer{
		GrammarB:      grammarB,
		Links:         links,
		DefectMarkers: DefaultDefectMarkers,
	}
}

// Categorize は全行をMatch / CrossSprint / AOnly / BOnly のいずれか1つに振り分けます
func (c *Categorizer) Categorize(a, b models.Ledger, matches MatchSet) models.Buckets {
	var buckets models.Buckets

	rowsA := indexRows(a)
	rowsB := indexRows(b)

	for _, pair := range matches.Pairs {
		ar, okA := rowsA[pair.A]
		br, okB := rowsB[pair.B]
		if !okA || !okB {
			continue
		}

		rec := models.PairedRecord{
			A:        c.side(models.SystemA, ar),
			B:        c.side(models.SystemB, br),
			IsDefect: c.isDefect(ar.Title()) || c.isDefect(br.Title()),
		}
		if rec.A.Sprint == rec.B.Sprint {
			buckets.Match = append(buckets.Match, rec)
		} else {
			buckets.CrossSprint = append(buckets.CrossSprint, rec)
		}
	}

	for _, row := range a.Rows {
		if matches.IsUsedA(row.Index()) {
			continue
		}
		buckets.AOnly = append(buckets.AOnly, models.SoloRecord{
			System:   models.SystemA,
			Side:     c.side(models.SystemA, row),
			IsDefect: c.isDefect(row.Title()),
		})
	}

	for _, row := range b.Rows {
		if matches.IsUsedB(row.Index()) {
			continue
		}
		buckets.BOnly = append(buckets.BOnly, models.SoloRecord{
			System:   models.SystemB,
			Side:     c.side(models.SystemB, row),
			IsDefect: c.isDefect(row.Title()),
		})
	}

	return buckets
}

func (c *Categorizer) side(system models.System, row models.Row) models.Side {
	key := row.Key()
	if system == models.SystemB && key != "" {
		if normalized, ok := c.GrammarB.Normalize(key); ok {
			key = normalized
		}
	}

	s := models.Side{
		Key:    key,
		Title:  row.Title(),
		Sprint: CanonicalSprint(row.RawSprint()),
		Status: statusText(row.Status()),
	}
	if c.Links != nil {
		s.URL = c.Links(system, key)
	}
	return s
}

func (c *Categorizer) isDefect(title string) bool {
	for _, marker := range c.DefectMarkers {
		if marker != "" && strings.Contains(title, marker) {
			return true
		}
	}
	return false
}

func statusText(status string) string {
	status = strings.TrimSpace(status)
	if status == "" {
		return models.UnknownStatus
	}
	return status
}

func indexRows(l models.Ledger) map[int]models.Row {
	rows := make(map[int]models.Row, len(l.Rows))
	for _, row := range l.Rows {
		rows[row.Index()] = row
	}
	return rows
}
