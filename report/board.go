package report

import (
	"strings"

	"ledgercompare/config"
	"ledgercompare/models"
)

// cardClasses はバケットごとのカードのCSSクラスです
var cardClasses = map[models.Bucket]string{
	models.BucketMatch:       "match",
	models.BucketCrossSprint: "diff",
	models.BucketAOnly:       "a-only",
	models.BucketBOnly:       "b-only",
}

// kindToggle は種類ごとの表示切り替えボタンです
type kindToggle struct {
	Class string
	Label string
}

// kindToggles はボードの表示切り替えボタンをバケット順に返します
func kindToggles(v View) []kindToggle {
	return []kindToggle{
		{cardClasses[models.BucketMatch], "Same sprint"},
		{cardClasses[models.BucketCrossSprint], "Different sprints"},
		{cardClasses[models.BucketAOnly], "Only in " + v.SystemA},
		{cardClasses[models.BucketBOnly], "Only in " + v.SystemB},
	}
}

type card struct {
	Kind        string
	Key         string
	Title       string
	URL         string
	Status      string
	StatusClass config.StatusClass
	IsDefect    bool
	// クロススプリントの場合の相手側
	Other       *card
	OtherSystem string
}

func (c card) Linked() bool {
	return c.URL != "" && c.URL != "#"
}

func (c card) ShowStatus() bool {
	return c.Status != "" && c.Status != models.UnknownStatus
}

// SearchText はタスクフィルターで照合する文字列です
func (c card) SearchText() string {
	text := c.Key + " " + c.Title
	if c.Other != nil {
		text += " " + c.Other.Key + " " + c.Other.Title
	}
	return strings.ToUpper(text)
}

type column struct {
	Sprint string
	A      []card
	B      []card
}

type lane struct {
	ID      string
	Title   string
	Count   int
	Defects bool
	Columns []column
}

func newCard(bucket models.Bucket, s models.Side, isDefect bool) card {
	return card{
		Kind:        cardClasses[bucket],
		Key:         s.Key,
		Title:       s.Title,
		URL:         s.URL,
		Status:      s.Status,
		StatusClass: config.ClassifyStatus(s.Status),
		IsDefect:    isDefect,
	}
}

// buildLanes はバケットをスプリント列ごとのボードに並べます。
// 通常タスクと不具合は別のレーンに分けます。
func buildLanes(v View) []lane {
	lanes := []lane{
		{ID: "tasks-lane", Title: "Tasks"},
		{ID: "defects-lane", Title: "Defects", Defects: true},
	}

	for i := range lanes {
		l := &lanes[i]
		index := make(map[string]int, len(v.Summary.Sprints))
		for _, sp := range v.Summary.Sprints {
			index[sp] = len(l.Columns)
			l.Columns = append(l.Columns, column{Sprint: sp})
		}
		col := func(sprint string) *column {
			j, ok := index[sprint]
			if !ok {
				index[sprint] = len(l.Columns)
				l.Columns = append(l.Columns, column{Sprint: sprint})
				j = index[sprint]
			}
			return &l.Columns[j]
		}

		for _, rec := range v.Buckets.Match {
			if rec.IsDefect != l.Defects {
				continue
			}
			l.Count++
			c := col(rec.A.Sprint)
			c.A = append(c.A, newCard(models.BucketMatch, rec.A, rec.IsDefect))
			c.B = append(c.B, newCard(models.BucketMatch, rec.B, rec.IsDefect))
		}

		for _, rec := range v.Buckets.CrossSprint {
			if rec.IsDefect != l.Defects {
				continue
			}
			l.Count++
			aCard := newCard(models.BucketCrossSprint, rec.A, rec.IsDefect)
			bCard := newCard(models.BucketCrossSprint, rec.B, rec.IsDefect)
			aOther, bOther := bCard, aCard
			aCard.Other, aCard.OtherSystem = &aOther, v.SystemB
			bCard.Other, bCard.OtherSystem = &bOther, v.SystemA

			ca := col(rec.A.Sprint)
			ca.A = append(ca.A, aCard)
			cb := col(rec.B.Sprint)
			cb.B = append(cb.B, bCard)
		}

		for _, rec := range v.Buckets.AOnly {
			if rec.IsDefect != l.Defects {
				continue
			}
			l.Count++
			c := col(rec.Sprint)
			c.A = append(c.A, newCard(models.BucketAOnly, rec.Side, rec.IsDefect))
		}

		for _, rec := range v.Buckets.BOnly {
			if rec.IsDefect != l.Defects {
				continue
			}
			l.Count++
			c := col(rec.Sprint)
			c.B = append(c.B, newCard(models.BucketBOnly, rec.Side, rec.IsDefect))
		}
	}

	return lanes
}
