package reconcile

import (
	"sort"

	"ledgercompare/models"
)

// DefectCounts はバケットごとの不具合レコード数です
type DefectCounts struct {
	Match       int `yaml:"match"`
	CrossSprint int `yaml:"cross_sprint"`
	AOnly       int `yaml:"a_only"`
	BOnly       int `yaml:"b_only"`
	Total       int `yaml:"total"`
}

// StatusCount はステータスごとの件数です
type StatusCount struct {
	Status string `yaml:"status"`
	Count  int    `yaml:"count"`
}

// Summary は1回の照合の集計です
type Summary struct {
	TotalA      int           `yaml:"total_a"`
	TotalB      int           `yaml:"total_b"`
	SameSprint  int           `yaml:"same_sprint"`
	CrossSprint int           `yaml:"cross_sprint"`
	AOnly       int           `yaml:"a_only"`
	BOnly       int           `yaml:"b_only"`
	Matched     int           `yaml:"matched"`
	MatchRate   float64       `yaml:"match_rate"` // A側の件数に対する対応済みの割合 (%)
	Records     int           `yaml:"records"`
	Defects     DefectCounts  `yaml:"defects"`
	Statuses    []StatusCount `yaml:"statuses"`
	Sprints     []string      `yaml:"sprints"`
}

// Summarize はバケットから集計を作成します
func Summarize(b models.Buckets) Summary {
	s := Summary{
		SameSprint:  len(b.Match),
		CrossSprint: len(b.CrossSprint),
		AOnly:       len(b.AOnly),
		BOnly:       len(b.BOnly),
	}
	s.Matched = s.SameSprint + s.CrossSprint
	s.TotalA = s.Matched + s.AOnly
	s.TotalB = s.Matched + s.BOnly
	s.Records = s.Matched + s.AOnly + s.BOnly
	s.MatchRate = float64(s.Matched) / float64(max(s.TotalA, 1)) * 100

	statuses := make(map[string]int)
	sprints := make(map[string]struct{})

	for _, rec := range b.Match {
		s.Defects.Match += boolToInt(rec.IsDefect)
		countPaired(rec, statuses, sprints)
	}
	for _, rec := range b.CrossSprint {
		s.Defects.CrossSprint += boolToInt(rec.IsDefect)
		countPaired(rec, statuses, sprints)
	}
	for _, rec := range b.AOnly {
		s.Defects.AOnly += boolToInt(rec.IsDefect)
		statuses[rec.Status]++
		sprints[rec.Sprint] = struct{}{}
	}
	for _, rec := range b.BOnly {
		s.Defects.BOnly += boolToInt(rec.IsDefect)
		statuses[rec.Status]++
		sprints[rec.Sprint] = struct{}{}
	}
	s.Defects.Total = s.Defects.Match + s.Defects.CrossSprint + s.Defects.AOnly + s.Defects.BOnly

	s.Statuses = make([]StatusCount, 0, len(statuses))
	for status, n := range statuses {
		s.Statuses = append(s.Statuses, StatusCount{Status: status, Count: n})
	}
	sort.Slice(s.Statuses, func(i, j int) bool {
		return s.Statuses[i].Status < s.Statuses[j].Status
	})

	if len(sprints) == 0 {
		sprints[models.NoSprint] = struct{}{}
	}
	labels := make([]string, 0, len(sprints))
	for label := range sprints {
		labels = append(labels, label)
	}
	s.Sprints = SortSprints(labels)

	return s
}

func countPaired(rec models.PairedRecord, statuses map[string]int, sprints map[string]struct{}) {
	statuses[rec.A.Status]++
	statuses[rec.B.Status]++
	sprints[rec.A.Sprint] = struct{}{}
	sprints[rec.B.Sprint] = struct{}{}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
