package reconcile

import (
	"strings"

	"ledgercompare/models"
)

// WarningKind はデータ品質警告の種類です
type WarningKind string

// WarningDuplicateKey は同じキーを持つB行が複数ある場合の警告です。
// 完全一致パスでは最後の行だけが参照されます。
const WarningDuplicateKey WarningKind = "duplicate_key"

// Warning は照合中に見つかったデータ品質上の問題です
type Warning struct {
	Kind   WarningKind
	System models.System
	Key    string
	Rows   []int // 同じキーを持つ行 (元の順)
	Kept   int   // 照合に使われる行
}

// MatchSet は照合結果です。各行IDは高々1つのPairにしか現れません
type MatchSet struct {
	Pairs    []models.Pair
	UsedA    map[int]struct{}
	UsedB    map[int]struct{}
	Warnings []Warning
}

func newMatchSet() MatchSet {
	return MatchSet{
		UsedA: make(map[int]struct{}),
		UsedB: make(map[int]struct{}),
	}
}

// 次のパスに渡すためのコピー
func (m MatchSet) clone() MatchSet {
	out := MatchSet{
		Pairs:    make([]models.Pair, len(m.Pairs)),
		UsedA:    make(map[int]struct{}, len(m.UsedA)),
		UsedB:    make(map[int]struct{}, len(m.UsedB)),
		Warnings: make([]Warning, len(m.Warnings)),
	}
	copy(out.Pairs, m.Pairs)
	copy(out.Warnings, m.Warnings)
	for k := range m.UsedA {
		out.UsedA[k] = struct{}{}
	}
	for k := range m.UsedB {
		out.UsedB[k] = struct{}{}
	}
	return out
}

func (m *MatchSet) add(a, b int) {
	m.Pairs = append(m.Pairs, models.Pair{A: a, B: b})
	m.UsedA[a] = struct{}{}
	m.UsedB[b] = struct{}{}
}

// IsUsedA はA行がいずれかのPairに含まれているかを返します
func (m MatchSet) IsUsedA(index int) bool {
	_, ok := m.UsedA[index]
	return ok
}

// IsUsedB はB行がいずれかのPairに含まれているかを返します
func (m MatchSet) IsUsedB(index int) bool {
	_, ok := m.UsedB[index]
	return ok
}

// matchPass は前のパスの結果を受け取り、更新した結果を返します
type matchPass func(a, b models.Ledger, in MatchSet) MatchSet

// パスの順序は結果に影響するため固定です
var passes = []matchPass{
	exactKeyPass,
	aKeyInBTitlePass,
	bKeyInATitlePass,
}

// Match は2つの台帳を3パスの貪欲法で照合します。
//  1. キーの完全一致 (大文字小文字を区別しない)
//  2. AのキーがBのタイトルに含まれる
//  3. BのキーがAのタイトルに含まれる
//
// 2と3では候補を元の順に走査し、最初に一致した行を採用します。
func Match(a, b models.Ledger) MatchSet {
	state := newMatchSet()
	for _, pass := range passes {
		state = pass(a, b, state)
	}
	return state
}

func exactKeyPass(a, b models.Ledger, in MatchSet) MatchSet {
	out := in.clone()

	lookup := make(map[string]int)
	seen := make(map[string][]int)
	var order []string
	for _, row := range b.Rows {
		key := upperKey(row)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; !ok {
			order = append(order, key)
		}
		seen[key] = append(seen[key], row.Index())
		lookup[key] = row.Index() // 後勝ち
	}

	for _, key := range order {
		if rows := seen[key]; len(rows) > 1 {
			out.Warnings = append(out.Warnings, Warning{
				Kind:   WarningDuplicateKey,
				System: b.System,
				Key:    key,
				Rows:   rows,
				Kept:   lookup[key],
			})
		}
	}

	for _, row := range a.Rows {
		if out.IsUsedA(row.Index()) {
			continue
		}
		key := upperKey(row)
		if key == "" {
			continue
		}
		bi, ok := lookup[key]
		if !ok || out.IsUsedB(bi) {
			continue
		}
		out.add(row.Index(), bi)
	}

	return out
}

func aKeyInBTitlePass(a, b models.Ledger, in MatchSet) MatchSet {
	out := in.clone()
	titles := upperTitles(b)

	for _, ar := range a.Rows {
		if out.IsUsedA(ar.Index()) {
			continue
		}
		key := upperKey(ar)
		if key == "" {
			continue
		}
		for i, br := range b.Rows {
			if out.IsUsedB(br.Index()) {
				continue
			}
			if strings.Contains(titles[i], key) {
				out.add(ar.Index(), br.Index())
				break
			}
		}
	}

	return out
}

func bKeyInATitlePass(a, b models.Ledger, in MatchSet) MatchSet {
	out := in.clone()
	titles := upperTitles(a)

	for _, br := range b.Rows {
		if out.IsUsedB(br.Index()) {
			continue
		}
		key := upperKey(br)
		if key == "" {
			continue
		}
		for i, ar := range a.Rows {
			if out.IsUsedA(ar.Index()) {
				continue
			}
			if strings.Contains(titles[i], key) {
				out.add(ar.Index(), br.Index())
				break
			}
		}
	}

	return out
}

func upperKey(row models.Row) string {
	if strings.TrimSpace(row.Key()) == "" {
		return ""
	}
	return strings.ToUpper(row.Key())
}

func upperTitles(l models.Ledger) []string {
	titles := make([]string, len(l.Rows))
	for i, row := range l.Rows {
		titles[i] = strings.ToUpper(row.Title())
	}
	return titles
}
