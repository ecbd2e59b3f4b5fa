package reconcile

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"ledgercompare/models"
)

// "Sprint 7", "спринт07", "META Спринт 13" など。位置は問わず最初の一致を使います
var sprintPattern = regexp.MustCompile(`(?i)(?:sprint|спринт)\s*(\d+)`)

// CanonicalSprint は任意のテキストを "Sprint N" または "No sprint" に正規化します。
// 同じ入力には常に同じ結果を返す純粋関数です。
func CanonicalSprint(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return models.NoSprint
	}

	if m := sprintPattern.FindStringSubmatch(raw); m != nil {
		return sprintLabel(m[1])
	}

	return models.NoSprint
}

// 数字列を "Sprint N" に変換 ("07" → "Sprint 7")
func sprintLabel(digits string) string {
	if n, err := strconv.Atoi(digits); err == nil {
		return "Sprint " + strconv.Itoa(n)
	}

	// intに収まらない桁数の場合は先頭の0だけ落とす
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		trimmed = "0"
	}
	return "Sprint " + trimmed
}

// SprintNumber は正規化済みラベルのスプリント番号を返します
func SprintNumber(label string) (int, bool) {
	num, ok := strings.CutPrefix(label, "Sprint ")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SortSprints はラベルを番号順に並べ替えます。"No sprint" や番号のないラベルは末尾に置きます
func SortSprints(labels []string) []string {
	sorted := make([]string, len(labels))
	copy(sorted, labels)

	sort.SliceStable(sorted, func(i, j int) bool {
		ni, oki := SprintNumber(sorted[i])
		nj, okj := SprintNumber(sorted[j])
		switch {
		case oki && okj:
			return ni < nj
		case oki != okj:
			return oki
		default:
			return sorted[i] < sorted[j]
		}
	})
	return sorted
}
