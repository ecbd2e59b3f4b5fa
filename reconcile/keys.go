package reconcile

import (
	"regexp"
	"strings"
)

// DefaultAPrefixes はシステムAのキー接頭辞です
var DefaultAPrefixes = []string{"META-"}

// DefaultBPrefixes はシステムBのキー接頭辞です。リストの順に試し、最初に一致したものを採用します
var DefaultBPrefixes = []string{"MT-", "PART-", "FEATURE-", "BUG-", "TASK-", "EPIC-", "STORY-", "IMPROVEMENT-"}

// KeyGrammar は1システム分のキー文法 (<PREFIX><DIGITS>) です
type KeyGrammar struct {
	prefixes []string
	patterns []*regexp.Regexp
}

// NewKeyGrammar は接頭辞リストからキー文法を作成します
func NewKeyGrammar(prefixes ...string) KeyGrammar {
	g := KeyGrammar{
		prefixes: make([]string, 0, len(prefixes)),
		patterns: make([]*regexp.Regexp, 0, len(prefixes)),
	}
	for _, p := range prefixes {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		g.prefixes = append(g.prefixes, p)
		g.patterns = append(g.patterns, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(p)+`\d+`))
	}
	return g
}

// Prefixes は接頭辞のコピーを返します
func (g KeyGrammar) Prefixes() []string {
	out := make([]string, len(g.prefixes))
	copy(out, g.prefixes)
	return out
}

// Extract はテキスト中から最初のキーを探して大文字で返します
func (g KeyGrammar) Extract(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	for _, re := range g.patterns {
		if m := re.FindString(text); m != "" {
			return strings.ToUpper(m), true
		}
	}
	return "", false
}

// Normalize はテキストがすでに <PREFIX><DIGITS> 形式ならそのまま、
// そうでなければテキスト中から抽出したキーを返します。冪等です。
func (g KeyGrammar) Normalize(text string) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(text))
	if upper == "" {
		return "", false
	}

	for _, p := range g.prefixes {
		if rest, ok := strings.CutPrefix(upper, p); ok && isDigits(rest) {
			return upper, true
		}
	}

	return g.Extract(upper)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
