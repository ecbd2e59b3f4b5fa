package services

import (
	"strings"

	"ledgercompare/config"
	"ledgercompare/models"
)

// Field は台帳行の論理フィールドです
type Field string

const (
	FieldTitle  Field = "title"
	FieldKey    Field = "key"
	FieldSprint Field = "sprint"
	FieldStatus Field = "status"
)

// Fields は解決対象のフィールドです
var Fields = []Field{FieldTitle, FieldKey, FieldSprint, FieldStatus}

// ResolveMethod は列をどの方法で見つけたかを表します
type ResolveMethod string

const (
	MethodExact    ResolveMethod = "exact"
	MethodFuzzy    ResolveMethod = "fuzzy"
	MethodContent  ResolveMethod = "content"
	MethodFallback ResolveMethod = "fallback"
	MethodNone     ResolveMethod = "none"
)

const defaultSampleRows = 5

// ColumnMapping は論理フィールド → CSV列名の対応です。見つからない列は空文字です
type ColumnMapping struct {
	Title   string
	Key     string
	Sprint  string
	Status  string
	Methods map[Field]ResolveMethod
}

// Column はフィールドに対応する列名を返します
func (m ColumnMapping) Column(f Field) string {
	switch f {
	case FieldTitle:
		return m.Title
	case FieldKey:
		return m.Key
	case FieldSprint:
		return m.Sprint
	case FieldStatus:
		return m.Status
	}
	return ""
}

// ColumnResolver は設定のルールに従ってCSVの列を探します
type ColumnResolver struct {
	aliases config.ColumnAliases
}

// NewColumnResolver は新しいリゾルバーを作成します
func NewColumnResolver(aliases config.ColumnAliases) *ColumnResolver {
	return &ColumnResolver{aliases: aliases}
}

// Resolve はヘッダーと内容のサンプルから各フィールドの列を決めます
func (r *ColumnResolver) Resolve(headers []string, records []models.CSVRecord) ColumnMapping {
	m := ColumnMapping{Methods: make(map[Field]ResolveMethod, len(Fields))}

	var method ResolveMethod
	m.Title, method = resolveColumn(r.aliases.Title, headers, records)
	if m.Title == "" && len(headers) > 0 {
		// タイトル列がない場合は先頭列を使う
		m.Title, method = headers[0], MethodFallback
	}
	m.Methods[FieldTitle] = method

	m.Key, m.Methods[FieldKey] = resolveColumn(r.aliases.Key, headers, records)
	m.Sprint, m.Methods[FieldSprint] = resolveColumn(r.aliases.Sprint, headers, records)
	m.Status, m.Methods[FieldStatus] = resolveColumn(r.aliases.Status, headers, records)

	return m
}

func resolveColumn(rule config.FieldRule, headers []string, records []models.CSVRecord) (string, ResolveMethod) {
	// 1. 完全一致
	exact := make(map[string]struct{}, len(rule.Exact))
	for _, name := range rule.Exact {
		exact[strings.TrimSpace(name)] = struct{}{}
	}
	for _, h := range headers {
		if _, ok := exact[strings.TrimSpace(h)]; ok {
			return h, MethodExact
		}
	}

	// 2. 部分一致
	for _, h := range headers {
		if containsAny(strings.ToLower(h), rule.Fuzzy) {
			return h, MethodFuzzy
		}
	}

	// 3. 内容のサンプルにキーワードが含まれる
	if len(rule.Content) == 0 {
		return "", MethodNone
	}
	columns := headers
	if rule.SampleColumns > 0 && rule.SampleColumns < len(columns) {
		columns = columns[:rule.SampleColumns]
	}
	sampleRows := rule.SampleRows
	if sampleRows <= 0 {
		sampleRows = defaultSampleRows
	}
	for _, h := range columns {
		for _, v := range sampleValues(records, h, sampleRows) {
			if containsAny(strings.ToLower(v), rule.Content) {
				return h, MethodContent
			}
		}
	}

	return "", MethodNone
}

// 空でない値を先頭から最大n件取り出す
func sampleValues(records []models.CSVRecord, column string, n int) []string {
	values := make([]string, 0, n)
	for _, rec := range records {
		if len(values) == n {
			break
		}
		if v := strings.TrimSpace(rec[column]); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && strings.Contains(s, t) {
			return true
		}
	}
	return false
}
