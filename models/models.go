package models

// CSVRecord はCSVの1行を表します (ヘッダー名→値のマップ)
type CSVRecord map[string]string

// System は比較対象のトラッキングシステムを表します
type System string

const (
	// SystemA は台帳A (例: ДИТ / META-キー) を表します
	SystemA System = "a"
	// SystemB は台帳B (例: Invaders / MT-, PART- などのキー) を表します
	SystemB System = "b"
)

// Row はエンジンが参照する行のアクセサ契約です
type Row interface {
	// Index は元ファイル内の位置 (0始まり) で、実行中に変わらない行IDです
	Index() int
	Title() string
	Key() string
	// RawSprint はスプリント情報を含む生のテキストです
	RawSprint() string
	Status() string
}

// ARow はシステムAの1行です
type ARow struct {
	Position   int
	Summary    string
	IssueKey   string
	Components string // スプリント名が入る「Компоненты」列
	State      string
	Source     CSVRecord
}

func (r ARow) Index() int        { return r.Position }
func (r ARow) Title() string     { return r.Summary }
func (r ARow) Key() string       { return r.IssueKey }
func (r ARow) RawSprint() string { return r.Components }
func (r ARow) Status() string    { return r.State }

// BRow はシステムBの1行です
type BRow struct {
	Position      int
	Summary       string
	IssueKey      string
	ReleaseSprint string // 「Релизный спринт」カスタムフィールド
	State         string
	Source        CSVRecord
}

func (r BRow) Index() int        { return r.Position }
func (r BRow) Title() string     { return r.Summary }
func (r BRow) Key() string       { return r.IssueKey }
func (r BRow) RawSprint() string { return r.ReleaseSprint }
func (r BRow) Status() string    { return r.State }

// Ledger は1システム分の全行です
type Ledger struct {
	System  System
	Name    string   // 表示名 (例: "DIT")
	Columns []string // 元CSVのヘッダー順
	Rows    []Row
}

// Len は行数を返します
func (l Ledger) Len() int {
	return len(l.Rows)
}

// Pair は台帳Aの行と台帳Bの行の対応です
type Pair struct {
	A int
	B int
}
