package models

const (
	// NoSprint はスプリントが見つからない場合のラベルです
	NoSprint = "No sprint"
	// UnknownStatus はステータスが空の場合のラベルです
	UnknownStatus = "Unknown"
)

// Bucket は分類結果の種類です
type Bucket string

const (
	BucketMatch       Bucket = "match"
	BucketCrossSprint Bucket = "cross_sprint"
	BucketAOnly       Bucket = "a_only"
	BucketBOnly       Bucket = "b_only"
)

// Side は1システム側のレコード情報です
type Side struct {
	Key    string `yaml:"key"`
	Title  string `yaml:"title"`
	Sprint string `yaml:"sprint"`
	Status string `yaml:"status"`
	URL    string `yaml:"url,omitempty"`
}

// PairedRecord は対応が取れた2行分のレコードです (Match / CrossSprint)
type PairedRecord struct {
	A        Side `yaml:"a"`
	B        Side `yaml:"b"`
	IsDefect bool `yaml:"is_defect"`
}

// SoloRecord は片方のシステムにしか存在しない行のレコードです
type SoloRecord struct {
	System   System `yaml:"system"`
	Side     `yaml:",inline"`
	IsDefect bool `yaml:"is_defect"`
}

// Buckets は4つの分類結果です。全行がちょうど1回ずつ現れます
type Buckets struct {
	Match       []PairedRecord
	CrossSprint []PairedRecord
	AOnly       []SoloRecord
	BOnly       []SoloRecord
}

// RowSlots は各バケットが占める行数の合計です (ペアは2行として数えます)
func (b Buckets) RowSlots() int {
	return 2*len(b.Match) + 2*len(b.CrossSprint) + len(b.AOnly) + len(b.BOnly)
}

// Empty は全バケットが空かどうかを返します
func (b Buckets) Empty() bool {
	return b.RowSlots() == 0
}
