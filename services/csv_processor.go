package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"ledgercompare/apperrors"
	"ledgercompare/config"
	"ledgercompare/models"
	"ledgercompare/reconcile"
	"ledgercompare/utils"
)

// CSVTable は読み込んだCSVです
type CSVTable struct {
	Path     string
	Encoding string
	Headers  []string
	Records  []models.CSVRecord
}

// CSVProcessor はCSVファイルの読み込みと台帳への変換を担当します
type CSVProcessor struct {
	config *config.Config
}

// NewCSVProcessor は新しいCSVプロセッサーを作成します
func NewCSVProcessor(cfg *config.Config) *CSVProcessor {
	return &CSVProcessor{
		config: cfg,
	}
}

// ReadCSV は汎用CSVリーダーです。UTF-8 (BOM付き可) で読めない場合は Windows-1251 として読み込みます
func (p *CSVProcessor) ReadCSV(filePath string) (*CSVTable, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, apperrors.NewFileError("open", filePath, err)
	}

	data, encoding, err := decodeText(raw)
	if err != nil {
		return nil, apperrors.NewFileError("decode", filePath, err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headerRow, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSVにヘッダー行がありません (%s): %w", filePath, apperrors.ErrNoData)
	}
	if err != nil {
		return nil, apperrors.NewFileError("read", filePath, err)
	}

	table := &CSVTable{
		Path:     filePath,
		Encoding: encoding,
		Headers:  uniqueHeaders(headerRow),
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, apperrors.NewFileError("read", filePath, err)
		}

		if len(record) > len(table.Headers) {
			utils.LogWarn("行 %d: フィールド数が不一致（ヘッダー: %d, 行: %d）", line, len(table.Headers), len(record))
		}

		rowData := make(models.CSVRecord, len(table.Headers))
		for j, header := range table.Headers {
			if j < len(record) {
				rowData[header] = record[j]
			} else {
				rowData[header] = ""
			}
		}
		table.Records = append(table.Records, rowData)
	}

	utils.LogInfo("CSVを読み込みました: %s (%s, %d 行)", filePath, encoding, len(table.Records))
	return table, nil
}

// ReadLedger は設定に従って1システム分のCSVを読み込み、台帳に変換します
func (p *CSVProcessor) ReadLedger(system models.System) (models.Ledger, ColumnMapping, error) {
	profile := p.config.Profile(system == models.SystemA)
	path := p.config.LedgerBCSV
	if system == models.SystemA {
		path = p.config.LedgerACSV
	}

	table, err := p.ReadCSV(path)
	if err != nil {
		return models.Ledger{}, ColumnMapping{}, err
	}

	mapping := NewColumnResolver(profile.Columns).Resolve(table.Headers, table.Records)
	logMapping(profile.Name, table.Headers, mapping)

	grammar := reconcile.NewKeyGrammar(profile.Prefixes...)
	ledger := BuildLedger(system, profile.Name, table.Headers, table.Records, mapping, grammar)
	return ledger, mapping, nil
}

// 文字コードを判定してUTF-8に変換
func decodeText(raw []byte) ([]byte, string, error) {
	if utf8.Valid(raw) {
		data, err := unicode.UTF8BOM.NewDecoder().Bytes(raw)
		return data, "utf-8", err
	}

	data, err := charmap.Windows1251.NewDecoder().Bytes(raw)
	return data, "windows-1251", err
}

// 空や重複したヘッダー名を一意にする ("Comment", "Comment.1", ...)
func uniqueHeaders(headers []string) []string {
	out := make([]string, len(headers))
	seen := make(map[string]struct{}, len(headers))
	next := make(map[string]int, len(headers))

	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		name := h
		if _, taken := seen[name]; taken {
			// 元から "X.1" のような列がある場合も重ならない名前まで進める
			n := max(next[h], 1)
			for {
				name = h + "." + strconv.Itoa(n)
				n++
				if _, taken := seen[name]; !taken {
					break
				}
			}
			next[h] = n
		}
		seen[name] = struct{}{}
		out[i] = name
	}
	return out
}

func logMapping(system string, headers []string, m ColumnMapping) {
	utils.LogDebug("%s の列: %v", system, headers)
	for _, f := range Fields {
		col := m.Column(f)
		if col == "" {
			utils.LogWarn("%s: %s 列が見つかりません", system, f)
			continue
		}
		utils.LogInfo("%s: %s 列 = '%s' (%s)", system, f, col, m.Methods[f])
	}
}
