package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"ledgercompare/apperrors"
	"ledgercompare/models"
)

const (
	sheetSummary     = "Summary"
	sheetMatches     = "Matches"
	sheetCrossSprint = "Cross sprint"
	// Excelのシート名の上限
	maxSheetName = 31
)

// ExcelExporter は照合結果をExcelブックに出力します
type ExcelExporter struct {
	headerStyle int
	cellStyle   int
	titleStyle  int
}

// NewExcelExporter はExcelExporterを作成します
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export はExcelブックをpathに保存します
func (e *ExcelExporter) Export(path string, v View) error {
	f, err := e.build(v)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return apperrors.NewFileError("write", path, err)
	}
	return nil
}

// Write はExcelブックをwに書き出します
func (e *ExcelExporter) Write(w io.Writer, v View) error {
	f, err := e.build(v)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return apperrors.NewReportError("xlsx", err)
	}
	return nil
}

// SheetNames は出力されるシート名を順に返します。
// Excelのシート名は大文字小文字を区別しないため、重複した名前には " (2)" などを付けます。
func SheetNames(v View) []string {
	names := []string{
		sheetSummary,
		sheetMatches,
		sheetCrossSprint,
		sheetName("Only " + v.SystemA),
		sheetName("Only " + v.SystemB),
		sheetName("Source " + v.SystemA),
		sheetName("Source " + v.SystemB),
	}

	used := make(map[string]struct{}, len(names))
	for i, name := range names {
		unique := name
		for n := 2; ; n++ {
			if _, taken := used[strings.ToLower(unique)]; !taken {
				break
			}
			suffix := fmt.Sprintf(" (%d)", n)
			unique = sheetName(truncateRunes(name, maxSheetName-len(suffix)) + suffix)
		}
		used[strings.ToLower(unique)] = struct{}{}
		names[i] = unique
	}
	return names
}

func (e *ExcelExporter) build(v View) (*excelize.File, error) {
	f := excelize.NewFile()

	var err error
	if e.headerStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"0F1724"}, Pattern: 1},
		Border:    thinBorder(),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	}); err != nil {
		f.Close()
		return nil, apperrors.NewReportError("xlsx", err)
	}
	if e.cellStyle, err = f.NewStyle(&excelize.Style{
		Border:    thinBorder(),
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	}); err != nil {
		f.Close()
		return nil, apperrors.NewReportError("xlsx", err)
	}
	if e.titleStyle, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	}); err != nil {
		f.Close()
		return nil, apperrors.NewReportError("xlsx", err)
	}

	names := SheetNames(v)
	steps := []func(*excelize.File, string, View) error{
		e.writeSummary,
		e.pairedSheet(v.Buckets.Match),
		e.pairedSheet(v.Buckets.CrossSprint),
		e.soloSheet(v.Buckets.AOnly),
		e.soloSheet(v.Buckets.BOnly),
		e.sourceSheet(v.LedgerA),
		e.sourceSheet(v.LedgerB),
	}

	for i, name := range names {
		if i == 0 {
			err = f.SetSheetName("Sheet1", name)
		} else {
			_, err = f.NewSheet(name)
		}
		if err == nil {
			err = steps[i](f, name, v)
		}
		if err != nil {
			f.Close()
			return nil, apperrors.NewReportError("xlsx", fmt.Errorf("シート %q: %w", name, err))
		}
	}
	f.SetActiveSheet(0)

	return f, nil
}

func (e *ExcelExporter) writeSummary(f *excelize.File, sheet string, v View) error {
	s := v.Summary
	if err := f.SetCellValue(sheet, "A1", fmt.Sprintf("%s vs %s", v.SystemA, v.SystemB)); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", "C1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "C1", e.titleStyle); err != nil {
		return err
	}

	rows := [][]any{
		{"Generated", v.GeneratedAt.Format(time.DateTime)},
		{"Run ID", v.RunID},
		{},
		{"Metric", "Value", "Defects"},
		{"Rows in " + v.SystemA, s.TotalA},
		{"Rows in " + v.SystemB, s.TotalB},
		{"Same sprint", s.SameSprint, s.Defects.Match},
		{"Different sprints", s.CrossSprint, s.Defects.CrossSprint},
		{"Only in " + v.SystemA, s.AOnly, s.Defects.AOnly},
		{"Only in " + v.SystemB, s.BOnly, s.Defects.BOnly},
		{"Matched", s.Matched},
		{"Match rate, %", fmt.Sprintf("%.1f", s.MatchRate)},
		{"Defects total", s.Defects.Total},
		{},
		{"Status", "Count"},
	}
	for _, sc := range s.Statuses {
		rows = append(rows, []any{sc.Status, sc.Count})
	}

	headerRows := map[int]int{}
	for i, row := range rows {
		r := i + 2
		switch {
		case len(row) > 0 && row[0] == "Metric":
			headerRows[r] = 3
		case len(row) > 0 && row[0] == "Status":
			headerRows[r] = 2
		}
		if len(row) == 0 {
			continue
		}
		if err := setRow(f, sheet, r, row); err != nil {
			return err
		}
	}
	for r, width := range headerRows {
		if err := e.styleHeader(f, sheet, r, width); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheet, "A", "A", 28)
}

func (e *ExcelExporter) pairedSheet(records []models.PairedRecord) func(*excelize.File, string, View) error {
	return func(f *excelize.File, sheet string, v View) error {
		header := []any{
			"Sprint " + v.SystemA, "Key " + v.SystemA, "Title " + v.SystemA, "Status " + v.SystemA,
			"Sprint " + v.SystemB, "Key " + v.SystemB, "Title " + v.SystemB, "Status " + v.SystemB,
			"Type",
		}
		if err := e.writeHeader(f, sheet, header); err != nil {
			return err
		}

		for i, rec := range records {
			r := i + 2
			row := []any{
				rec.A.Sprint, rec.A.Key, rec.A.Title, rec.A.Status,
				rec.B.Sprint, rec.B.Key, rec.B.Title, rec.B.Status,
				recordType(rec.IsDefect),
			}
			if err := setRow(f, sheet, r, row); err != nil {
				return err
			}
			if err := setLink(f, sheet, 2, r, rec.A.URL); err != nil {
				return err
			}
			if err := setLink(f, sheet, 6, r, rec.B.URL); err != nil {
				return err
			}
		}
		if err := e.styleCells(f, sheet, len(header), len(records)); err != nil {
			return err
		}

		return setWidths(f, sheet, map[string]float64{"A": 14, "B": 16, "C": 60, "D": 18, "E": 14, "F": 16, "G": 60, "H": 18, "I": 10})
	}
}

func (e *ExcelExporter) soloSheet(records []models.SoloRecord) func(*excelize.File, string, View) error {
	return func(f *excelize.File, sheet string, _ View) error {
		header := []any{"Sprint", "Key", "Title", "Status", "Type"}
		if err := e.writeHeader(f, sheet, header); err != nil {
			return err
		}

		for i, rec := range records {
			r := i + 2
			if err := setRow(f, sheet, r, []any{rec.Sprint, rec.Key, rec.Title, rec.Status, recordType(rec.IsDefect)}); err != nil {
				return err
			}
			if err := setLink(f, sheet, 2, r, rec.URL); err != nil {
				return err
			}
		}
		if err := e.styleCells(f, sheet, len(header), len(records)); err != nil {
			return err
		}

		return setWidths(f, sheet, map[string]float64{"A": 14, "B": 16, "C": 80, "D": 18, "E": 10})
	}
}

// sourceSheet は入力CSVをそのまま書き出します
func (e *ExcelExporter) sourceSheet(ledger models.Ledger) func(*excelize.File, string, View) error {
	return func(f *excelize.File, sheet string, _ View) error {
		header := make([]any, len(ledger.Columns))
		for i, c := range ledger.Columns {
			header[i] = c
		}
		if len(header) == 0 {
			return nil
		}
		if err := e.writeHeader(f, sheet, header); err != nil {
			return err
		}

		for i, row := range ledger.Rows {
			src := sourceRecord(row)
			values := make([]any, len(ledger.Columns))
			for j, c := range ledger.Columns {
				values[j] = src[c]
			}
			if err := setRow(f, sheet, i+2, values); err != nil {
				return err
			}
		}
		return nil
	}
}

func (e *ExcelExporter) writeHeader(f *excelize.File, sheet string, header []any) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	if err := e.styleHeader(f, sheet, 1, len(header)); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (e *ExcelExporter) styleHeader(f *excelize.File, sheet string, row, width int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(width, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, e.headerStyle)
}

// styleCells はヘッダー下のデータ行に罫線を付けます
func (e *ExcelExporter) styleCells(f *excelize.File, sheet string, width, rows int) error {
	if rows == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(width, rows+1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A2", last, e.cellStyle)
}

func thinBorder() []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "000000", Style: 1}
	}
	return borders
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func setLink(f *excelize.File, sheet string, col, row int, url string) error {
	if !strings.HasPrefix(url, "http") {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellHyperLink(sheet, cell, url, "External")
}

func setWidths(f *excelize.File, sheet string, widths map[string]float64) error {
	for col, w := range widths {
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

func sourceRecord(row models.Row) models.CSVRecord {
	switch r := row.(type) {
	case models.ARow:
		return r.Source
	case *models.ARow:
		return r.Source
	case models.BRow:
		return r.Source
	case *models.BRow:
		return r.Source
	}
	return nil
}

func recordType(isDefect bool) string {
	if isDefect {
		return "Defect"
	}
	return "Task"
}

// sheetName はExcelで使えない文字を除き、長さを制限します
func sheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, name)
	return truncateRunes(name, maxSheetName)
}

func truncateRunes(s string, n int) string {
	if runes := []rune(s); len(runes) > n {
		return string(runes[:n])
	}
	return s
}
