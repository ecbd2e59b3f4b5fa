package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Table は端末に出力する表です
type Table struct {
	Headers []string
	Rows    [][]string
	// 右寄せにする列 (0始まり)
	RightAligned []int
}

// WriteTable は表をwに描画します
func WriteTable(w io.Writer, t Table) error {
	config := tablewriter.Config{}
	if len(t.RightAligned) > 0 {
		align := make([]tw.Align, len(t.Headers))
		for i := range align {
			align[i] = tw.AlignLeft
		}
		for _, i := range t.RightAligned {
			if i >= 0 && i < len(align) {
				align[i] = tw.AlignRight
			}
		}
		config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	headers := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = h
	}
	table.Header(headers...)

	for _, row := range t.Rows {
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}
	return table.Render()
}

// SummaryTable は集計を表に変換します
func SummaryTable(v View) Table {
	s := v.Summary
	n := strconv.Itoa
	return Table{
		Headers: []string{"Metric", "Rows", "Defects"},
		Rows: [][]string{
			{"Rows in " + v.SystemA, n(s.TotalA), ""},
			{"Rows in " + v.SystemB, n(s.TotalB), ""},
			{"Same sprint", n(s.SameSprint), n(s.Defects.Match)},
			{"Different sprints", n(s.CrossSprint), n(s.Defects.CrossSprint)},
			{"Only in " + v.SystemA, n(s.AOnly), n(s.Defects.AOnly)},
			{"Only in " + v.SystemB, n(s.BOnly), n(s.Defects.BOnly)},
			{"Match rate", fmt.Sprintf("%.1f%%", s.MatchRate), n(s.Defects.Total)},
		},
		RightAligned: []int{1, 2},
	}
}

// WriteSummaryTable は集計表をwに出力します
func WriteSummaryTable(w io.Writer, v View) error {
	if err := WriteTable(w, SummaryTable(v)); err != nil {
		return fmt.Errorf("集計表の出力に失敗しました: %w", err)
	}
	return nil
}
