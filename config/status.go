package config

import "strings"

// StatusClass はステータスのバッジ色クラスです
type StatusClass string

const (
	StatusReady      StatusClass = "status-ready"
	StatusInProgress StatusClass = "status-inprogress"
	StatusOpen       StatusClass = "status-open"
	StatusRejected   StatusClass = "status-rejected"
	StatusOther      StatusClass = "status-other"
)

// StatusMapping はステータス文字列に含まれる語からバッジ色へのマッピングです (上から順に判定)
var StatusMapping = []struct {
	Class    StatusClass
	Keywords []string
}{
	{StatusReady, []string{"готово", "закрыт", "выполнено", "done", "closed", "resolved"}},
	{StatusInProgress, []string{"в работе", "в прогрессе", "in progress", "progress"}},
	{StatusOpen, []string{"открыт", "новая", "to do", "open", "new"}},
	{StatusRejected, []string{"отклонен", "rejected", "declined"}},
}

// ClassifyStatus はステータス文字列をバッジ色クラスに変換します
func ClassifyStatus(status string) StatusClass {
	lower := strings.ToLower(strings.TrimSpace(status))
	if lower == "" {
		return StatusOther
	}

	for _, m := range StatusMapping {
		for _, kw := range m.Keywords {
			if strings.Contains(lower, kw) {
				return m.Class
			}
		}
	}
	return StatusOther
}
