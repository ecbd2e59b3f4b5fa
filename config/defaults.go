package config

import (
	"github.com/spf13/viper"
)

// 状態キーワード (ステータス列の内容判定に使う)
var statusKeywords = []string{
	"открыт", "в работе", "готово", "закрыт", "отложен",
	"open", "in progress", "done", "closed", "resolved",
}

var statusRule = FieldRule{
	Exact: []string{
		"Статус", "Status", "Состояние", "State",
		"Статус задачи", "Status of the task",
		"Статус проблемы", "Issue Status",
	},
	Fuzzy:      []string{"статус", "status", "состояние", "state"},
	Content:    statusKeywords,
	SampleRows: 5,
}

// Default はデフォルト設定を返します
func Default() *Config {
	return &Config{
		LedgerACSV:  "Mos.csv",
		LedgerBCSV:  "Invaders.csv",
		HTMLReport:  "report.html",
		ExcelReport: "comparison_report.xlsx",
		LogLevel:    "info",
		LogFormat:   "auto",
		Systems: Systems{
			A: SystemProfile{
				Name:          "DIT",
				BaseURL:       "https://itpm.mos.ru/browse/",
				Prefixes:      []string{"META-"},
				DefaultPrefix: "META-",
				Columns: ColumnAliases{
					Title:  FieldRule{Exact: []string{"Тема", "Summary", "title"}},
					Key:    FieldRule{Exact: []string{"Ключ проблемы", "Issue key"}},
					Sprint: FieldRule{Exact: []string{"Компоненты", "Components"}},
					Status: statusRule,
				},
			},
			B: SystemProfile{
				Name:          "Invaders",
				BaseURL:       "https://jira.theinvaders.ru/browse/",
				Prefixes:      []string{"MT-", "PART-", "FEATURE-", "BUG-", "TASK-", "EPIC-", "STORY-", "IMPROVEMENT-"},
				DefaultPrefix: "MT-",
				Columns: ColumnAliases{
					Title: FieldRule{Exact: []string{"Тема", "title", "Summary"}},
					Key:   FieldRule{Exact: []string{"Ключ проблемы", "Issue key"}},
					Sprint: FieldRule{
						Exact: []string{
							"Пользовательское поле (Релизный спринт)",
							"Релизный спринт", "Release Sprint", "Sprint", "Спринт",
							"Custom field (Release Sprint)",
						},
						Fuzzy:         []string{"спринт", "sprint", "релиз"},
						Content:       []string{"спринт", "sprint"},
						SampleColumns: 5,
						SampleRows:    3,
					},
					Status: statusRule,
				},
			},
		},
	}
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("ledger_a_csv", d.LedgerACSV)
	v.SetDefault("ledger_b_csv", d.LedgerBCSV)
	v.SetDefault("html_report", d.HTMLReport)
	v.SetDefault("excel_report", d.ExcelReport)
	v.SetDefault("summary_yaml", d.SummaryYAML)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)

	setProfileDefaults(v, "systems.a", d.Systems.A)
	setProfileDefaults(v, "systems.b", d.Systems.B)
}

func setProfileDefaults(v *viper.Viper, prefix string, p SystemProfile) {
	v.SetDefault(prefix+".name", p.Name)
	v.SetDefault(prefix+".base_url", p.BaseURL)
	v.SetDefault(prefix+".prefixes", p.Prefixes)
	v.SetDefault(prefix+".default_prefix", p.DefaultPrefix)

	rules := map[string]FieldRule{
		"title":  p.Columns.Title,
		"key":    p.Columns.Key,
		"sprint": p.Columns.Sprint,
		"status": p.Columns.Status,
	}
	for field, rule := range rules {
		base := prefix + ".columns." + field
		v.SetDefault(base+".exact", rule.Exact)
		v.SetDefault(base+".fuzzy", rule.Fuzzy)
		v.SetDefault(base+".content", rule.Content)
		v.SetDefault(base+".sample_columns", rule.SampleColumns)
		v.SetDefault(base+".sample_rows", rule.SampleRows)
	}
}
