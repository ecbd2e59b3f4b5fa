package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ledgercompare/config"
)

const mosCSV = `Тема,Ключ проблемы,Компоненты,Статус
Login page,META-1,Спринт 3,Готово
[Баг] Export broken,META-2,Спринт 4,В работе
Reports,META-3,,Открыт
Search,META-4,META Спринт 5,Готово
`

const invadersCSV = `Тема,Ключ проблемы,Пользовательское поле (Релизный спринт),Статус
META-1 Login page,MT-1,Спринт 3,Done
Export broken META-2,MT-2,Спринт 5,In Progress
Cleanup,PART-7,Спринт 10,Open
META-4 search,MT-4,Спринт 5,Done
`

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// testConfig は一時ディレクトリに入出力ファイルを置いた設定を返します
func testConfig(t *testing.T, a, b string) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.LedgerACSV = writeFile(t, dir, "Mos.csv", []byte(a))
	cfg.LedgerBCSV = writeFile(t, dir, "Invaders.csv", []byte(b))
	cfg.HTMLReport = filepath.Join(dir, "report.html")
	cfg.ExcelReport = filepath.Join(dir, "comparison_report.xlsx")
	cfg.SummaryYAML = filepath.Join(dir, "summary.yaml")
	return cfg
}
