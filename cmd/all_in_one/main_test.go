package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ledgerACSV = "Тема,Ключ проблемы,Компоненты,Статус\nLogin page,META-1,Спринт 3,Готово\nReports,META-3,,Открыт\n"
	ledgerBCSV = "Тема,Ключ проблемы,Релизный спринт,Статус\nMETA-1 Login page,MT-1,Спринт 4,Done\n"
)

func setupDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte(ledgerACSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte(ledgerBCSV), 0o644))
	return dir
}

func TestRootCmd(t *testing.T) {
	dir := setupDir(t)
	out := &bytes.Buffer{}

	cmd := newRootCmd(out)
	cmd.SetArgs([]string{"--a", "a.csv", "--b", "b.csv", "--summary-yaml", "summary.yaml", "--log-format", "json"})
	err := cmd.ExecuteContext(context.Background())

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "report.html"))
	assert.FileExists(t, filepath.Join(dir, "comparison_report.xlsx"))
	assert.FileExists(t, filepath.Join(dir, "summary.yaml"))
	assert.Contains(t, out.String(), "Different sprints")
}

func TestRootCmdHTMLOnlyNoTable(t *testing.T) {
	dir := setupDir(t)
	out := &bytes.Buffer{}

	cmd := newRootCmd(out)
	cmd.SetArgs([]string{"--a", "a.csv", "--b", "b.csv", "--html", "board.html", "--html-only", "--no-table"})
	err := cmd.ExecuteContext(context.Background())

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "board.html"))
	assert.NoFileExists(t, filepath.Join(dir, "comparison_report.xlsx"))
	assert.Empty(t, out.String())
}

func TestRootCmdExclusiveFlags(t *testing.T) {
	setupDir(t)

	cmd := newRootCmd(&bytes.Buffer{})
	cmd.SetArgs([]string{"--html-only", "--excel-only"})
	err := cmd.ExecuteContext(context.Background())

	assert.Error(t, err)
}

func TestRootCmdMissingInput(t *testing.T) {
	setupDir(t)

	cmd := newRootCmd(&bytes.Buffer{})
	cmd.SetArgs([]string{"--a", "missing.csv", "--b", "b.csv"})
	err := cmd.ExecuteContext(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.csv")
}

func TestRootCmdConfigFile(t *testing.T) {
	dir := setupDir(t)
	yaml := "ledger_a_csv: a.csv\nledger_b_csv: b.csv\nhtml_report: from_config.html\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.yaml"), []byte(yaml), 0o644))

	cmd := newRootCmd(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", "custom.yaml", "--html-only"})
	err := cmd.ExecuteContext(context.Background())

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "from_config.html"))
}
