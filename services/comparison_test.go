package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ledgercompare/apperrors"
	"ledgercompare/models"
)

func newTestService(t *testing.T, a, b string) *ComparisonService {
	t.Helper()

	cfg := testConfig(t, a, b)
	svc := NewComparisonService(cfg, NewCSVProcessor(cfg))
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestCompare(t *testing.T) {
	svc := newTestService(t, mosCSV, invadersCSV)

	res, err := svc.Compare(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 4, res.LedgerA.Len())
	assert.Equal(t, 4, res.LedgerB.Len())

	b := res.Buckets
	require.Len(t, b.Match, 2)
	require.Len(t, b.CrossSprint, 1)
	require.Len(t, b.AOnly, 1)
	require.Len(t, b.BOnly, 1)
	assert.Equal(t, res.LedgerA.Len()+res.LedgerB.Len(), b.RowSlots())

	cross := b.CrossSprint[0]
	assert.Equal(t, "META-2", cross.A.Key)
	assert.Equal(t, "Sprint 4", cross.A.Sprint)
	assert.Equal(t, "Sprint 5", cross.B.Sprint)
	assert.True(t, cross.IsDefect)
	assert.Equal(t, "https://itpm.mos.ru/browse/META-2", cross.A.URL)
	assert.Equal(t, "https://jira.theinvaders.ru/browse/MT-2", cross.B.URL)

	assert.Equal(t, "META-3", b.AOnly[0].Key)
	assert.Equal(t, models.NoSprint, b.AOnly[0].Sprint)
	assert.Equal(t, "PART-7", b.BOnly[0].Key)
	assert.Equal(t, "Sprint 10", b.BOnly[0].Sprint)
}

func TestCompareIsRepeatable(t *testing.T) {
	svc := newTestService(t, mosCSV, invadersCSV)

	first, err := svc.Compare(context.Background())
	require.NoError(t, err)
	second, err := svc.Compare(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Buckets, second.Buckets)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestCompareDuplicateKeyWarning(t *testing.T) {
	b := invadersCSV + "Duplicate,MT-4,Спринт 6,Open\n"
	svc := newTestService(t, mosCSV, b)

	res, err := svc.Compare(context.Background())

	require.NoError(t, err)
	require.Len(t, res.Matches.Warnings, 1)
	assert.Equal(t, "MT-4", res.Matches.Warnings[0].Key)
	assert.Equal(t, []int{3, 4}, res.Matches.Warnings[0].Rows)
}

func TestCompareHeaderOnlyFiles(t *testing.T) {
	svc := newTestService(t, "Тема,Ключ проблемы\n", "Тема,Ключ проблемы\n")

	res, err := svc.Compare(context.Background())

	require.NoError(t, err)
	assert.True(t, res.Buckets.Empty())
	assert.Empty(t, res.Matches.Pairs)
}

func TestLoadLedgersMissingFile(t *testing.T) {
	svc := newTestService(t, mosCSV, invadersCSV)
	svc.config.LedgerBCSV = filepath.Join(t.TempDir(), "missing.csv")

	_, err := svc.LoadLedgers(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invaders")
	var fileErr *apperrors.FileError
	assert.True(t, errors.As(err, &fileErr))
}

func TestLoadLedgersCanceled(t *testing.T) {
	svc := newTestService(t, mosCSV, invadersCSV)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.LoadLedgers(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadLedgersWithoutSprintColumn(t *testing.T) {
	b := "Тема,Ключ проблемы\nCleanup,PART-7\n"
	svc := newTestService(t, mosCSV, b)

	res, err := svc.LoadLedgers(context.Background())

	require.NoError(t, err)
	assert.False(t, hasSprint(res.LedgerB))
	assert.True(t, hasSprint(res.LedgerA))
}

func TestRunComparison(t *testing.T) {
	svc := newTestService(t, mosCSV, invadersCSV)
	out := &bytes.Buffer{}

	_, err := svc.RunComparison(context.Background(), RunOptions{SummaryOut: out})

	require.NoError(t, err)

	html, err := os.ReadFile(svc.config.HTMLReport)
	require.NoError(t, err)
	assert.Contains(t, string(html), "DIT vs Invaders")

	f, err := excelize.OpenFile(svc.config.ExcelReport)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Cross sprint")

	yamlData, err := os.ReadFile(svc.config.SummaryYAML)
	require.NoError(t, err)
	assert.Contains(t, string(yamlData), "same_sprint: 2")

	assert.Contains(t, out.String(), "Different sprints")
}

func TestRunComparisonHTMLOnly(t *testing.T) {
	svc := newTestService(t, mosCSV, invadersCSV)
	svc.config.SummaryYAML = ""

	_, err := svc.RunComparison(context.Background(), RunOptions{HTMLOnly: true})

	require.NoError(t, err)
	assert.FileExists(t, svc.config.HTMLReport)
	assert.NoFileExists(t, svc.config.ExcelReport)
}

func TestRunComparisonExcelOnly(t *testing.T) {
	svc := newTestService(t, mosCSV, invadersCSV)

	_, err := svc.RunComparison(context.Background(), RunOptions{ExcelOnly: true})

	require.NoError(t, err)
	assert.NoFileExists(t, svc.config.HTMLReport)
	assert.FileExists(t, svc.config.ExcelReport)
}
