package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ledgercompare/config"
	"ledgercompare/links"
	"ledgercompare/models"
	"ledgercompare/reconcile"
	"ledgercompare/report"
	"ledgercompare/utils"
)

// ComparisonService は2つの台帳の読み込み・照合・レポート出力を処理します
type ComparisonService struct {
	config  *config.Config
	csvProc *CSVProcessor
	links   *links.Builder
	now     func() time.Time
}

// NewComparisonService は新しい照合サービスを作成します
func NewComparisonService(cfg *config.Config, csvProc *CSVProcessor) *ComparisonService {
	return &ComparisonService{
		config:  cfg,
		csvProc: csvProc,
		links:   links.NewBuilder(cfg),
		now:     time.Now,
	}
}

// Result は1回の照合の結果です
type Result struct {
	RunID       string
	GeneratedAt time.Time
	LedgerA     models.Ledger
	LedgerB     models.Ledger
	MappingA    ColumnMapping
	MappingB    ColumnMapping
	Matches     reconcile.MatchSet
	Buckets     models.Buckets
}

// View はレポート出力用のViewを返します
func (r *Result) View() report.View {
	return report.NewView(r.RunID, r.GeneratedAt, r.LedgerA, r.LedgerB, r.Matches, r.Buckets)
}

// RunOptions はレポート出力の指定です
type RunOptions struct {
	HTMLOnly  bool
	ExcelOnly bool
	// 集計表の出力先 (nilの場合は出力しない)
	SummaryOut io.Writer
}

// LoadLedgers は2つのCSVを並行して読み込みます
func (s *ComparisonService) LoadLedgers(ctx context.Context) (*Result, error) {
	res := &Result{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		res.LedgerA, res.MappingA, err = s.readLedger(ctx, models.SystemA)
		return err
	})
	g.Go(func() error {
		var err error
		res.LedgerB, res.MappingB, err = s.readLedger(ctx, models.SystemB)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !hasSprint(res.LedgerB) && res.LedgerB.Len() > 0 {
		utils.LogWarn("%s のスプリント情報が見つかりません。全行が '%s' になります", res.LedgerB.Name, models.NoSprint)
	}
	return res, nil
}

func (s *ComparisonService) readLedger(ctx context.Context, system models.System) (models.Ledger, ColumnMapping, error) {
	if err := ctx.Err(); err != nil {
		return models.Ledger{}, ColumnMapping{}, err
	}

	name := s.config.Profile(system == models.SystemA).Name
	ledger, mapping, err := s.csvProc.ReadLedger(system)
	if err != nil {
		return models.Ledger{}, ColumnMapping{}, fmt.Errorf("%s CSV読み込みエラー: %w", name, err)
	}
	return ledger, mapping, nil
}

// Compare は台帳を読み込み、照合と分類を行います
func (s *ComparisonService) Compare(ctx context.Context) (*Result, error) {
	startTime := time.Now()
	defer utils.TrackTime(startTime, "照合")

	res, err := s.LoadLedgers(ctx)
	if err != nil {
		return nil, err
	}
	res.RunID = uuid.NewString()
	res.GeneratedAt = s.now()

	utils.LogInfo("照合を開始します: %s %d 行, %s %d 行", res.LedgerA.Name, res.LedgerA.Len(), res.LedgerB.Name, res.LedgerB.Len())

	res.Matches = reconcile.Match(res.LedgerA, res.LedgerB)
	for _, w := range res.Matches.Warnings {
		utils.LogWarn("キー %s が %s の複数行にあります (行 %v)。行 %d を使用します", w.Key, res.LedgerB.Name, w.Rows, w.Kept)
	}

	profileB := s.config.Profile(false)
	categorizer := reconcile.NewCategorizer(reconcile.NewKeyGrammar(profileB.Prefixes...), s.links.URL)
	res.Buckets = categorizer.Categorize(res.LedgerA, res.LedgerB, res.Matches)
	if res.Buckets.Empty() {
		utils.LogWarn("照合対象の行がありません。CSVの内容を確認してください")
	}

	logStats(res)
	return res, nil
}

// RunComparison は照合を実行し、設定されたレポートを出力します
func (s *ComparisonService) RunComparison(ctx context.Context, opts RunOptions) (*Result, error) {
	res, err := s.Compare(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.WriteReports(res, opts); err != nil {
		return res, err
	}
	return res, nil
}

// WriteReports は結果をHTML・Excel・YAMLに出力します
func (s *ComparisonService) WriteReports(res *Result, opts RunOptions) error {
	view := res.View()

	if !opts.ExcelOnly {
		if err := report.NewHTMLRenderer().WriteFile(s.config.HTMLReport, view); err != nil {
			return fmt.Errorf("HTMLレポート出力エラー: %w", err)
		}
		utils.LogInfo("HTMLレポートを保存しました: %s", s.config.HTMLReport)
	}

	if !opts.HTMLOnly {
		if err := report.NewExcelExporter().Export(s.config.ExcelReport, view); err != nil {
			return fmt.Errorf("Excelレポート出力エラー: %w", err)
		}
		utils.LogInfo("Excelレポートを保存しました: %s", s.config.ExcelReport)
	}

	if s.config.SummaryYAML != "" {
		if err := report.WriteSummaryYAMLFile(s.config.SummaryYAML, view); err != nil {
			return fmt.Errorf("YAML出力エラー: %w", err)
		}
		utils.LogInfo("集計YAMLを保存しました: %s", s.config.SummaryYAML)
	}

	if opts.SummaryOut != nil {
		return report.WriteSummaryTable(opts.SummaryOut, view)
	}
	return nil
}

func hasSprint(l models.Ledger) bool {
	for _, row := range l.Rows {
		if reconcile.CanonicalSprint(row.RawSprint()) != models.NoSprint {
			return true
		}
	}
	return false
}

func logStats(res *Result) {
	s := reconcile.Summarize(res.Buckets)
	utils.Logger().Info().
		Str("run_id", res.RunID).
		Int("same_sprint", s.SameSprint).
		Int("cross_sprint", s.CrossSprint).
		Int("a_only", s.AOnly).
		Int("b_only", s.BOnly).
		Float64("match_rate", s.MatchRate).
		Int("defects", s.Defects.Total).
		Msg("照合が完了しました")
}
