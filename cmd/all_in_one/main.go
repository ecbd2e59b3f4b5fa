package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ledgercompare/config"
	"ledgercompare/services"
	"ledgercompare/utils"
)

// version はビルド時に -ldflags で設定されます
var version = "dev"

type options struct {
	configFile  string
	ledgerA     string
	ledgerB     string
	htmlReport  string
	excelReport string
	summaryYAML string
	htmlOnly    bool
	excelOnly   bool
	noTable     bool
	logLevel    string
	logFormat   string
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		utils.LogError("照合処理に失敗しました: %v", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "ledgercompare",
		Short: "2つのタスク台帳CSVを照合してレポートを出力します",
		Long: `2つのトラッキングシステムから出力したCSVを照合し、
同じスプリント / 別スプリント / 片方のみ に分類してHTMLとExcelのレポートを出力します。

設定は ledgercompare.yaml、環境変数 (例: LEDGER_A_CSV)、.env から読み込みます。`,
		Example: `  # デフォルトのファイル (Mos.csv, Invaders.csv) を照合
  ledgercompare

  # 入力ファイルを指定してHTMLのみ出力
  ledgercompare --a export_a.csv --b export_b.csv --html-only

  # 集計をYAMLにも保存
  ledgercompare --summary-yaml summary.yaml`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, cmd.Flags().Changed, out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configFile, "config", "", "設定ファイル (デフォルト: ./ledgercompare.yaml)")
	f.StringVar(&opts.ledgerA, "a", "", "システムAのCSVファイル")
	f.StringVar(&opts.ledgerB, "b", "", "システムBのCSVファイル")
	f.StringVar(&opts.htmlReport, "html", "", "HTMLレポートの出力先")
	f.StringVar(&opts.excelReport, "excel", "", "Excelレポートの出力先")
	f.StringVar(&opts.summaryYAML, "summary-yaml", "", "集計YAMLの出力先")
	f.BoolVar(&opts.htmlOnly, "html-only", false, "HTMLレポートのみを出力する")
	f.BoolVar(&opts.excelOnly, "excel-only", false, "Excelレポートのみを出力する")
	f.BoolVar(&opts.noTable, "no-table", false, "端末に集計表を出力しない")
	f.StringVar(&opts.logLevel, "log-level", "", "ログレベル (debug, info, warn, error)")
	f.StringVar(&opts.logFormat, "log-format", "", "ログ形式 (auto, console, json)")
	cmd.MarkFlagsMutuallyExclusive("html-only", "excel-only")

	return cmd
}

func run(ctx context.Context, opts *options, changed func(string) bool, out io.Writer) error {
	startTime := time.Now()

	cfg, err := loadConfig(opts, changed)
	if err != nil {
		return err
	}

	utils.LogInfo("台帳照合ツール (%s)", version)
	utils.LogInfo("入力: %s (%s), %s (%s)", cfg.LedgerACSV, cfg.Systems.A.Name, cfg.LedgerBCSV, cfg.Systems.B.Name)

	csvProc := services.NewCSVProcessor(cfg)
	comparisonService := services.NewComparisonService(cfg, csvProc)

	runOpts := services.RunOptions{
		HTMLOnly:  opts.htmlOnly,
		ExcelOnly: opts.excelOnly,
	}
	if !opts.noTable {
		runOpts.SummaryOut = out
	}

	if _, err := comparisonService.RunComparison(ctx, runOpts); err != nil {
		return err
	}

	utils.LogInfo("照合処理が完了しました。合計実行時間: %s", time.Since(startTime))
	return nil
}

// loadConfig は設定を読み込み、指定されたフラグで上書きします
func loadConfig(opts *options, changed func(string) bool) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return nil, err
	}

	overrides := []struct {
		flag  string
		value string
		dst   *string
	}{
		{"a", opts.ledgerA, &cfg.LedgerACSV},
		{"b", opts.ledgerB, &cfg.LedgerBCSV},
		{"html", opts.htmlReport, &cfg.HTMLReport},
		{"excel", opts.excelReport, &cfg.ExcelReport},
		{"summary-yaml", opts.summaryYAML, &cfg.SummaryYAML},
		{"log-level", opts.logLevel, &cfg.LogLevel},
		{"log-format", opts.logFormat, &cfg.LogFormat},
	}
	for _, o := range overrides {
		if changed(o.flag) {
			*o.dst = o.value
		}
	}

	utils.Configure(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定が不正です: %w", err)
	}
	return cfg, nil
}
