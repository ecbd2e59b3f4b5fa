package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ledgercompare/config"
	"ledgercompare/models"
	"ledgercompare/report"
	"ledgercompare/services"
	"ledgercompare/utils"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		utils.LogError("列の確認に失敗しました: %v", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "column_check",
		Short: "CSVのどの列がタイトル・キー・スプリント・ステータスとして使われるかを表示します",
		Long: `照合を実行する前に、2つのCSVの列の対応を確認します。
列が見つからない場合は設定ファイルの systems.<a|b>.columns を調整してください。`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return err
			}
			utils.Configure(cfg.LogLevel, cfg.LogFormat)

			utils.LogInfo("CSV列確認ツール")
			return checkColumns(cfg, out)
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "設定ファイル (デフォルト: ./ledgercompare.yaml)")

	return cmd
}

func checkColumns(cfg *config.Config, out io.Writer) error {
	proc := services.NewCSVProcessor(cfg)
	missing := 0

	for _, system := range []models.System{models.SystemA, models.SystemB} {
		profile := cfg.Profile(system == models.SystemA)
		path := cfg.LedgerBCSV
		if system == models.SystemA {
			path = cfg.LedgerACSV
		}

		table, err := proc.ReadCSV(path)
		if err != nil {
			return fmt.Errorf("%s CSV読み込みエラー: %w", profile.Name, err)
		}
		mapping := services.NewColumnResolver(profile.Columns).Resolve(table.Headers, table.Records)

		fmt.Fprintf(out, "\n%s: %s (%s, %d 行)\n", profile.Name, path, table.Encoding, len(table.Records))
		t := report.Table{Headers: []string{"Field", "Column", "Method", "Sample"}}
		for _, f := range services.Fields {
			col := mapping.Column(f)
			if col == "" {
				missing++
			}
			t.Rows = append(t.Rows, []string{string(f), col, string(mapping.Methods[f]), sample(table, col)})
		}
		if err := report.WriteTable(out, t); err != nil {
			return err
		}
	}

	if missing > 0 {
		utils.LogWarn("見つからない列が %d 件あります", missing)
	} else {
		utils.LogInfo("すべての列が見つかりました")
	}
	return nil
}

// 最初の空でない値
func sample(table *services.CSVTable, column string) string {
	if column == "" {
		return ""
	}
	for _, rec := range table.Records {
		if v := rec[column]; v != "" {
			if r := []rune(v); len(r) > 40 {
				return string(r[:40]) + "..."
			}
			return v
		}
	}
	return ""
}
