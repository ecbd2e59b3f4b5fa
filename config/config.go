package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"ledgercompare/apperrors"
)

// ConfigFileEnv は設定ファイルのパスを指定する環境変数です
const ConfigFileEnv = "LEDGERCOMPARE_CONFIG"

// Config はアプリケーション全体の設定を保持します
type Config struct {
	// 入力ファイル
	LedgerACSV string `mapstructure:"ledger_a_csv"`
	LedgerBCSV string `mapstructure:"ledger_b_csv"`

	// 出力ファイル
	HTMLReport  string `mapstructure:"html_report"`
	ExcelReport string `mapstructure:"excel_report"`
	SummaryYAML string `mapstructure:"summary_yaml"` // 空の場合は出力しない

	Systems Systems `mapstructure:"systems"`

	// ログ設定
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Systems は2つのシステムのプロファイルです
type Systems struct {
	A SystemProfile `mapstructure:"a"`
	B SystemProfile `mapstructure:"b"`
}

// SystemProfile は1システム分の設定です
type SystemProfile struct {
	Name          string        `mapstructure:"name"`
	BaseURL       string        `mapstructure:"base_url"`
	Prefixes      []string      `mapstructure:"prefixes"`
	DefaultPrefix string        `mapstructure:"default_prefix"` // URL生成で接頭辞がない場合に使う
	Columns       ColumnAliases `mapstructure:"columns"`
}

// ColumnAliases は論理フィールドごとの列探索ルールです
type ColumnAliases struct {
	Title  FieldRule `mapstructure:"title"`
	Key    FieldRule `mapstructure:"key"`
	Sprint FieldRule `mapstructure:"sprint"`
	Status FieldRule `mapstructure:"status"`
}

// FieldRule は列の探索ルールです。完全一致 → 部分一致 → 内容の順に試します
type FieldRule struct {
	Exact         []string `mapstructure:"exact"`
	Fuzzy         []string `mapstructure:"fuzzy"`
	Content       []string `mapstructure:"content"`
	SampleColumns int      `mapstructure:"sample_columns"` // 0 の場合は全列
	SampleRows    int      `mapstructure:"sample_rows"`
}

// LoadConfig は .env、環境変数、設定ファイルから設定を読み込みます。
// configFile が空の場合は LEDGERCOMPARE_CONFIG、それもなければ
// カレントディレクトリの ledgercompare.yaml を探します (なくても構いません)。
func LoadConfig(configFile string) (*Config, error) {
	// .envファイルを読み込む
	_ = godotenv.Load()

	if configFile == "" {
		configFile = os.Getenv(ConfigFileEnv)
	}

	v := viper.New()
	setDefaults(v, Default())

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("ledgercompare")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("設定ファイル読み込みエラー: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("設定の解析エラー: %w", err)
	}

	cfg.Systems.A.BaseURL = ensureTrailingSlash(cfg.Systems.A.BaseURL)
	cfg.Systems.B.BaseURL = ensureTrailingSlash(cfg.Systems.B.BaseURL)

	return cfg, nil
}

// Validate は設定値を検証します
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LedgerACSV) == "" {
		return apperrors.NewConfigError("ledger_a_csv", "入力ファイルが指定されていません")
	}
	if strings.TrimSpace(c.LedgerBCSV) == "" {
		return apperrors.NewConfigError("ledger_b_csv", "入力ファイルが指定されていません")
	}
	if len(nonBlank(c.Systems.A.Prefixes)) == 0 {
		return apperrors.NewConfigError("systems.a.prefixes", "キー接頭辞が1つもありません")
	}
	if len(nonBlank(c.Systems.B.Prefixes)) == 0 {
		return apperrors.NewConfigError("systems.b.prefixes", "キー接頭辞が1つもありません")
	}
	return nil
}

// Profile はシステムのプロファイルを返します
func (c *Config) Profile(a bool) SystemProfile {
	if a {
		return c.Systems.A
	}
	return c.Systems.B
}

// ベースURLの末尾に "/" を付ける
func ensureTrailingSlash(url string) string {
	url = strings.TrimSpace(url)
	if url == "" || strings.HasSuffix(url, "/") {
		return url
	}
	return url + "/"
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
