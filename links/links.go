// Package links はキーからトラッカーの閲覧用URLを組み立てます
package links

import (
	"regexp"
	"strings"

	"ledgercompare/config"
	"ledgercompare/models"
	"ledgercompare/reconcile"
)

// NoLink はURLを組み立てられない場合の値です
const NoLink = "#"

var digitsPattern = regexp.MustCompile(`\d+`)

type profile struct {
	baseURL       string
	defaultPrefix string
	grammar       reconcile.KeyGrammar
}

// Builder はシステムごとのURLビルダーです
type Builder struct {
	profiles map[models.System]profile
}

// NewBuilder は設定から新しいビルダーを作成します
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		profiles: map[models.System]profile{
			models.SystemA: newProfile(cfg.Systems.A),
			models.SystemB: newProfile(cfg.Systems.B),
		},
	}
}

func newProfile(p config.SystemProfile) profile {
	defaultPrefix := strings.ToUpper(strings.TrimSpace(p.DefaultPrefix))
	if defaultPrefix == "" && len(p.Prefixes) > 0 {
		defaultPrefix = strings.ToUpper(strings.TrimSpace(p.Prefixes[0]))
	}
	return profile{
		baseURL:       p.BaseURL,
		defaultPrefix: defaultPrefix,
		grammar:       reconcile.NewKeyGrammar(p.Prefixes...),
	}
}

// URL はキーの閲覧用URLを返します。
//   - 既知の接頭辞で始まるキーはそのまま
//   - 文字列のどこかに既知の接頭辞付きキーがあればそれを使う
//   - 数字だけ見つかればデフォルト接頭辞を付ける
//
// どれにも当てはまらない場合は "#" を返します。
func (b *Builder) URL(system models.System, key string) string {
	p, ok := b.profiles[system]
	if !ok || p.baseURL == "" {
		return NoLink
	}

	upper := strings.ToUpper(strings.TrimSpace(key))
	if upper == "" {
		return NoLink
	}

	if normalized, ok := p.grammar.Normalize(upper); ok {
		return p.baseURL + normalized
	}

	if num := digitsPattern.FindString(upper); num != "" && p.defaultPrefix != "" {
		return p.baseURL + p.defaultPrefix + num
	}

	return NoLink
}
