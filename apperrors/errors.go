// Package apperrors はアプリケーション共通のエラー型です。
// 照合エンジン自体はエラーを返さないため、ここで扱うのは
// 入出力・設定・レポート生成の失敗だけです。
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData はCSVにヘッダー行がないなど、処理するデータがないことを表します
	ErrNoData = errors.New("no data")

	// ErrInvalidConfig は設定値が不正であることを表します
	ErrInvalidConfig = errors.New("invalid config")
)

// FileError はファイル操作の失敗です
type FileError struct {
	Path string
	Op   string // "open", "read", "decode", "write" など
	Err  error
}

// Error implements the error interface
func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError は新しいFileErrorを作成します
func NewFileError(op, path string, err error) *FileError {
	return &FileError{Path: path, Op: op, Err: err}
}

// ConfigError は設定の検証エラーです
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config %s: %s", e.Field, e.Message)
	}
	return "config: " + e.Message
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError は新しいConfigErrorを作成します
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// ReportError はレポート出力の失敗です
type ReportError struct {
	Format string // "html", "xlsx", "yaml"
	Err    error
}

// Error implements the error interface
func (e *ReportError) Error() string {
	return fmt.Sprintf("%s report: %v", e.Format, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError は新しいReportErrorを作成します
func NewReportError(format string, err error) *ReportError {
	return &ReportError{Format: format, Err: err}
}
