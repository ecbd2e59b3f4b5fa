package apperrors

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileErrorUnwrap(t *testing.T) {
	err := NewFileError("open", "Mos.csv", fs.ErrNotExist)

	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, "open Mos.csv: file does not exist", err.Error())
}

func TestConfigErrorIs(t *testing.T) {
	err := NewConfigError("ledger_a_csv", "must not be empty")

	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, "config ledger_a_csv: must not be empty", err.Error())
	assert.Equal(t, "config: bad", NewConfigError("", "bad").Error())
}

func TestReportErrorAs(t *testing.T) {
	var wrapped error = NewReportError("xlsx", errors.New("disk full"))

	var re *ReportError
	assert.True(t, errors.As(wrapped, &re))
	assert.Equal(t, "xlsx", re.Format)
	assert.Equal(t, "xlsx report: disk full", wrapped.Error())
}
