package services

import (
	"errors"
	"strings"

	"github.com/terraincognita07/cycletrack/internal/models"
)

var (
	ErrExportFromDateInvalid = errors.New("export invalid from date")
	ErrExportToDateInvalid   = errors.New("export invalid to date")
	ErrExportRangeInvalid    = errors.New("export invalid range")
)

// ExportRange bounds an export inclusively; nil ends are open.
type ExportRange struct {
	From *models.Day
	To   *models.Day
}

func ParseExportRange(rawFrom string, rawTo string) (ExportRange, error) {
	var exportRange ExportRange

	if fromRaw := strings.TrimSpace(rawFrom); fromRaw != "" {
		from, err := models.ParseDay(fromRaw)
		if err != nil {
			return ExportRange{}, ErrExportFromDateInvalid
		}
		exportRange.From = &from
	}
	if toRaw := strings.TrimSpace(rawTo); toRaw != "" {
		to, err := models.ParseDay(toRaw)
		if err != nil {
			return ExportRange{}, ErrExportToDateInvalid
		}
		exportRange.To = &to
	}

	if exportRange.From != nil && exportRange.To != nil && exportRange.To.Before(exportRange.From.Time) {
		return ExportRange{}, ErrExportRangeInvalid
	}
	return exportRange, nil
}

func (exportRange ExportRange) Contains(day models.Day) bool {
	if exportRange.From != nil && day.Before(exportRange.From.Time) {
		return false
	}
	if exportRange.To != nil && day.After(exportRange.To.Time) {
		return false
	}
	return true
}
