package service

import (
	"context"
	"errors"

	"github.com/okian/roster/internal/adapters/plot"
	"github.com/okian/roster/internal/adapters/report"
	"github.com/okian/roster/internal/adapters/sheet"
	"github.com/okian/roster/internal/domain/analyzer"
)

// Error kinds used as metric labels and in user-facing messages.
const (
	KindSchema            = "schema"
	KindEmptyDataset      = "empty_dataset"
	KindInvalidRange      = "invalid_range"
	KindUnsupportedFormat = "unsupported_format"
	KindOpen              = "open"
	KindRead              = "read"
	KindWrite             = "write"
	KindNoData            = "no_data"
	KindCanceled          = "canceled"
	KindInternal          = "internal"
)

// ErrorKind classifies err into one of the Kind constants.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, analyzer.ErrSchema):
		return KindSchema
	case errors.Is(err, analyzer.ErrEmptyDataset):
		return KindEmptyDataset
	case errors.Is(err, analyzer.ErrInvalidRange):
		return KindInvalidRange
	case errors.Is(err, sheet.ErrUnsupportedFormat):
		return KindUnsupportedFormat
	case errors.Is(err, sheet.ErrOpen):
		return KindOpen
	case errors.Is(err, sheet.ErrRead):
		return KindRead
	case errors.Is(err, sheet.ErrWrite), errors.Is(err, report.ErrWrite), errors.Is(err, ErrCreateFile):
		return KindWrite
	case errors.Is(err, plot.ErrNoData):
		return KindNoData
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindInternal
	}
}

// ErrCreateFile is returned when an output file cannot be created.
var ErrCreateFile = errors.New("create output file failed")
