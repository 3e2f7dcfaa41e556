package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDataFormat      = errors.New("invalid dataset format")
	ErrUnsupportedFile = errors.New("unsupported dataset file type")
	ErrEmptyWorksheet  = errors.New("worksheet is empty")
	ErrUnknownSource   = errors.New("unknown dataset source")
)

// DataFormatError reports an input dataset that cannot be interpreted: either required
// columns are absent or a cell holds a value of the wrong kind.
type DataFormatError struct {
	Dataset string
	Missing []string
	Row     int
	Column  string
	Value   string
}

func (e *DataFormatError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s dataset is missing required columns: %s", e.Dataset, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%s dataset row %d: invalid %s value %q", e.Dataset, e.Row, e.Column, e.Value)
}

func (e *DataFormatError) Is(target error) bool {
	return target == ErrDataFormat
}
