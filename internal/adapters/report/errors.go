package report

import "errors"

// ErrWrite is returned when the rendered report cannot be written out.
var ErrWrite = errors.New("write report failed")
