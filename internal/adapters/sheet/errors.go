package sheet

import "errors"

// Sentinel kinds for import and export errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrOpen              = errors.New("open roster file failed")
	ErrRead              = errors.New("read roster file failed")
	ErrWrite             = errors.New("write roster file failed")
)
