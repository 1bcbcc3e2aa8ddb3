package source

import "errors"

// ErrTooLarge is returned for files over the configured size limit.
var ErrTooLarge = errors.New("file too large")
