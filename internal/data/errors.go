package data

import "errors"

// ErrEmptyKey is returned by the session key-value repositories when a caller passes an empty key.
var ErrEmptyKey = errors.New("key cannot be empty")
