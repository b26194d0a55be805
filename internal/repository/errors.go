package repository

import "errors"

// ErrNotFound is returned by update/delete operations whose target row
// no longer exists.
var ErrNotFound = errors.New("not found")
