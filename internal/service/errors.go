package service

import "errors"

// ErrInvalidTask wraps validation failures of a task about to be saved.
var ErrInvalidTask = errors.New("invalid task")
