package repository

import "errors"

// ErrNoSnapshot is returned when no network has been imported yet
var ErrNoSnapshot = errors.New("no network snapshot found")
