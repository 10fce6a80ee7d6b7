package core

import "errors"

// ErrNoRecords is reported when a user has nothing logged to export, display or clear.
var ErrNoRecords = errors.New("no logged interactions")
