package repository

import "errors"

// ErrStaleStatus is returned by conditional status updates when the row no
// longer holds the status the caller read.
var ErrStaleStatus = errors.New("status changed concurrently")
