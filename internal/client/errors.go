package client

import "errors"

var (
	ErrPushIncomplete = errors.New("push finished with failures")
	ErrForceSync      = errors.New("force sync failed")
	ErrInvalidLimit   = errors.New("limit must not be negative")
)
