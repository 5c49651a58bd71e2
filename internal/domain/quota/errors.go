package quota

import "errors"

var (
	ErrQuotaNotFound  = errors.New("Quota record not found")
	ErrUnknownCounter = errors.New("Unknown quota counter")
)
