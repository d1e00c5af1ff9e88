package common

import "errors"

// Every registry failure is caller-correctable input validation. A failed
// call must leave all stores exactly as they were before the call began.
var (
	ErrUnauthorized        = errors.New("caller lacks the required role or ownership")
	ErrSeriesNotFound      = errors.New("series not found")
	ErrTokenNotFound       = errors.New("token not found")
	ErrSeriesExists        = errors.New("series id already exists")
	ErrDuplicateToken      = errors.New("token id already exists")
	ErrInvalidRoyalty      = errors.New("royalty shares exceed 10000 basis points")
	ErrInsufficientDeposit = errors.New("attached deposit below series price")
	ErrTransferNotAllowed  = errors.New("transfer destination not allow-listed")
)
