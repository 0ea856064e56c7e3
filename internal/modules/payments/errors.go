package payments

import "errors"

var (
	ErrDuplicateTransaction = errors.New("transaction already recorded")
	ErrNotFound             = errors.New("payment notification not found")
)
