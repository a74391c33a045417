package service

import (
	"errors"
	"fmt"
)

// Custom errors
var (
	ErrQuestionNotFound   = errors.New("question not found")
	ErrAnswerNotFound     = errors.New("answer not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ledgerErr marks a persistence failure in one of the vote ledgers. It is
// propagated as-is; retrying is the caller's (or the store's) business.
func ledgerErr(err error) error {
	return fmt.Errorf("vote ledger unavailable: %w", err)
}
