package services

import (
	"errors"
	"fmt"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrMovementNotFound  = errors.New("movement not found")
	ErrClientNotFound    = errors.New("client not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrAccountExists     = errors.New("account already exists")
	ErrClientNotEligible = errors.New("client not eligible")
	ErrAccountNotActive  = errors.New("account is not active")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSystem            = errors.New("internal error")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func systemError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrSystem, op, err)
}
