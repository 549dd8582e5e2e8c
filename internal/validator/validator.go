package validator

import (
	"errors"
	"regexp"
	"strings"

	"accountsvc/internal/models"
)

var (
	ErrInvalidAccountNumber = errors.New("invalid account number")
	ErrInvalidClientID      = errors.New("invalid client id")
	ErrInvalidAccountType   = errors.New("account type must be SAVINGS or CHECKING")
	ErrInvalidAccountStatus = errors.New("status must be ACTIVE or INACTIVE")
	ErrInvalidMovementKind  = errors.New("movement kind must be DEBIT or CREDIT")
)

var (
	accountNumberRegex = regexp.MustCompile(`^[0-9A-Za-z-]{1,34}$`)
	clientIDRegex      = regexp.MustCompile(`^[0-9A-Za-z_.-]{1,64}$`)
)

func ValidateAccountNumber(accountNumber string) error {
	if !accountNumberRegex.MatchString(accountNumber) {
		return ErrInvalidAccountNumber
	}
	return nil
}

func ValidateClientID(clientID string) error {
	if !clientIDRegex.MatchString(strings.TrimSpace(clientID)) {
		return ErrInvalidClientID
	}
	return nil
}

func ValidateAccountType(accountType models.AccountType) error {
	switch accountType {
	case models.AccountTypeSavings, models.AccountTypeChecking:
		return nil
	}
	return ErrInvalidAccountType
}

func ValidateAccountStatus(status models.AccountStatus) error {
	switch status {
	case models.AccountStatusActive, models.AccountStatusInactive:
		return nil
	}
	return ErrInvalidAccountStatus
}

func ValidateMovementKind(kind models.MovementKind) error {
	switch kind {
	case models.MovementDebit, models.MovementCredit:
		return nil
	}
	return ErrInvalidMovementKind
}
