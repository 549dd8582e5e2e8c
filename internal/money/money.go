package money

import (
	"errors"
	"strings"

	"accountsvc/internal/models"

	"github.com/shopspring/decimal"
)

const Scale = 2

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrTooManyDecimals = errors.New("amount has too many decimal places")
)

// Parse accepts an optionally signed plain decimal such as "-30", "150.5" or
// "+12.00". Exponent notation is rejected.
func Parse(input string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	body := strings.TrimLeft(trimmed, "+-")
	if len(trimmed)-len(body) > 1 || body == "" || strings.ContainsAny(body, "eE") {
		return decimal.Zero, ErrInvalidAmount
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if err := CheckScale(value); err != nil {
		return decimal.Zero, err
	}
	return value, nil
}

func CheckScale(value decimal.Decimal) error {
	if !value.Equal(value.Truncate(Scale)) {
		return ErrTooManyDecimals
	}
	return nil
}

func Format(value decimal.Decimal) string {
	return value.StringFixed(Scale)
}

// Signed derives the direction of a movement from its kind alone; the sign the
// caller supplied is discarded.
func Signed(kind models.MovementKind, value decimal.Decimal) decimal.Decimal {
	if kind == models.MovementDebit {
		return value.Abs().Neg()
	}
	return value.Abs()
}
