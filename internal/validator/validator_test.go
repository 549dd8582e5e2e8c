package validator

import (
	"testing"

	"accountsvc/internal/models"
)

func TestValidateAccountNumber(t *testing.T) {
	if err := ValidateAccountNumber("1234567890"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "  ", "12 34", "1234567890123456789012345678901234567"} {
		if err := ValidateAccountNumber(bad); err != ErrInvalidAccountNumber {
			t.Fatalf("expected ErrInvalidAccountNumber for %q, got %v", bad, err)
		}
	}
}

func TestValidateClientID(t *testing.T) {
	if err := ValidateClientID("CLI001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateClientID("   "); err != ErrInvalidClientID {
		t.Fatalf("expected ErrInvalidClientID, got %v", err)
	}
}

func TestValidateEnums(t *testing.T) {
	if err := ValidateAccountType(models.AccountTypeChecking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateAccountType("AHORROS"); err != ErrInvalidAccountType {
		t.Fatalf("expected ErrInvalidAccountType, got %v", err)
	}
	if err := ValidateAccountStatus(models.AccountStatusInactive); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateAccountStatus("active"); err != ErrInvalidAccountStatus {
		t.Fatalf("expected ErrInvalidAccountStatus, got %v", err)
	}
	if err := ValidateMovementKind(models.MovementDebit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateMovementKind("WITHDRAWAL"); err != ErrInvalidMovementKind {
		t.Fatalf("expected ErrInvalidMovementKind, got %v", err)
	}
}
