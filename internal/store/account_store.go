package store

import (
	"context"

	"accountsvc/internal/db"
	"accountsvc/internal/models"

	"github.com/jmoiron/sqlx"
)

const accountColumns = `account_number, account_type, balance, status, owner_client_id, version, created_at, updated_at`

type AccountStore struct {
	db       DB
	txRunner db.TxRunner
	audit    *AuditStore
}

func NewAccountStore(database DB, txRunner db.TxRunner, audit *AuditStore) *AccountStore {
	return &AccountStore{db: database, txRunner: txRunner, audit: audit}
}

func (s *AccountStore) Get(ctx context.Context, accountNumber string) (models.Account, error) {
	var row models.Account
	err := s.db.GetContext(ctx, &row, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE account_number = $1
	`, accountNumber)
	if err != nil {
		return models.Account{}, notFound(err)
	}
	return row, nil
}

func (s *AccountStore) List(ctx context.Context) ([]models.Account, error) {
	var rows []models.Account
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+accountColumns+`
		FROM accounts
		ORDER BY created_at, account_number
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *AccountStore) ListByClient(ctx context.Context, clientID string) ([]models.Account, error) {
	var rows []models.Account
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE owner_client_id = $1
		ORDER BY created_at, account_number
	`, clientID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *AccountStore) Create(ctx context.Context, account models.Account) (models.Account, error) {
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.createInTx(ctx, tx, account)
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return models.Account{}, ErrConflict
		}
		return models.Account{}, err
	}
	return account, nil
}

func (s *AccountStore) createInTx(ctx context.Context, tx Execer, account models.Account) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, account.AccountNumber, account.AccountType, account.Balance, account.Status,
		account.OwnerClientID, account.Version, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		return err
	}
	return s.audit.Log(ctx, tx, "account.create", "account", account.AccountNumber, map[string]string{
		"owner_client_id": account.OwnerClientID,
		"balance":         account.Balance.StringFixed(2),
	})
}

// Update writes type, balance and status if the stored version still matches
// account.Version. The returned account carries the new version.
func (s *AccountStore) Update(ctx context.Context, account models.Account) (models.Account, error) {
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.updateInTx(ctx, tx, account)
	})
	if err != nil {
		return models.Account{}, err
	}
	account.Version++
	return account, nil
}

func (s *AccountStore) updateInTx(ctx context.Context, tx Execer, account models.Account) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET account_type = $1, balance = $2, status = $3, updated_at = $4, version = version + 1
		WHERE account_number = $5 AND version = $6
	`, account.AccountType, account.Balance, account.Status, account.UpdatedAt, account.AccountNumber, account.Version)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrVersionConflict
	}
	return s.audit.Log(ctx, tx, "account.update", "account", account.AccountNumber, map[string]string{
		"account_type": string(account.AccountType),
		"status":       string(account.Status),
		"balance":      account.Balance.StringFixed(2),
	})
}

// Delete removes the account; movements go with it through ON DELETE CASCADE.
func (s *AccountStore) Delete(ctx context.Context, accountNumber string) error {
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.deleteInTx(ctx, tx, accountNumber)
	})
}

func (s *AccountStore) deleteInTx(ctx context.Context, tx Execer, accountNumber string) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE account_number = $1`, accountNumber)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return s.audit.Log(ctx, tx, "account.delete", "account", accountNumber, nil)
}
