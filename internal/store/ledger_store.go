package store

import (
	"context"
	"strconv"

	"accountsvc/internal/db"
	"accountsvc/internal/models"

	"github.com/jmoiron/sqlx"
)

// LedgerStore owns the one write that touches both tables: the balance update
// and the movement row commit or roll back together.
type LedgerStore struct {
	txRunner db.TxRunner
	audit    *AuditStore
}

func NewLedgerStore(txRunner db.TxRunner, audit *AuditStore) *LedgerStore {
	return &LedgerStore{txRunner: txRunner, audit: audit}
}

// AppendMovement stores account.Balance and account.UpdatedAt, guarded by
// account.Version, and inserts movement. It returns the movement with its id.
func (s *LedgerStore) AppendMovement(ctx context.Context, account models.Account, movement models.Movement) (models.Movement, error) {
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		id, err := s.appendInTx(ctx, tx, account, movement)
		if err != nil {
			return err
		}
		movement.ID = id
		return nil
	})
	if err != nil {
		return models.Movement{}, err
	}
	return movement, nil
}

func (s *LedgerStore) appendInTx(ctx context.Context, tx Tx, account models.Account, movement models.Movement) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET balance = $1, updated_at = $2, version = version + 1
		WHERE account_number = $3 AND version = $4
	`, account.Balance, account.UpdatedAt, account.AccountNumber, account.Version)
	if err != nil {
		return 0, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, ErrVersionConflict
	}
	var id int64
	err = tx.GetContext(ctx, &id, `
		INSERT INTO movements (account_number, kind, requested_value, signed_value, resulting_balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, movement.AccountNumber, movement.Kind, movement.RequestedValue, movement.SignedValue,
		movement.ResultingBalance, movement.Timestamp)
	if err != nil {
		return 0, err
	}
	if err := s.audit.Log(ctx, tx, "movement.create", "movement", strconv.FormatInt(id, 10), map[string]string{
		"account_number":    movement.AccountNumber,
		"kind":              string(movement.Kind),
		"signed_value":      movement.SignedValue.StringFixed(2),
		"resulting_balance": movement.ResultingBalance.StringFixed(2),
	}); err != nil {
		return 0, err
	}
	return id, nil
}
