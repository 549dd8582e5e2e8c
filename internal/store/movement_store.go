package store

import (
	"context"
	"time"

	"accountsvc/internal/models"
)

const movementColumns = `id, account_number, kind, requested_value, signed_value, resulting_balance, created_at`

type MovementStore struct {
	db DB
}

func NewMovementStore(db DB) *MovementStore {
	return &MovementStore{db: db}
}

func (s *MovementStore) Get(ctx context.Context, id int64) (models.Movement, error) {
	var row models.Movement
	err := s.db.GetContext(ctx, &row, `
		SELECT `+movementColumns+`
		FROM movements
		WHERE id = $1
	`, id)
	if err != nil {
		return models.Movement{}, notFound(err)
	}
	return row, nil
}

func (s *MovementStore) List(ctx context.Context) ([]models.Movement, error) {
	var rows []models.Movement
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+movementColumns+`
		FROM movements
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *MovementStore) ListByAccount(ctx context.Context, accountNumber string) ([]models.Movement, error) {
	var rows []models.Movement
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+movementColumns+`
		FROM movements
		WHERE account_number = $1
		ORDER BY id
	`, accountNumber)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByDateRange is inclusive on both bounds.
func (s *MovementStore) ListByDateRange(ctx context.Context, start, end time.Time) ([]models.Movement, error) {
	var rows []models.Movement
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+movementColumns+`
		FROM movements
		WHERE created_at BETWEEN $1 AND $2
		ORDER BY id
	`, start, end)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
