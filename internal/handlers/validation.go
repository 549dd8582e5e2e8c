package handlers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"accountsvc/internal/money"

	"github.com/shopspring/decimal"
)

var (
	errInvalidAmount = errors.New("invalid amount")
	errInvalidDate   = errors.New("invalid date, expected RFC 3339, 2006-01-02T15:04:05 or 2006-01-02")
)

const (
	localDateTime = "2006-01-02T15:04:05"
	dateOnly      = "2006-01-02"
)

// parseAmount accepts the value as a JSON string or number.
func parseAmount(raw json.Number) (decimal.Decimal, error) {
	value, err := money.Parse(raw.String())
	if err != nil {
		return decimal.Zero, errInvalidAmount
	}
	return value, nil
}

// parseBound reads one end of a date range. A bare date covers the whole day,
// so as an upper bound it resolves to the last instant of that day.
func parseBound(raw string, upper bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errInvalidDate
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts.UTC(), nil
	}
	if ts, err := time.Parse(localDateTime, raw); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse(dateOnly, raw); err == nil {
		if upper {
			return ts.Add(24*time.Hour - time.Nanosecond), nil
		}
		return ts, nil
	}
	return time.Time{}, errInvalidDate
}

func parseRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := parseBound(startRaw, false)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseBound(endRaw, true)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
