package events

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"accountsvc/internal/models"

	"github.com/shopspring/decimal"
)

func TestNewMovementRecorded(t *testing.T) {
	ts := time.Date(2024, 2, 10, 9, 30, 0, 0, time.UTC)
	event := NewMovementRecorded(models.Movement{
		ID:               42,
		AccountNumber:    "478758",
		Kind:             models.MovementDebit,
		SignedValue:      decimal.RequireFromString("-575.00"),
		ResultingBalance: decimal.RequireFromString("1425.00"),
		Timestamp:        ts,
	})
	if event.EventID == "" || event.MovementID != 42 || event.Kind != "DEBIT" {
		t.Fatalf("unexpected event: %#v", event)
	}
	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{`"event_id"`, `"movement_id":42`, `"account_number":"478758"`, `"signed_value":"-575"`, `"occurred_at"`} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("payload %s missing %s", data, key)
		}
	}
}
