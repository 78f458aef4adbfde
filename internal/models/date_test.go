package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSON(t *testing.T) {
	d := DateOf(2024, time.March, 15)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-03-15"` {
		t.Errorf("expected \"2024-03-15\", got %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("expected %s, got %s", d, back)
	}

	if err := json.Unmarshal([]byte(`"15/03/2024"`), &back); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestDateOfNormalizesDayZero(t *testing.T) {
	if got := DateOf(2024, time.March, 0).String(); got != "2024-02-29" {
		t.Errorf("expected leap day, got %s", got)
	}
	if got := DateOf(2023, time.March, 0).String(); got != "2023-02-28" {
		t.Errorf("expected 2023-02-28, got %s", got)
	}
}

func TestNewDateDropsTimeAndZone(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	d := NewDate(time.Date(2024, 3, 15, 22, 30, 0, 0, loc))
	if d.String() != "2024-03-15" {
		t.Errorf("expected 2024-03-15, got %s", d)
	}
	if d.Location() != time.UTC || d.Hour() != 0 {
		t.Errorf("expected UTC midnight, got %v", d.Time)
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	for _, v := range []interface{}{
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		"2024-01-02",
		[]byte("2024-01-02 00:00:00+00:00"),
	} {
		if err := d.Scan(v); err != nil {
			t.Fatalf("scan %v: %v", v, err)
		}
		if d.String() != "2024-01-02" {
			t.Errorf("scan %v: got %s", v, d)
		}
	}
	if err := d.Scan(42); err == nil {
		t.Error("expected error scanning an int")
	}
}

func TestTransactionTypeIsValid(t *testing.T) {
	for _, tt := range []TransactionType{TransactionTypeIncome, TransactionTypeExpense, TransactionTypeInvestment} {
		if !tt.IsValid() {
			t.Errorf("expected %s to be valid", tt)
		}
	}
	if TransactionType("transfer").IsValid() {
		t.Error("transfer is not a supported type")
	}
}
