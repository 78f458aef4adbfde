package services

import (
	"testing"

	"finanmind/internal/testutil"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		amount  string
		wantErr bool
	}{
		{"0.01", false},
		{"10.5", false},
		{"10.50", false},
		{"999999999999.99", false},
		{"0", true},
		{"-5", true},
		{"0.001", true},
		{"10.005", true},
		{"1e12", true},
		{"1000000000000.00", true},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			err := validateAmount(dec(tt.amount))
			if !tt.wantErr {
				testutil.AssertNoError(t, err)
				return
			}
			testutil.AssertAppError(t, err, "INVALID_AMOUNT")
		})
	}
}
