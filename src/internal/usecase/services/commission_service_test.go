package services_test

import (
	"testing"

	"github.com/morago/interpreter-ledger/src/internal/usecase/services"
	"github.com/stretchr/testify/assert"
)

func TestCommissionService_Commission(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		sum     string
		want    string
	}{
		{name: "ten percent", percent: 10, sum: "100.00", want: "10.00"},
		{name: "rounds half up", percent: 15, sum: "0.10", want: "0.02"},
		{name: "zero sum", percent: 10, sum: "0", want: "0"},
		{name: "zero percent", percent: 0, sum: "80.00", want: "0"},
		{name: "capped at sum", percent: 150, sum: "20.00", want: "20.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.NewCommissionService(tt.percent).Commission(dec(tt.sum))
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}
