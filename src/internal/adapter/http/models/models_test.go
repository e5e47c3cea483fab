package models

import (
	"net/url"
	"testing"

	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWithdrawalRequest_Validate(t *testing.T) {
	err := CreateWithdrawalRequest{Sum: decimal.Zero}.Validate()
	require.Error(t, err)
	assert.Equal(t, "sum must be greater than zero; accountHolder is required; bankName is required; accountNumber is required", err.Error())

	err = CreateWithdrawalRequest{
		Sum:           decimal.RequireFromString("10"),
		AccountHolder: "Kim",
		BankName:      "KB",
		AccountNumber: "123",
	}.Validate()
	assert.NoError(t, err)
}

func TestCreateAccountRequest_NormalisesRoles(t *testing.T) {
	req := CreateAccountRequest{Phone: "010", Roles: []string{" interpreter", "Client"}}
	require.NoError(t, req.Validate())
	assert.Equal(t, []domain.Role{domain.RoleInterpreter, domain.RoleClient}, req.ToDomain().Roles)

	assert.Error(t, CreateAccountRequest{Phone: "010", Roles: []string{"guest"}}.Validate())
}

func TestUpdateCallRequest_ToPatch(t *testing.T) {
	status := "ended"
	patch := UpdateCallRequest{CallStatus: &status}.ToPatch()
	require.NotNil(t, patch.Status)
	assert.Equal(t, domain.CallStatusEnded, *patch.Status)
	assert.Nil(t, patch.Sum)

	bad := "HUNG_UP"
	assert.Error(t, UpdateCallRequest{CallStatus: &bad}.Validate())
}

func TestParseTransactionFilter(t *testing.T) {
	filter, err := ParseTransactionFilter(url.Values{
		"type":   {"call_payment"},
		"from":   {"2025-01-01T00:00:00Z"},
		"limit":  {"20"},
		"offset": {"40"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionTypeCallPayment, filter.Type)
	require.NotNil(t, filter.From)
	assert.Equal(t, 2025, filter.From.Year())
	assert.Nil(t, filter.To)
	assert.Equal(t, 20, filter.Limit)
	assert.Equal(t, 40, filter.Offset)

	_, err = ParseTransactionFilter(url.Values{"limit": {"-5"}, "to": {"yesterday"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "to must be an RFC3339 timestamp")
	assert.Contains(t, err.Error(), "limit must be a non-negative integer")
}

func TestValidate_RejectsSubCentAmounts(t *testing.T) {
	subCent := decimal.RequireFromString("0.005")
	tests := []struct {
		name  string
		err   error
		field string
	}{
		{"create call sum", CreateCallRequest{CallerUserID: "c-1", Sum: subCent}.Validate(), "sum"},
		{"create call commission", CreateCallRequest{CallerUserID: "c-1", Sum: decimal.NewFromInt(1), Commission: &subCent}.Validate(), "commission"},
		{"update call sum", UpdateCallRequest{Sum: &subCent}.Validate(), "sum"},
		{"update call commission", UpdateCallRequest{Commission: &subCent}.Validate(), "commission"},
		{"withdrawal", CreateWithdrawalRequest{Sum: subCent, AccountHolder: "Kim", BankName: "KB", AccountNumber: "1"}.Validate(), "sum"},
		{"deposit", CreateDepositRequest{Sum: subCent, AccountHolder: "Kim"}.Validate(), "sum"},
		{"debt or refund", AmountRequest{Amount: subCent}.Validate(), "amount"},
		{"adjustment", AdjustBalanceRequest{Balance: subCent, Note: "fix"}.Validate(), "balance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.Equal(t, tt.field+" must have at most 2 decimal places", tt.err.Error())
		})
	}
}
