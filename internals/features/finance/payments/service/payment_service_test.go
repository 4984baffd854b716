package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/constants"
	feeModel "schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/payments/model"
	helper "schoolku_backend/internals/helpers"
)

func TestComputeSituation(t *testing.T) {
	tuition := feeModel.FeeModel{FeeID: uuid.New(), FeeName: "Scolarité", FeeAmount: 300}
	uniform := feeModel.FeeModel{FeeID: uuid.New(), FeeName: "Uniforme", FeeAmount: 50}

	payments := []model.PaymentModel{
		{PaymentFeeID: &tuition.FeeID, PaymentAmount: 100, PaymentStatus: constants.PaymentPaid},
		{PaymentFeeID: &tuition.FeeID, PaymentAmount: 100, PaymentStatus: constants.PaymentPending},
		{PaymentFeeID: &uniform.FeeID, PaymentAmount: 80, PaymentStatus: constants.PaymentPaid},
		{PaymentAmount: 20, PaymentStatus: constants.PaymentPaid},
		{PaymentAmount: 999, PaymentStatus: constants.PaymentFailed},
	}
	s := ComputeSituation([]feeModel.FeeModel{tuition, uniform}, payments)

	require.Len(t, s.Lines, 2)
	assert.Equal(t, 100.0, s.Lines[0].Paid)
	assert.Equal(t, 200.0, s.Lines[0].Remaining)
	assert.False(t, s.Lines[0].Settled())
	assert.Equal(t, 0.0, s.Lines[1].Remaining, "trop-perçu tidak negatif")
	assert.True(t, s.Lines[1].Settled())

	assert.Equal(t, 350.0, s.TotalDue)
	assert.Equal(t, 200.0, s.TotalPaid)
	assert.Equal(t, 20.0, s.Unassigned)
	assert.Equal(t, 150.0, s.Balance)

	b := s.Balances()
	require.Len(t, b, 2)
	assert.Equal(t, "Scolarité", b[0].Name)
	assert.Nil(t, b[0].DueDate)
}

func TestComputeSituationEmpty(t *testing.T) {
	s := ComputeSituation(nil, nil)
	assert.Zero(t, s.TotalDue)
	assert.Zero(t, s.Balance)
	assert.Empty(t, s.Lines)
}

func TestMapTransactionStatus(t *testing.T) {
	cases := []struct {
		status, fraud, want string
	}{
		{"settlement", "", constants.PaymentPaid},
		{"capture", "accept", constants.PaymentPaid},
		{"capture", "challenge", constants.PaymentPending},
		{"pending", "", constants.PaymentPending},
		{"expire", "", constants.PaymentFailed},
		{"deny", "", constants.PaymentFailed},
		{"refund", "", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MapTransactionStatus(tc.status, tc.fraud), tc.status+"/"+tc.fraud)
	}
}

func TestVerifySignature(t *testing.T) {
	g := &MidtransGateway{serverKey: "SB-secret"}
	sig := SignatureFor("PAY-1", "200", "150000.00", "SB-secret")
	assert.Len(t, sig, 128)
	assert.True(t, g.VerifySignature("PAY-1", "200", "150000.00", sig))
	assert.False(t, g.VerifySignature("PAY-1", "200", "150001.00", sig))
}

func TestGatewayFromConfigDisabled(t *testing.T) {
	assert.Nil(t, GatewayFromConfig("", false))
	assert.NotNil(t, GatewayFromConfig("SB-key", false))
}

func TestNewOrderID(t *testing.T) {
	id := NewOrderID("ecl-2024-0001", mustTime(t))
	assert.Contains(t, id, "PAY-ECL-2024-0001-")
	assert.NotEqual(t, id, NewOrderID("ecl-2024-0001", mustTime(t)))
}

func mustTime(t *testing.T) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, "2024-10-01T08:00:00Z")
	require.NoError(t, err)
	return ts
}

func TestHandleNotificationRejectsBadInput(t *testing.T) {
	ctx := context.Background()

	err := HandleNotification(ctx, nil, nil, []byte("{"))
	_, ok := helper.IsValidationError(err)
	assert.True(t, ok)

	err = HandleNotification(ctx, nil, nil, []byte(`{"order_id":"PAY-1"}`))
	_, ok = helper.IsValidationError(err)
	assert.True(t, ok, "transaction_status wajib")

	g := &MidtransGateway{serverKey: "SB-secret"}
	body := []byte(`{"order_id":"PAY-1","transaction_status":"settlement","status_code":"200","gross_amount":"10.00","signature_key":"bad"}`)
	err = HandleNotification(ctx, nil, g, body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Signature")
}
