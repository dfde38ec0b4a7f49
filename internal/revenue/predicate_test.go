package revenue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func invoiceWith(status InvoiceStatus, results ...TransactionResult) Invoice {
	inv := Invoice{ID: 1, Status: status}
	for i, res := range results {
		inv.Transactions = append(inv.Transactions, Transaction{ID: int64(i + 1), InvoiceID: inv.ID, Result: res})
	}
	return inv
}

func TestEligibleRealized(t *testing.T) {
	cases := []struct {
		name string
		inv  Invoice
		want bool
	}{
		{"shipped with success", invoiceWith(StatusShipped, ResultSuccess), true},
		{"shipped with mixed results", invoiceWith(StatusShipped, ResultFailed, ResultSuccess), true},
		{"shipped with several successes", invoiceWith(StatusShipped, ResultSuccess, ResultSuccess), true},
		{"shipped with only failures", invoiceWith(StatusShipped, ResultFailed, ResultRefunded), false},
		{"shipped with no transactions", invoiceWith(StatusShipped), false},
		{"packaged with success", invoiceWith(StatusPackaged, ResultSuccess), false},
		{"returned with success", invoiceWith(StatusReturned, ResultSuccess), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Eligible(tc.inv, Realized))
		})
	}
}

func TestEligiblePotential(t *testing.T) {
	assert.True(t, Eligible(invoiceWith(StatusPackaged, ResultSuccess), Potential))
	assert.True(t, Eligible(invoiceWith(StatusPackaged, ResultFailed, ResultSuccess), Potential))
	assert.False(t, Eligible(invoiceWith(StatusPackaged, ResultFailed), Potential))
	assert.False(t, Eligible(invoiceWith(StatusShipped, ResultSuccess), Potential))
}

func TestModeStatus(t *testing.T) {
	assert.Equal(t, StatusShipped, Realized.Status())
	assert.Equal(t, StatusPackaged, Potential.Status())
	assert.Equal(t, "realized", Realized.String())
	assert.Equal(t, "potential", Potential.String())
}
