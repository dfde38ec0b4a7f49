package revenue

// Mode selects which invoices an aggregation counts.
type Mode int

const (
	// Realized counts shipped invoices with a successful payment.
	Realized Mode = iota
	// Potential counts packaged invoices with a successful payment, the
	// revenue they would yield once shipped.
	Potential
)

// Status returns the invoice status the mode requires.
func (m Mode) Status() InvoiceStatus {
	if m == Potential {
		return StatusPackaged
	}
	return StatusShipped
}

func (m Mode) String() string {
	if m == Potential {
		return "potential"
	}
	return "realized"
}

// Eligible reports whether an invoice contributes revenue under the given
// mode: its status must match the mode and at least one of its transactions
// must have succeeded. A mix of failed and successful transactions still
// qualifies.
func Eligible(inv Invoice, mode Mode) bool {
	if inv.Status != mode.Status() {
		return false
	}
	for _, txn := range inv.Transactions {
		if txn.Result == ResultSuccess {
			return true
		}
	}
	return false
}
