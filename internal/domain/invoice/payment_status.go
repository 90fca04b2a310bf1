package invoice

import "github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"

// PaymentStatus tracks how much of an invoice has been settled
type PaymentStatus string

const (
	PaymentStatusDue     PaymentStatus = "due"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// IsValid checks if the status is known
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusDue, PaymentStatusPartial, PaymentStatusPaid, PaymentStatusOverdue:
		return true
	}
	return false
}

// IsTerminal reports whether no further status change is possible
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusPaid
}

// CanTransitionTo checks a manual status change. A paid invoice never moves
// back to due, partial or overdue.
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	if !target.IsValid() {
		return false
	}
	if s == PaymentStatusPaid {
		return target == PaymentStatusPaid
	}
	return true
}

// String returns the string representation
func (s PaymentStatus) String() string {
	return string(s)
}

func errStatusRegression(from, to PaymentStatus) error {
	return shared.NewDomainError(shared.CodeStatusRegression,
		"Cannot change payment status from "+string(from)+" to "+string(to))
}
