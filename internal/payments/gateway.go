package payments

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// The engine computes amounts and emits intents; actual money movement
// happens behind this interface.

type Intent struct {
	SessionID  uuid.UUID
	Amount     decimal.Decimal
	Currency   string
	Payer      string // mentee email, for the gateway's records
	Reference  string // gateway payment id, required for refunds
	Descriptor string
}

type Gateway interface {
	// HoldPayment places the charge for a new booking and returns the
	// gateway reference to store on the session.
	HoldPayment(ctx context.Context, in Intent) (string, error)

	// EmitRefund returns Amount of the held payment to the mentee.
	// Amount must never exceed the captured payment.
	EmitRefund(ctx context.Context, in Intent) error

	// PayCompensation pays the mentee an amount on top of any refund,
	// e.g. the mentor no-show payout. Separate from EmitRefund because
	// refunds cannot exceed the original payment.
	PayCompensation(ctx context.Context, in Intent) error
}
