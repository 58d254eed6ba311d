package payments

import (
	"context"

	"go.uber.org/zap"
)

// LogGateway records intents without moving money. Used when no gateway
// credentials are configured (local development, tests).
type LogGateway struct {
	log *zap.Logger
}

func NewLogGateway(log *zap.Logger) *LogGateway {
	return &LogGateway{log: log}
}

func (g *LogGateway) HoldPayment(_ context.Context, in Intent) (string, error) {
	g.log.Info("payment intent (dry run)",
		zap.String("session_id", in.SessionID.String()),
		zap.String("amount", in.Amount.String()),
		zap.String("currency", in.Currency),
	)
	return "dryrun-" + in.SessionID.String(), nil
}

func (g *LogGateway) EmitRefund(_ context.Context, in Intent) error {
	g.log.Info("refund intent (dry run)",
		zap.String("session_id", in.SessionID.String()),
		zap.String("amount", in.Amount.String()),
		zap.String("currency", in.Currency),
	)
	return nil
}

func (g *LogGateway) PayCompensation(_ context.Context, in Intent) error {
	g.log.Info("compensation intent (dry run)",
		zap.String("session_id", in.SessionID.String()),
		zap.String("amount", in.Amount.String()),
		zap.String("currency", in.Currency),
	)
	return nil
}

var _ Gateway = (*LogGateway)(nil)
