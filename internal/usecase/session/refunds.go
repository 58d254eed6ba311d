package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/mentorbase/mentor-scheduler/internal/domain/session"
	"github.com/mentorbase/mentor-scheduler/internal/idempotency"
	"github.com/mentorbase/mentor-scheduler/internal/logger"
	"github.com/mentorbase/mentor-scheduler/internal/models"
	"github.com/mentorbase/mentor-scheduler/internal/payments"
)

// refundTTL bounds how long a claimed settlement key blocks a retry
// after a crash mid-emission.
const refundTTL = 24 * time.Hour

// emitRefund settles what a terminal transition owes the mentee: the
// refund leg, which never exceeds the captured payment, and separately
// any compensation, which goes through the gateway's payout path. Each
// leg is at-most-once per session+event via the idempotency store.
// Free sessions and zero outcomes emit nothing.
func emitRefund(
	ctx context.Context,
	gateway payments.Gateway,
	idem idempotency.Store,
	sess *models.Session,
	event domain.Event,
	out domain.RefundOutcome,
) error {

	if sess.PaymentRef == "" {
		return nil
	}

	if out.Refund.IsPositive() {
		key := idempotency.TransitionKey(sess.ID, string(event))
		claimed, err := idem.Begin(ctx, key, refundTTL)
		if err != nil {
			return err
		}
		if claimed {
			if err := gateway.EmitRefund(ctx, payments.Intent{
				SessionID: sess.ID,
				Amount:    out.Refund,
				Currency:  sess.Currency,
				Reference: sess.PaymentRef,
			}); err != nil {
				idem.Release(ctx, key)
				return err
			}
		} else {
			logger.Get().Info("refund already emitted, skipping",
				zap.String("session_id", sess.ID.String()),
				zap.String("event", string(event)),
			)
		}
	}

	if out.Compensation.IsPositive() {
		key := idempotency.TransitionKey(sess.ID, string(event)+"_compensation")
		claimed, err := idem.Begin(ctx, key, refundTTL)
		if err != nil {
			return err
		}
		if claimed {
			if err := gateway.PayCompensation(ctx, payments.Intent{
				SessionID: sess.ID,
				Amount:    out.Compensation,
				Currency:  sess.Currency,
				Reference: sess.PaymentRef,
			}); err != nil {
				idem.Release(ctx, key)
				return err
			}
		} else {
			logger.Get().Info("compensation already emitted, skipping",
				zap.String("session_id", sess.ID.String()),
				zap.String("event", string(event)),
			)
		}
	}

	return nil
}
