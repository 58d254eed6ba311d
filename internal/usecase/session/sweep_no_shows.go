package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/mentorbase/mentor-scheduler/internal/audit"
	domain "github.com/mentorbase/mentor-scheduler/internal/domain/session"
	"github.com/mentorbase/mentor-scheduler/internal/idempotency"
	"github.com/mentorbase/mentor-scheduler/internal/logger"
	"github.com/mentorbase/mentor-scheduler/internal/payments"
	"github.com/mentorbase/mentor-scheduler/internal/timezone"
)

// SweepNoShows is the timeout default for sessions nobody joined: once a
// confirmed session's join window has fully elapsed with no attendance
// signal, it is marked a mentee no-show. Mentor absence carries a payout
// and is therefore only ever asserted by the call layer's explicit
// signal, never inferred from silence.
//
// The engine owns no timers; an external scheduler invokes this.
type SweepNoShows struct {
	repo    domain.Repository
	gateway payments.Gateway
	idem    idempotency.Store
	audit   *audit.Dispatcher
}

func NewSweepNoShows(
	repo domain.Repository,
	gateway payments.Gateway,
	idem idempotency.Store,
	auditDisp *audit.Dispatcher,
) *SweepNoShows {
	return &SweepNoShows{
		repo:    repo,
		gateway: gateway,
		idem:    idem,
		audit:   auditDisp,
	}
}

// Execute returns how many sessions were swept.
func (uc *SweepNoShows) Execute(ctx context.Context) (int, error) {
	now := timezone.Now()
	cutoff := now.Add(-domain.NoShowGrace)

	overdue, err := uc.repo.ListOverdueConfirmed(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	swept := 0
	for i := range overdue {
		sess := &overdue[i]

		outcome, err := domain.MarkNoShow(sess, domain.PartyMentee, now)
		if err != nil {
			logger.Get().Warn("no-show sweep skipped session",
				zap.String("session_id", sess.ID.String()),
				zap.Error(err),
			)
			continue
		}

		if err := uc.repo.UpdateSession(ctx, sess); err != nil {
			return swept, err
		}

		// zero outcome for a mentee no-show; emitRefund skips it
		if err := emitRefund(ctx, uc.gateway, uc.idem, sess, domain.EventNoShow, outcome); err != nil {
			return swept, err
		}

		uc.audit.Dispatch(audit.Event{
			Action:   "session_no_show_swept",
			Entity:   "session",
			EntityID: sess.ID.String(),
		})
		swept++
	}

	return swept, nil
}
