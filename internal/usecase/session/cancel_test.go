package session

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mentorbase/mentor-scheduler/internal/domain/session"
	"github.com/mentorbase/mentor-scheduler/internal/idempotency"
	"github.com/mentorbase/mentor-scheduler/internal/models"
)

func seedConfirmed(t *testing.T, repo *fakeRepo, startIn time.Duration) *models.Session {
	t.Helper()

	sess := domain.New(mentorID, menteeID,
		time.Now().UTC().Add(startIn).Truncate(time.Minute),
		60,
		domain.CalculatePrice(decimal.RequireFromString("60"), 60, false),
		"EUR",
	)
	sess.Status = string(domain.StatusConfirmed)
	sess.PaymentRef = "pay-test"
	require.NoError(t, repo.CreateSession(context.Background(), sess))
	return sess
}

func newCancelHarness() (*CancelSession, *fakeRepo, *fakeGateway, *fakeIdem) {
	repo := newFakeRepo(testProfile("60", false), allWeekRules())
	gw := &fakeGateway{}
	idem := newFakeIdem()
	return NewCancelSession(repo, gw, idem, nil), repo, gw, idem
}

func TestCancelByMenteeFullRefund(t *testing.T) {
	uc, repo, gw, _ := newCancelHarness()
	sess := seedConfirmed(t, repo, 30*time.Hour)

	res, err := uc.Execute(context.Background(), sess.ID, menteeID, "")
	require.NoError(t, err)

	assert.Equal(t, domain.TierFull, res.Outcome.Tier)
	assert.True(t, res.Outcome.Refund.Equal(decimal.RequireFromString("69")))

	require.Len(t, gw.refunds, 1)
	assert.True(t, gw.refunds[0].Amount.Equal(decimal.RequireFromString("69")))
	assert.Equal(t, "pay-test", gw.refunds[0].Reference)

	stored, err := repo.GetSession(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelledByMentee), stored.Status)
	assert.Equal(t, string(domain.TierFull), stored.RefundTier)
}

func TestCancelByMenteePartialRefund(t *testing.T) {
	uc, repo, gw, _ := newCancelHarness()
	sess := seedConfirmed(t, repo, 10*time.Hour)

	res, err := uc.Execute(context.Background(), sess.ID, menteeID, "something came up at work")
	require.NoError(t, err)

	assert.Equal(t, domain.TierPartial50, res.Outcome.Tier)
	assert.True(t, res.Outcome.Refund.Equal(decimal.RequireFromString("34.5")),
		"refund = %s", res.Outcome.Refund)
	require.Len(t, gw.refunds, 1)
}

func TestCancelByMenteePartialRequiresReason(t *testing.T) {
	uc, repo, gw, _ := newCancelHarness()
	sess := seedConfirmed(t, repo, 10*time.Hour)

	_, err := uc.Execute(context.Background(), sess.ID, menteeID, "short")
	var reasonErr domain.ReasonRequiredError
	require.ErrorAs(t, err, &reasonErr)
	assert.Empty(t, gw.refunds)

	stored, err := repo.GetSession(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), stored.Status, "failed cancel leaves the session untouched")
}

func TestCancelByMenteeNoRefundTier(t *testing.T) {
	uc, repo, gw, _ := newCancelHarness()
	sess := seedConfirmed(t, repo, 90*time.Minute)

	res, err := uc.Execute(context.Background(), sess.ID, menteeID, "missed my train this morning")
	require.NoError(t, err)

	assert.Equal(t, domain.TierNone, res.Outcome.Tier)
	assert.True(t, res.Outcome.Refund.IsZero())
	assert.Empty(t, gw.refunds, "zero outcomes never reach the gateway")

	stored, err := repo.GetSession(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelledByMentee), stored.Status)
}

func TestCancelTwiceFails(t *testing.T) {
	uc, repo, gw, _ := newCancelHarness()
	sess := seedConfirmed(t, repo, 30*time.Hour)

	_, err := uc.Execute(context.Background(), sess.ID, menteeID, "")
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), sess.ID, menteeID, "")
	var transErr domain.InvalidTransitionError
	require.ErrorAs(t, err, &transErr)
	assert.Equal(t, domain.StatusCancelledByMentee, transErr.Current)

	assert.Len(t, gw.refunds, 1, "one refund total across both attempts")
}

func TestCancelByMentorAlwaysFull(t *testing.T) {
	uc, repo, gw, _ := newCancelHarness()
	sess := seedConfirmed(t, repo, 10*time.Minute)

	res, err := uc.Execute(context.Background(), sess.ID, mentorID, "family emergency, so sorry")
	require.NoError(t, err)

	assert.Equal(t, domain.TierFull, res.Outcome.Tier)
	assert.True(t, res.Outcome.Refund.Equal(decimal.RequireFromString("69")))
	assert.True(t, res.Outcome.Compensation.IsZero())
	require.Len(t, gw.refunds, 1)

	stored, err := repo.GetSession(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelledByMentor), stored.Status)
}

func TestCancelByStranger(t *testing.T) {
	uc, repo, gw, _ := newCancelHarness()
	sess := seedConfirmed(t, repo, 30*time.Hour)

	_, err := uc.Execute(context.Background(), sess.ID, uint(99), "")
	var authErr domain.UnauthorizedActorError
	require.ErrorAs(t, err, &authErr)
	assert.Empty(t, gw.refunds)
}

func TestCancelFreeSessionSkipsGateway(t *testing.T) {
	uc, repo, gw, _ := newCancelHarness()
	sess := seedConfirmed(t, repo, 30*time.Hour)
	sess.Price = decimal.Zero
	sess.PaymentRef = ""
	require.NoError(t, repo.UpdateSession(context.Background(), sess))

	res, err := uc.Execute(context.Background(), sess.ID, menteeID, "")
	require.NoError(t, err)

	assert.Equal(t, domain.TierFull, res.Outcome.Tier)
	assert.Empty(t, gw.refunds)
}

// A refund key claimed by an earlier attempt suppresses re-emission even
// when the transition itself goes through.
func TestCancelRefundAtMostOnce(t *testing.T) {
	uc, repo, gw, idem := newCancelHarness()
	sess := seedConfirmed(t, repo, 30*time.Hour)

	key := idempotency.TransitionKey(sess.ID, string(domain.EventCancel))
	claimed, err := idem.Begin(context.Background(), key, time.Hour)
	require.NoError(t, err)
	require.True(t, claimed)

	_, err = uc.Execute(context.Background(), sess.ID, menteeID, "")
	require.NoError(t, err)
	assert.Empty(t, gw.refunds)
}
