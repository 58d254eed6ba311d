package session

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mentorbase/mentor-scheduler/internal/domain/session"
)

func newNoShowHarness() (*MarkNoShow, *fakeRepo, *fakeGateway, *fakeIdem) {
	repo := newFakeRepo(testProfile("60", false), allWeekRules())
	gw := &fakeGateway{}
	idem := newFakeIdem()
	return NewMarkNoShow(repo, gw, idem, nil), repo, gw, idem
}

// The refund leg never exceeds the captured payment; the 10% payout
// travels separately through the compensation path.
func TestMarkNoShowMentorSplitsRefundAndCompensation(t *testing.T) {
	uc, repo, gw, _ := newNoShowHarness()
	sess := seedConfirmed(t, repo, -2*time.Hour)

	out, err := uc.Execute(context.Background(), sess.ID, domain.PartyMentor)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShowMentor), out.Status)

	require.Len(t, gw.refunds, 1)
	assert.True(t, gw.refunds[0].Amount.Equal(decimal.RequireFromString("69")),
		"refund = %s", gw.refunds[0].Amount)

	require.Len(t, gw.compensations, 1)
	assert.True(t, gw.compensations[0].Amount.Equal(decimal.RequireFromString("6.9")),
		"compensation = %s", gw.compensations[0].Amount)
}

func TestMarkNoShowMenteePaysNothing(t *testing.T) {
	uc, repo, gw, _ := newNoShowHarness()
	sess := seedConfirmed(t, repo, -2*time.Hour)

	out, err := uc.Execute(context.Background(), sess.ID, domain.PartyMentee)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShowMentee), out.Status)

	assert.Empty(t, gw.refunds)
	assert.Empty(t, gw.compensations)
}

// Each settlement leg is claimed independently; a replayed verdict emits
// neither twice.
func TestMarkNoShowSettlesAtMostOnce(t *testing.T) {
	uc, repo, gw, _ := newNoShowHarness()
	sess := seedConfirmed(t, repo, -2*time.Hour)

	_, err := uc.Execute(context.Background(), sess.ID, domain.PartyMentor)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), sess.ID, domain.PartyMentor)
	var transErr domain.InvalidTransitionError
	require.ErrorAs(t, err, &transErr)

	assert.Len(t, gw.refunds, 1)
	assert.Len(t, gw.compensations, 1)
}
