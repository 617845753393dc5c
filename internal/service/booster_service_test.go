package service

import (
	"testing"

	"rankboost/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyCreatesPendingProfile(t *testing.T) {
	profiles := newFakeBoosterStore()
	svc := NewBoosterService(profiles, &fakeNotifier{})

	p, err := svc.Apply(5, "radiant last three acts", "en,de")
	require.NoError(t, err)
	assert.Equal(t, domain.BoosterStatusPending, p.VerificationStatus)

	_, err = svc.Apply(5, "again", "en")
	assert.ErrorIs(t, err, ErrApplicationExists)
}

func TestApproveNotifiesApplicant(t *testing.T) {
	profiles := newFakeBoosterStore()
	notif := &fakeNotifier{}
	svc := NewBoosterService(profiles, notif)

	p, err := svc.Apply(5, "bio", "en")
	require.NoError(t, err)

	approved, err := svc.Approve(p.ID, 99)
	require.NoError(t, err)
	assert.Equal(t, domain.BoosterStatusVerified, approved.VerificationStatus)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, uint(99), *approved.ReviewedBy)

	require.Len(t, notif.sent, 1)
	assert.Equal(t, uint(5), notif.sent[0].UserID)
	assert.Equal(t, "BOOSTER_APPROVED", notif.sent[0].Type)
}

func TestRejectedApplicantMayReapply(t *testing.T) {
	profiles := newFakeBoosterStore()
	svc := NewBoosterService(profiles, &fakeNotifier{})

	p, err := svc.Apply(5, "bio", "en")
	require.NoError(t, err)
	_, err = svc.Reject(p.ID, 99, "not enough history")
	require.NoError(t, err)

	again, err := svc.Apply(5, "more history now", "en")
	require.NoError(t, err)
	assert.Equal(t, domain.BoosterStatusPending, again.VerificationStatus)
	assert.Equal(t, "more history now", again.Bio)
	assert.Nil(t, again.ReviewedBy)
}

func TestApproveSurvivesNotifierFailure(t *testing.T) {
	profiles := newFakeBoosterStore()
	svc := NewBoosterService(profiles, failingNotifier{})

	p, err := svc.Apply(5, "bio", "en")
	require.NoError(t, err)

	approved, err := svc.Approve(p.ID, 99)
	require.NoError(t, err)
	assert.Equal(t, domain.BoosterStatusVerified, approved.VerificationStatus)

	_, err = svc.Reject(p.ID, 99, "re-check")
	assert.NoError(t, err)
}

func TestListPending(t *testing.T) {
	profiles := newFakeBoosterStore()
	svc := NewBoosterService(profiles, &fakeNotifier{})

	p1, err := svc.Apply(5, "a", "en")
	require.NoError(t, err)
	_, err = svc.Apply(6, "b", "en")
	require.NoError(t, err)
	_, err = svc.Approve(p1.ID, 99)
	require.NoError(t, err)

	pending, err := svc.ListPending(50, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, uint(6), pending[0].UserID)
}
