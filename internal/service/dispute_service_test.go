package service

import (
	"testing"

	"rankboost/internal/domain"
	"rankboost/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type disputeFixture struct {
	svc      *DisputeService
	disputes *fakeDisputeStore
	orders   *fakeOrderStore
	comms    *fakeCommissionStore
	notif    *fakeNotifier
	order    *models.Order
}

const (
	disputeClientID  = uint(1)
	disputeBoosterID = uint(7)
	disputeAdminID   = uint(99)
	strangerID       = uint(50)
)

func newDisputeFixture(t *testing.T) *disputeFixture {
	t.Helper()
	orders := newFakeOrderStore()
	disputes := newFakeDisputeStore()
	comms := newFakeCommissionStore(0.70, 0.30)
	notif := &fakeNotifier{}

	boosterID := disputeBoosterID
	o := &models.Order{
		ClientID:   disputeClientID,
		BoosterID:  &boosterID,
		GameMode:   "competitive",
		Status:     domain.OrderStatusInProgress,
		TotalCents: 10000,
	}
	require.NoError(t, orders.CreateIfNoActive(o))

	commission := NewCommissionService(comms, &fakeAdminLister{admins: []models.User{{ID: disputeAdminID}}}, orders, &fakePaymentStore{})
	finalizer := NewOrderService(orders, &fakePaymentStore{}, newFakeBoosterStore(), NewPricingService(&fakePricingStore{}), commission, notif, nil, 0)
	svc := NewDisputeService(disputes, orders, finalizer, notif)
	return &disputeFixture{svc: svc, disputes: disputes, orders: orders, comms: comms, notif: notif, order: o}
}

func TestOpenDisputeParksOrder(t *testing.T) {
	f := newDisputeFixture(t)

	d, err := f.svc.Open(f.order.ID, disputeClientID, false, "booster went offline for days")
	require.NoError(t, err)
	assert.Equal(t, domain.DisputeStatusOpen, d.Status)

	o, err := f.orders.GetByID(f.order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDisputed, o.Status)

	// Booster got notified, client (the actor) did not.
	require.Len(t, f.notif.sent, 1)
	assert.Equal(t, disputeBoosterID, f.notif.sent[0].UserID)
	assert.Equal(t, "DISPUTE_OPENED", f.notif.sent[0].Type)
}

func TestOpenDisputeAccess(t *testing.T) {
	f := newDisputeFixture(t)

	_, err := f.svc.Open(f.order.ID, strangerID, false, "not my order")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.Open(404, disputeClientID, false, "ghost order")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = f.svc.Open(f.order.ID, disputeBoosterID, false, "client refuses to confirm")
	assert.NoError(t, err)
}

func TestOpenDisputeAdminNotParticipant(t *testing.T) {
	f := newDisputeFixture(t)

	d, err := f.svc.Open(f.order.ID, disputeAdminID, true, "fraud report from support")
	require.NoError(t, err)
	assert.Equal(t, disputeAdminID, d.CreatorID)

	o, err := f.orders.GetByID(f.order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDisputed, o.Status)

	// Both sides of the order hear about it.
	seen := map[uint]bool{}
	for _, n := range f.notif.sent {
		assert.Equal(t, "DISPUTE_OPENED", n.Type)
		seen[n.UserID] = true
	}
	assert.True(t, seen[disputeClientID])
	assert.True(t, seen[disputeBoosterID])
}

func TestOpenDisputeSurvivesNotifierFailure(t *testing.T) {
	orders := newFakeOrderStore()
	boosterID := disputeBoosterID
	o := &models.Order{
		ClientID:  disputeClientID,
		BoosterID: &boosterID,
		GameMode:  "competitive",
		Status:    domain.OrderStatusInProgress,
	}
	require.NoError(t, orders.CreateIfNoActive(o))
	svc := NewDisputeService(newFakeDisputeStore(), orders, nil, failingNotifier{})

	d, err := svc.Open(o.ID, disputeClientID, false, "stalled")
	require.NoError(t, err)
	assert.Equal(t, domain.DisputeStatusOpen, d.Status)
}

func TestPostMessageAccessAndState(t *testing.T) {
	f := newDisputeFixture(t)
	d, err := f.svc.Open(f.order.ID, disputeClientID, false, "stalled")
	require.NoError(t, err)

	_, err = f.svc.PostMessage(d.ID, disputeBoosterID, false, "ISP outage, resuming today")
	require.NoError(t, err)

	_, err = f.svc.PostMessage(d.ID, strangerID, false, "drive-by comment")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.PostMessage(d.ID, disputeAdminID, true, "please share timestamps")
	require.NoError(t, err)

	_, err = f.svc.Resolve(d.ID, disputeAdminID, domain.DisputeStatusResolvedNoFault, "both acted in good faith")
	require.NoError(t, err)

	_, err = f.svc.PostMessage(d.ID, disputeClientID, false, "too late")
	assert.ErrorIs(t, err, domain.ErrDisputeClosed)
}

func TestResolveBoosterFavorCompletesOrder(t *testing.T) {
	f := newDisputeFixture(t)
	d, err := f.svc.Open(f.order.ID, disputeClientID, false, "stalled")
	require.NoError(t, err)

	resolved, err := f.svc.Resolve(d.ID, disputeAdminID, domain.DisputeStatusResolvedBoosterFavor, "proof shows target reached")
	require.NoError(t, err)
	assert.Equal(t, domain.DisputeStatusResolvedBoosterFavor, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, disputeAdminID, *resolved.ResolvedBy)

	o, err := f.orders.GetByID(f.order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCompleted, o.Status)

	comm, err := f.comms.GetByOrderID(f.order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7000), comm.AmountCents)
}

func TestResolveClientFavorCancelsOrder(t *testing.T) {
	f := newDisputeFixture(t)
	d, err := f.svc.Open(f.order.ID, disputeClientID, false, "no progress at all")
	require.NoError(t, err)

	_, err = f.svc.Resolve(d.ID, disputeAdminID, domain.DisputeStatusResolvedClientFavor, "refund issued")
	require.NoError(t, err)

	o, err := f.orders.GetByID(f.order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, o.Status)
	require.NotNil(t, o.CancelledAt)
}

func TestResolveTwiceFails(t *testing.T) {
	f := newDisputeFixture(t)
	d, err := f.svc.Open(f.order.ID, disputeClientID, false, "stalled")
	require.NoError(t, err)

	_, err = f.svc.Resolve(d.ID, disputeAdminID, domain.DisputeStatusResolvedNoFault, "")
	require.NoError(t, err)

	_, err = f.svc.Resolve(d.ID, disputeAdminID, domain.DisputeStatusResolvedClientFavor, "")
	assert.ErrorIs(t, err, domain.ErrDisputeClosed)
}

func TestResolveUnknownOutcome(t *testing.T) {
	f := newDisputeFixture(t)
	d, err := f.svc.Open(f.order.ID, disputeClientID, false, "stalled")
	require.NoError(t, err)

	_, err = f.svc.Resolve(d.ID, disputeAdminID, "SPLIT_THE_BABY", "")
	var coded *domain.CodedError
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, domain.CodeInvalidStatusTransition, coded.Code)
}

func TestGetVisibility(t *testing.T) {
	f := newDisputeFixture(t)
	d, err := f.svc.Open(f.order.ID, disputeClientID, false, "stalled")
	require.NoError(t, err)

	_, err = f.svc.Get(d.ID, disputeClientID, false)
	assert.NoError(t, err)
	_, err = f.svc.Get(d.ID, disputeBoosterID, false)
	assert.NoError(t, err)
	_, err = f.svc.Get(d.ID, disputeAdminID, true)
	assert.NoError(t, err)
	_, err = f.svc.Get(d.ID, strangerID, false)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.svc.Get(404, disputeClientID, false)
	assert.ErrorIs(t, err, domain.ErrDisputeNotFound)
}
