package service

import (
	"encoding/json"
	"testing"

	"rankboost/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memNotificationStore struct {
	seq  uint
	rows []*models.Notification
}

func (m *memNotificationStore) Create(n *models.Notification) error {
	m.seq++
	n.ID = m.seq
	cp := *n
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memNotificationStore) ListByUserID(userID uint, limit, offset int) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range m.rows {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *memNotificationStore) MarkRead(id, userID uint) error {
	for _, n := range m.rows {
		if n.ID == id && n.UserID == userID {
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memNotificationStore) ListByOrder(orderID uint) ([]models.Notification, error) {
	return nil, nil
}

type capturingPusher struct {
	pushes map[uint][][]byte
}

func (p *capturingPusher) PushToUser(userID uint, payload []byte) {
	if p.pushes == nil {
		p.pushes = map[uint][][]byte{}
	}
	p.pushes[userID] = append(p.pushes[userID], payload)
}

func TestNotifyPersistsAndPushes(t *testing.T) {
	store := &memNotificationStore{}
	pusher := &capturingPusher{}
	svc := NewNotificationService(store, pusher)

	err := svc.Notify(5, "ORDER_PAID", "Payment confirmed", "Your payment went through.",
		map[string]interface{}{"order_id": uint(12)})
	require.NoError(t, err)

	list, err := svc.List(5, 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ORDER_PAID", list[0].Type)
	assert.Contains(t, list[0].Data, `"order_id":12`)

	require.Len(t, pusher.pushes[5], 1)
	var pushed models.Notification
	require.NoError(t, json.Unmarshal(pusher.pushes[5][0], &pushed))
	assert.Equal(t, "Payment confirmed", pushed.Title)
}

func TestNotifyWithoutPusher(t *testing.T) {
	store := &memNotificationStore{}
	svc := NewNotificationService(store, nil)

	require.NoError(t, svc.Notify(5, "ORDER_COMPLETED", "Done", "", nil))
	list, _ := svc.List(5, 20, 0)
	assert.Len(t, list, 1)
}
