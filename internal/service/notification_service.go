package service

import (
	"encoding/json"

	"rankboost/internal/logger"
	"rankboost/internal/models"

	"go.uber.org/zap"
)

type NotificationStore interface {
	Create(n *models.Notification) error
	ListByUserID(userID uint, limit, offset int) ([]models.Notification, error)
	MarkRead(id, userID uint) error
	ListByOrder(orderID uint) ([]models.Notification, error)
}

// Pusher delivers a notification to live websocket connections. Offline
// users simply miss the push; the persisted row is the source of truth.
type Pusher interface {
	PushToUser(userID uint, payload []byte)
}

type NotificationService struct {
	store  NotificationStore
	pusher Pusher
}

func NewNotificationService(store NotificationStore, pusher Pusher) *NotificationService {
	return &NotificationService{store: store, pusher: pusher}
}

// Notify persists the notification, then pushes it to any open sockets.
func (s *NotificationService) Notify(userID uint, notifType, title, body string, data map[string]interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	n := &models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Data:   string(raw),
	}
	if err := s.store.Create(n); err != nil {
		return err
	}
	if s.pusher != nil {
		payload, err := json.Marshal(n)
		if err != nil {
			logger.Log.Warn("notification push encode failed", zap.Uint("user_id", userID), zap.Error(err))
			return nil
		}
		s.pusher.PushToUser(userID, payload)
	}
	return nil
}

func (s *NotificationService) List(userID uint, limit, offset int) ([]models.Notification, error) {
	return s.store.ListByUserID(userID, limit, offset)
}

func (s *NotificationService) MarkRead(id, userID uint) error {
	return s.store.MarkRead(id, userID)
}

func (s *NotificationService) ListForOrder(orderID uint) ([]models.Notification, error) {
	return s.store.ListByOrder(orderID)
}
