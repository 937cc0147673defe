package service

import (
	"encoding/json"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/pkg/logger"

	"go.uber.org/zap"
)

// Notifier is the event sink consumed by the enrollment and certificate
// services. Delivery is fire-and-forget: implementations must never let a
// notification failure fail the triggering operation.
type Notifier interface {
	Notify(userID uint, typ model.NotificationType, title, message string, data map[string]interface{})
}

type NotificationService struct {
	repo *repository.NotificationRepository
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Notify(userID uint, typ model.NotificationType, title, message string, data map[string]interface{}) {
	payload := ""
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			payload = string(b)
		}
	}

	n := &model.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		Data:    payload,
	}

	if err := s.repo.Create(n); err != nil {
		logger.Log.Error("notification delivery failed",
			zap.Uint("userID", userID),
			zap.String("type", string(typ)),
			zap.Error(err))
	}
}

func (s *NotificationService) ListForUser(userID uint, limit int) ([]model.Notification, error) {
	return s.repo.ListByUser(userID, limit)
}

func (s *NotificationService) MarkRead(id, userID uint) (bool, error) {
	return s.repo.MarkRead(id, userID)
}
