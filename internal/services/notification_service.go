package services

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"bloodbank_backend/internal/email"
	"bloodbank_backend/internal/logger"
	"bloodbank_backend/internal/metrics"
	"bloodbank_backend/internal/models"
	"bloodbank_backend/internal/repositories"
	"bloodbank_backend/internal/services/dto"
	"bloodbank_backend/pkg/apperrors"
	"bloodbank_backend/ws"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// RealtimePublisher pushes events to connected users. Implemented by ws.WebSocketManager.
type RealtimePublisher interface {
	SendToUser(userID string, event ws.Event) int
}

type NotificationService interface {
	// Notify stores one notification and delivers it on the side channels.
	Notify(ctx context.Context, db *gorm.DB, userID, title, message string, notificationType models.NotificationType, data map[string]interface{}) (*models.Notification, error)
	// Dispatch delivers already committed notifications. It never fails the caller.
	Dispatch(ctx context.Context, db *gorm.DB, notifications []*models.Notification)

	GetUserNotifications(db *gorm.DB, userID string, criteria dto.NotificationCriteria) (*dto.NotificationListResponse, error)
	MarkAsRead(db *gorm.DB, userID, notificationID string) error
	MarkAllAsRead(db *gorm.DB, userID string) (int64, error)
	GetUnreadCount(db *gorm.DB, userID string) (int64, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	publisher        RealtimePublisher
	mailer           email.Provider
	mailEnabled      bool
	spawn            func(func())
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	publisher RealtimePublisher,
	mailer email.Provider,
	mailEnabled bool,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		publisher:        publisher,
		mailer:           mailer,
		mailEnabled:      mailEnabled,
		spawn:            func(f func()) { go f() },
	}
}

// NewNotification builds an unsaved notification; data is stored as JSON.
func NewNotification(userID, title, message string, notificationType models.NotificationType, data map[string]interface{}) (*models.Notification, error) {
	n := &models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
	}
	if len(data) > 0 {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		n.Data = datatypes.JSON(raw)
	}
	return n, nil
}

func (s *notificationService) Notify(ctx context.Context, db *gorm.DB, userID, title, message string, notificationType models.NotificationType, data map[string]interface{}) (*models.Notification, error) {
	n, err := NewNotification(userID, title, message, notificationType, data)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.notificationRepo.Create(db, n); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.Dispatch(ctx, db, []*models.Notification{n})
	return n, nil
}

func (s *notificationService) Dispatch(ctx context.Context, db *gorm.DB, notifications []*models.Notification) {
	if len(notifications) == 0 {
		return
	}

	if s.publisher != nil {
		for _, n := range notifications {
			s.publisher.SendToUser(n.UserID, ws.Event{Type: "notification", Payload: n})
		}
	}

	if !s.mailEnabled || s.mailer == nil {
		return
	}

	ids := make([]string, 0, len(notifications))
	for _, n := range notifications {
		ids = append(ids, n.UserID)
	}
	users, err := s.userRepo.FindByIDs(db, ids)
	if err != nil {
		logger.CtxWithError(ctx, "notification mail: user lookup failed", err)
		metrics.DeliveryFailures.WithLabelValues("email").Add(float64(len(notifications)))
		return
	}
	emails := make(map[string]string, len(users))
	for _, u := range users {
		emails[u.ID] = u.Email
	}

	for _, n := range notifications {
		to, ok := emails[n.UserID]
		if !ok || to == "" {
			continue
		}
		n := n
		s.spawn(func() {
			err := s.mailer.SendNotification(notificationMail(to, n))
			if err != nil {
				metrics.DeliveryFailures.WithLabelValues("email").Inc()
			}
			logger.NotifyLog("email", n.UserID, err)
		})
	}
}

func notificationMail(to string, n *models.Notification) *email.NotificationMail {
	mail := &email.NotificationMail{
		To:      to,
		Type:    n.Type,
		Title:   n.Title,
		Message: n.Message,
	}
	var payload struct {
		RequestID string `json:"request_id"`
	}
	if len(n.Data) > 0 && json.Unmarshal(n.Data, &payload) == nil {
		mail.RequestID = payload.RequestID
	}
	return mail
}

func (s *notificationService) GetUserNotifications(db *gorm.DB, userID string, criteria dto.NotificationCriteria) (*dto.NotificationListResponse, error) {
	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.PageSize < 1 {
		criteria.PageSize = defaultPageSize
	}
	if criteria.PageSize > maxPageSize {
		criteria.PageSize = maxPageSize
	}

	items, total, err := s.notificationRepo.FindByUser(db, userID, repositories.NotificationCriteria{
		UnreadOnly: criteria.UnreadOnly,
		Type:       criteria.Type,
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	totalPages := int((total + int64(criteria.PageSize) - 1) / int64(criteria.PageSize))
	return &dto.NotificationListResponse{
		Notifications: items,
		Total:         total,
		Page:          criteria.Page,
		PageSize:      criteria.PageSize,
		TotalPages:    totalPages,
	}, nil
}

func (s *notificationService) MarkAsRead(db *gorm.DB, userID, notificationID string) error {
	err := s.notificationRepo.MarkAsRead(db, userID, notificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err, "notification", "Notification not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(db *gorm.DB, userID string) (int64, error) {
	n, err := s.notificationRepo.MarkAllAsRead(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return n, nil
}

func (s *notificationService) GetUnreadCount(db *gorm.DB, userID string) (int64, error) {
	n, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return n, nil
}
