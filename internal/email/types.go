package email

import "bloodbank_backend/internal/models"

// Email is a single outgoing message. Body is the plain text part.
type Email struct {
	From     string
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// NotificationMail is the e-mail copy of an in-app notification.
type NotificationMail struct {
	To        string
	Type      models.NotificationType
	Title     string
	Message   string
	RequestID string
}
