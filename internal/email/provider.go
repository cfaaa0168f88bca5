package email

// Provider delivers mail. Implementations must be safe for concurrent use,
// notification mail is sent from short-lived goroutines.
type Provider interface {
	Send(email *Email) error
	SendNotification(mail *NotificationMail) error

	Validate() error
	Close() error
}
