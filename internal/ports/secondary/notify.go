package secondary

// Notifier defines the secondary port for desktop notifications.
// Notifications are fire-and-forget; implementations swallow errors.
type Notifier interface {
	// Notify shows an alert with the given title and message.
	Notify(title, message string)
}
