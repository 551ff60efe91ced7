package sweep

// DefaultNotificationTitle is used when no application name is configured.
const DefaultNotificationTitle = "sweep"

// Notification is the payload handed to the user's notification system.
type Notification struct {
	ID       string
	Title    string
	Subtitle string
	Body     string
}

// Notifier surfaces cleanup and relocation outcomes to the user.
// Delivery failures are logged by the engine and never fail a pass.
type Notifier interface {
	Notify(n Notification) error
}
