package email

// Provider is the email-delivery collaborator. Sends are fire-and-forget from
// the caller's point of view: failures are logged at call sites and never
// propagate to the triggering request.
type Provider interface {
	// Send delivers a single message.
	Send(email *Email) error

	// SendWelcome greets a newly registered user.
	SendWelcome(to, username string) error

	// SendTrialReminder warns a trial user about the days left.
	SendTrialReminder(to, username string, daysRemaining int) error

	// Validate checks the provider configuration.
	Validate() error

	// Close releases provider resources.
	Close() error
}
