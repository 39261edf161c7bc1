package port

// Notifier shows a message to the user. It is fire-and-forget.
type Notifier interface {
	Error(message string)
}
