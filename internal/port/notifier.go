package port

type NotifyLevel string

const (
	NotifySuccess NotifyLevel = "success"
	NotifyError   NotifyLevel = "error"
	NotifyWarning NotifyLevel = "warning"
	NotifyInfo    NotifyLevel = "info"
)

// Notifier receives short user-facing messages (the toast surface). A
// presentation layer implements it; the core never blocks on it.
type Notifier interface {
	Notify(level NotifyLevel, message string)
}
