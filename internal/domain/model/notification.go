package model

// Notification is a short user-facing message, shown as a toast in the GUI.
type Notification struct {
	Level   NotificationLevel
	Message string
}
