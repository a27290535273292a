package model

// ProbeOutcome classifies the result of an auth probe.
type ProbeOutcome string

const (
	ProbeNoCredential     ProbeOutcome = "no_credential"
	ProbeValid            ProbeOutcome = "valid"
	ProbeUnauthorized     ProbeOutcome = "unauthorized"
	ProbeNotFound         ProbeOutcome = "not_found"
	ProbeTransportError   ProbeOutcome = "transport_error"
	ProbeUnexpectedStatus ProbeOutcome = "unexpected_status"
)

// NotificationLevel is the severity of a user-facing notification.
type NotificationLevel string

const (
	NotificationInfo    NotificationLevel = "info"
	NotificationWarning NotificationLevel = "warning"
	NotificationError   NotificationLevel = "error"
)

// MessageRole identifies the author of a chat message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)
