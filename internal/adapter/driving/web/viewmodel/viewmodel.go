// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// LayoutViewModel holds the page chrome shared by every page.
type LayoutViewModel struct {
	Title    string
	SignedIn bool
	Toasts   []ToastViewModel
}

// ToastViewModel is one notification rendered as a toast.
type ToastViewModel struct {
	Level   string // info, warning or error; used as a CSS modifier
	Message string
}

// LoginViewModel holds data for the sign-in page.
type LoginViewModel struct {
	LoginURL string
}

// DashboardViewModel holds the grouped file listing.
type DashboardViewModel struct {
	Tabs      []FileTabViewModel
	ActiveTab string
	Empty     bool
	Error     string
}

// FileTabViewModel is one tab of the dashboard.
type FileTabViewModel struct {
	Label  string
	Slug   string
	Count  int
	Active bool
	Files  []FileRowViewModel
}

// FileRowViewModel is one file card.
type FileRowViewModel struct {
	Name     string
	Type     string
	Icon     string // sheet, pdf or doc
	Modified string
	ViewLink string
}

// ProblemViewModel explains why a page could not be shown.
type ProblemViewModel struct {
	Heading string
	Message string
	Retry   string
}

// ChatViewModel holds the chat sidebar and the open conversation.
type ChatViewModel struct {
	Conversations []ChatSummaryViewModel
	Active        *ChatDetailViewModel
	CSRFToken     string
	SendURL       string
	NewURL        string
}

// ChatSummaryViewModel is one conversation in the sidebar.
type ChatSummaryViewModel struct {
	ID     string
	Title  string
	Path   string
	Active bool
}

// ChatDetailViewModel is the open conversation.
type ChatDetailViewModel struct {
	ID       string
	Title    string
	Messages []ChatMessageViewModel
}

// ChatMessageViewModel is a single rendered chat message.
type ChatMessageViewModel struct {
	IsUser bool
	HTML   string // sanitized markdown
	Time   string
}
