package web

import (
	"strings"

	vm "github.com/ericfisherdev/omnisearch/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/omnisearch/internal/application"
	"github.com/ericfisherdev/omnisearch/internal/domain/model"
)

const (
	fileTimeLayout = "Jan 2, 2006"
	chatTimeLayout = "15:04"
)

// toDashboardViewModel converts a FileDashboard into tabs. active selects the
// tab by slug; an unknown or empty slug selects "All Files".
func toDashboardViewModel(d *application.FileDashboard, active string) vm.DashboardViewModel {
	if d.Error != "" {
		return vm.DashboardViewModel{Error: d.Error}
	}

	tabs := make([]vm.FileTabViewModel, 0, len(d.Groups))
	found := false
	for _, g := range d.Groups {
		slug := slugFor(g.Type)
		if slug == active {
			found = true
		}
		tabs = append(tabs, vm.FileTabViewModel{
			Label: g.Type,
			Slug:  slug,
			Count: len(g.Files),
			Files: toFileRows(g.Files),
		})
	}
	if !found {
		active = slugFor(model.FileTypeAll)
	}
	for i := range tabs {
		tabs[i].Active = tabs[i].Slug == active
	}

	return vm.DashboardViewModel{
		Tabs:      tabs,
		ActiveTab: active,
		Empty:     d.Empty(),
	}
}

func toFileRows(files []model.DriveFile) []vm.FileRowViewModel {
	rows := make([]vm.FileRowViewModel, 0, len(files))
	for _, f := range files {
		row := vm.FileRowViewModel{
			Name:     f.Name,
			Type:     f.DisplayType(),
			Icon:     iconFor(f.DisplayType()),
			ViewLink: f.ViewLink,
		}
		if !f.ModifiedTime.IsZero() {
			row.Modified = f.ModifiedTime.Format(fileTimeLayout)
		}
		rows = append(rows, row)
	}
	return rows
}

func iconFor(displayType string) string {
	switch displayType {
	case model.FileTypeSheet:
		return "sheet"
	case model.FileTypePDF:
		return "pdf"
	default:
		return "doc"
	}
}

// slugFor turns a display type into a URL-safe tab identifier.
func slugFor(displayType string) string {
	return strings.ReplaceAll(strings.ToLower(displayType), " ", "-")
}

func toChatViewModel(convs []model.Conversation, active *model.Conversation, csrf string) vm.ChatViewModel {
	out := vm.ChatViewModel{
		Conversations: make([]vm.ChatSummaryViewModel, 0, len(convs)),
		CSRFToken:     csrf,
		SendURL:       "/chat",
		NewURL:        "/chat/new",
	}
	for _, c := range convs {
		out.Conversations = append(out.Conversations, vm.ChatSummaryViewModel{
			ID:     c.ID,
			Title:  c.Title,
			Path:   "/chat/" + c.ID,
			Active: active != nil && active.ID == c.ID,
		})
	}
	if active == nil {
		return out
	}

	out.SendURL = "/chat/" + active.ID
	detail := &vm.ChatDetailViewModel{
		ID:       active.ID,
		Title:    active.Title,
		Messages: make([]vm.ChatMessageViewModel, 0, len(active.Messages)),
	}
	for _, m := range active.Messages {
		detail.Messages = append(detail.Messages, vm.ChatMessageViewModel{
			IsUser: m.IsUser(),
			HTML:   RenderMarkdown(m.Content),
			Time:   m.CreatedAt.Local().Format(chatTimeLayout),
		})
	}
	out.Active = detail
	return out
}

func toToasts(ns []model.Notification) []vm.ToastViewModel {
	toasts := make([]vm.ToastViewModel, 0, len(ns))
	for _, n := range ns {
		toasts = append(toasts, vm.ToastViewModel{Level: string(n.Level), Message: n.Message})
	}
	return toasts
}
