// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/omnisearch/internal/adapter/driven/notify"
	"github.com/ericfisherdev/omnisearch/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/omnisearch/internal/adapter/driving/web/templates/pages"
	vm "github.com/ericfisherdev/omnisearch/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/omnisearch/internal/application"
	"github.com/ericfisherdev/omnisearch/internal/domain/model"
	"github.com/ericfisherdev/omnisearch/internal/domain/port/driven"
)

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	files         *application.FileService
	session       *application.SessionService
	chat          *application.ChatService
	loginURL      string
	cookieName    string
	secureCookies bool
	logger        *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. loginURL is the
// backend URL that starts the OAuth flow; cookieName is the credential cookie
// cleared on logout.
func NewHandler(
	files *application.FileService,
	session *application.SessionService,
	chat *application.ChatService,
	loginURL string,
	cookieName string,
	secureCookies bool,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		files:         files,
		session:       session,
		chat:          chat,
		loginURL:      loginURL,
		cookieName:    cookieName,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// Dashboard renders the grouped file listing for a signed-in user. Users
// without a usable credential are sent to the login page; other probe
// failures render an explanation instead of the listing.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	probe := h.session.Check(ctx)
	if probe.NeedsLogin() {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	if !probe.Authenticated() {
		h.render(w, r, http.StatusBadGateway, "Unavailable", true, pages.Problem(vm.ProblemViewModel{
			Heading: "We could not check your session",
			Message: application.ProblemMessage(probe),
			Retry:   "/",
		}))
		return
	}

	dash, err := h.files.Dashboard(ctx)
	if err != nil {
		h.logger.Error("failed to load dashboard", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, r, http.StatusOK, "Files", true, pages.Dashboard(toDashboardViewModel(dash, r.URL.Query().Get("tab"))))
}

// Login renders the sign-in page, or sends an already signed-in user home.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if h.session.Check(r.Context()).Authenticated() {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	h.render(w, r, http.StatusOK, "Login", false, pages.Login(vm.LoginViewModel{LoginURL: h.loginURL}))
}

// Logout ends the backend session (best effort), expires the credential
// cookie and returns to the login page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Logout(r.Context()); err != nil {
		h.logger.Error("logout failed", "error", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.secureCookies,
	})
	http.Redirect(w, r, "/login", http.StatusFound)
}

// Chat renders the conversation list with no conversation open.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	h.renderChat(w, r, nil)
}

// ChatConversation renders the conversation list with {id} open.
func (h *Handler) ChatConversation(w http.ResponseWriter, r *http.Request) {
	conv, err := h.chat.Conversation(r.Context(), r.PathValue("id"))
	if errors.Is(err, driven.ErrConversationNotFound) {
		h.NotFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error("failed to load conversation", "id", r.PathValue("id"), "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.renderChat(w, r, conv)
}

// NewChat creates an empty conversation and opens it.
func (h *Handler) NewChat(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return
	}

	conv, err := h.chat.NewConversation(r.Context())
	if err != nil {
		h.logger.Error("failed to create conversation", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/chat/"+conv.ID, http.StatusSeeOther)
}

// SendMessage posts the "message" form field to conversation {id}, or to a new
// conversation when the path has no id. Blank messages are ignored.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return
	}

	id := r.PathValue("id")
	back := "/chat"
	if id != "" {
		back = "/chat/" + id
	}

	conv, err := h.chat.Send(r.Context(), id, r.PostFormValue("message"))
	switch {
	case errors.Is(err, application.ErrEmptyMessage):
		http.Redirect(w, r, back, http.StatusSeeOther)
	case errors.Is(err, driven.ErrConversationNotFound):
		h.NotFound(w, r)
	case err != nil:
		h.logger.Error("failed to send message", "id", id, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	default:
		http.Redirect(w, r, "/chat/"+conv.ID, http.StatusSeeOther)
	}
}

// NotFound renders the Not Found page with status 404.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "Not Found", false, pages.NotFound())
}

func (h *Handler) renderChat(w http.ResponseWriter, r *http.Request, active *model.Conversation) {
	convs, err := h.chat.Conversations(r.Context())
	if err != nil {
		h.logger.Error("failed to list conversations", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	token := csrfToken(w, r, h.secureCookies)
	title := "Chat"
	if active != nil {
		title = active.Title
	}
	h.render(w, r, http.StatusOK, title, false, pages.Chat(toChatViewModel(convs, active, token)))
}

// render writes content inside the layout, draining the request's pending
// notifications into toasts.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, title string, signedIn bool, content templ.Component) {
	var toasts []vm.ToastViewModel
	if buf := notify.BufferFrom(r.Context()); buf != nil {
		toasts = toToasts(buf.Drain())
	}

	layout := templates.Layout(vm.LayoutViewModel{Title: title, SignedIn: signedIn, Toasts: toasts}, content)

	var buf bytes.Buffer
	if err := layout.Render(r.Context(), &buf); err != nil {
		h.logger.Error("failed to render page", "title", title, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
