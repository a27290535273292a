package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web GUI routes on the provided mux.
// Static assets are served from the embedded filesystem at /static/*.
// Any path no other route claims renders the Not Found page.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	mux.HandleFunc("GET /{$}", h.Dashboard)
	mux.HandleFunc("GET /login", h.Login)
	mux.HandleFunc("GET /logout", h.Logout)

	mux.HandleFunc("GET /chat", h.Chat)
	mux.HandleFunc("GET /chat/{id}", h.ChatConversation)
	mux.HandleFunc("POST /chat/new", h.NewChat)
	mux.HandleFunc("POST /chat", h.SendMessage)
	mux.HandleFunc("POST /chat/{id}", h.SendMessage)

	mux.HandleFunc("/", h.NotFound)
}
