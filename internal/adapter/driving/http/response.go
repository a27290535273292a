package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/omnisearch/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// ResultResponse is the JSON representation of an APIResult. Errors is
// omitted on success.
type ResultResponse[T any] struct {
	Data          T                      `json:"data"`
	Errors        string                 `json:"errors,omitempty"`
	Status        int                    `json:"status"`
	Notifications []NotificationResponse `json:"notifications,omitempty"`
}

// NotificationResponse is a notification raised while serving the request.
type NotificationResponse struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// FileResponse is the JSON representation of a Drive file.
type FileResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mime_type"`
	Type         string `json:"type"`
	ModifiedTime string `json:"modified_time,omitempty"`
	ViewLink     string `json:"view_link,omitempty"`
}

// SessionResponse is the JSON representation of an auth probe result.
type SessionResponse struct {
	Outcome       string `json:"outcome"`
	Status        int    `json:"status,omitempty"`
	Authenticated bool   `json:"authenticated"`
	NeedsLogin    bool   `json:"needs_login"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Time     string `json:"time"`
}

// toFilesResponse converts a file listing result. Data is always a JSON
// array, empty on failure.
func toFilesResponse(result model.APIResult[model.FileListing]) ResultResponse[[]FileResponse] {
	files := make([]FileResponse, 0, len(result.Data.Files))
	for _, f := range result.Data.Files {
		resp := FileResponse{
			ID:       f.ID,
			Name:     f.Name,
			MimeType: f.MimeType,
			Type:     f.DisplayType(),
			ViewLink: f.ViewLink,
		}
		if !f.ModifiedTime.IsZero() {
			resp.ModifiedTime = f.ModifiedTime.UTC().Format(time.RFC3339)
		}
		files = append(files, resp)
	}

	return ResultResponse[[]FileResponse]{
		Data:   files,
		Errors: result.Errors,
		Status: result.Status,
	}
}

func toSessionResponse(r model.AuthProbeResult) SessionResponse {
	return SessionResponse{
		Outcome:       string(r.Outcome),
		Status:        r.Status,
		Authenticated: r.Authenticated(),
		NeedsLogin:    r.NeedsLogin(),
	}
}

func toNotificationResponses(ns []model.Notification) []NotificationResponse {
	if len(ns) == 0 {
		return nil
	}
	out := make([]NotificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, NotificationResponse{Level: string(n.Level), Message: n.Message})
	}
	return out
}
