package model

import (
	"io"
	"net/http"
)

// RequestOptions are the optional parts of a backend request. A zero value
// means GET with no body and no extra headers.
type RequestOptions struct {
	Method string
	Body   io.Reader
	Header http.Header
}

// RequestDescriptor describes one backend call. Endpoint is a path relative to
// the configured backend base URL and is appended verbatim.
type RequestDescriptor struct {
	Endpoint   string
	Options    RequestOptions
	FileUpload bool // multipart bodies: the transport sets Content-Type itself
}

// Get returns a descriptor for a plain GET of endpoint.
func Get(endpoint string) RequestDescriptor {
	return RequestDescriptor{Endpoint: endpoint, Options: RequestOptions{Method: http.MethodGet}}
}
