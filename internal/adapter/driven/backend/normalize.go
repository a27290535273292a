package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/ericfisherdev/omnisearch/internal/domain/model"
)

// ErrUnexpectedContentType is wrapped by DecodeError when a successful response
// has a plain text body but the caller asked for a structured type.
var ErrUnexpectedContentType = errors.New("unexpected non-JSON response body")

// DecodeError wraps a failure to read or parse a response body.
type DecodeError struct {
	Status int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response (HTTP %d): %v", e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Normalize converts a raw backend response into an APIResult and closes the
// body. JSON bodies are decoded into T; any other body is read as text, which
// fills T only when T is string, []byte, json.RawMessage or any.
//
// HTTP-level failures are never returned as errors: a non-2xx status yields
// a result whose Errors is the body's "message" field when the body is a JSON
// object carrying one, else model.DefaultErrorMessage. The error return is
// reserved for body read and decode failures, as *DecodeError.
func Normalize[T any](resp *http.Response) (model.APIResult[T], error) {
	defer func() { _ = resp.Body.Close() }()

	status := resp.StatusCode
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.APIResult[T]{Status: status}, &DecodeError{Status: status, Err: fmt.Errorf("reading body: %w", err)}
	}

	structured := isJSON(resp.Header.Get("Content-Type"))
	empty := len(bytes.TrimSpace(body)) == 0

	if !isSuccess(status) {
		if !structured || empty {
			return model.Failed[T](status, ""), nil
		}
		var parsed any
		if err := json.Unmarshal(body, &parsed); err != nil {
			return model.APIResult[T]{Status: status}, &DecodeError{Status: status, Err: err}
		}
		return model.Failed[T](status, messageOf(parsed)), nil
	}

	var data T
	switch {
	case structured && empty:
		// Nothing to decode; data stays the zero value.
	case structured:
		if err := json.Unmarshal(body, &data); err != nil {
			return model.APIResult[T]{Status: status}, &DecodeError{Status: status, Err: err}
		}
	default:
		if err := assignText(&data, body); err != nil {
			return model.APIResult[T]{Status: status}, &DecodeError{Status: status, Err: err}
		}
	}

	return model.Succeeded(status, data), nil
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// isJSON reports whether a Content-Type header declares a JSON body.
func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(strings.ToLower(contentType), "application/json")
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// messageOf extracts a non-empty string "message" field from a decoded JSON object.
func messageOf(v any) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	msg, _ := obj["message"].(string)
	return msg
}

// assignText stores a plain text body into dst when dst's type can hold text.
func assignText[T any](dst *T, body []byte) error {
	switch p := any(dst).(type) {
	case *string:
		*p = string(body)
	case *[]byte:
		*p = body
	case *json.RawMessage:
		encoded, err := json.Marshal(string(body))
		if err != nil {
			return err
		}
		*p = encoded
	case *any:
		*p = string(body)
	default:
		return ErrUnexpectedContentType
	}
	return nil
}
