package model

// DefaultErrorMessage is used when a failed response carries no usable message.
const DefaultErrorMessage = "An unexpected error occurred"

// APIResult is the uniform result of a backend call. Exactly one of Data and
// Errors is meaningful: Errors is non-empty on failure and empty on success.
// Status is the HTTP status code, or zero when no response was received.
type APIResult[T any] struct {
	Data   T
	Errors string
	Status int
}

// OK reports whether the result carries data rather than an error message.
func (r APIResult[T]) OK() bool {
	return r.Errors == ""
}

// Failed builds a failure result with the given status and message. An empty
// message falls back to DefaultErrorMessage.
func Failed[T any](status int, message string) APIResult[T] {
	if message == "" {
		message = DefaultErrorMessage
	}
	return APIResult[T]{Status: status, Errors: message}
}

// Succeeded builds a success result.
func Succeeded[T any](status int, data T) APIResult[T] {
	return APIResult[T]{Data: data, Status: status}
}
