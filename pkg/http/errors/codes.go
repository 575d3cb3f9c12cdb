package errors

import "net/http"

// Canonical error messages carried in the envelope.
const (
	MsgBadRequest         = "bad request"
	MsgNotFound           = "resource not found"
	MsgUnprocessable      = "unable to process request"
	MsgInternalError      = "internal server error"
	MsgServiceUnavailable = "service unavailable"
)

// MessageFor returns the canonical message for an HTTP status.
func MessageFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusUnprocessableEntity:
		return MsgUnprocessable
	case http.StatusServiceUnavailable:
		return MsgServiceUnavailable
	case http.StatusInternalServerError:
		return MsgInternalError
	default:
		return http.StatusText(status)
	}
}
