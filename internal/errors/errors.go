package errors

import "net/http"

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a storage-level "not found".
func IsNotFound(err error) bool {
	if e, ok := err.(*ErrorWithStatusCode); ok {
		return e.StatusCode == http.StatusNotFound
	}
	return false
}
