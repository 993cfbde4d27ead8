package http

import (
	"io"
	"net/http"
)

// maxErrBodyBytes caps how much of a failed response body is retained
// for diagnostics.
const maxErrBodyBytes = 1 << 20

type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return "http response did not indicate success status code: " + e.Status
	}
	return "http response did not indicate success status code: " + e.Status + ": " + e.Body
}

func isSuccessStatusCode(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}

// EnsureSuccessStatusCode returns a *StatusError for any non-2xx response,
// draining up to 1 MiB of the body into the error for diagnostics.
func EnsureSuccessStatusCode(resp *http.Response) error {
	if isSuccessStatusCode(resp) {
		return nil
	}

	var body string
	if resp.Body != nil {
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodyBytes))
		if err == nil {
			body = string(b)
		}
	}

	return &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body,
	}
}
