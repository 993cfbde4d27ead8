package trustedemployee

import "fmt"

// ValidationError reports a malformed applicant field or envelope
// precondition. It is raised locally, before anything goes over the wire.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid screen request: " + e.Message
}

// RequestFailedError reports a failed exchange: either the transport
// errored, or the vendor answered with a non-2xx status. The raw error
// body is retained when the vendor sent one.
type RequestFailedError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *RequestFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("%s: request failed with status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: request failed with status %d", e.Op, e.StatusCode)
}

func (e *RequestFailedError) Unwrap() error {
	return e.Err
}

// ResponseParseError reports a 2xx response whose body could not be
// interpreted as the vendor's XML.
type ResponseParseError struct {
	Op  string
	Err error
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("%s: parse response: %v", e.Op, e.Err)
}

func (e *ResponseParseError) Unwrap() error {
	return e.Err
}

// ReportError is the vendor's per-file rejection. It is carried as data
// on the corresponding result while the rest of the batch proceeds.
type ReportError struct {
	FileNo string
	Text   string
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("report %s: %s", e.FileNo, e.Text)
}
