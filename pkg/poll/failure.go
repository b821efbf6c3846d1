package poll

import "fmt"

// Reason classifies why a poll attempt failed. Callers mostly need
// success/failure plus a short human-readable message; the classification
// exists for logging and tests.
type Reason int

const (
	// ReasonNetworkTimeout: the request exceeded the source timeout.
	ReasonNetworkTimeout Reason = iota

	// ReasonNetworkRefused: the connection was refused or unreachable.
	ReasonNetworkRefused

	// ReasonHTTPStatus: the server answered with a non-2xx status.
	ReasonHTTPStatus

	// ReasonDecode: the body could not be decoded as the expected payload.
	ReasonDecode

	// ReasonFileNotFound: the file source path does not exist.
	ReasonFileNotFound

	// ReasonFileRead: the file exists but could not be read.
	ReasonFileRead
)

// String returns the short name of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonNetworkTimeout:
		return "timeout"
	case ReasonNetworkRefused:
		return "refused"
	case ReasonHTTPStatus:
		return "http-status"
	case ReasonDecode:
		return "decode"
	case ReasonFileNotFound:
		return "not-found"
	case ReasonFileRead:
		return "read"
	}
	return "unknown"
}

// Failure is the classified outcome of a failed poll attempt. It implements
// error so pollers can return it directly.
type Failure struct {
	Reason  Reason
	Message string

	// Status carries the HTTP status code for ReasonHTTPStatus, 0 otherwise.
	Status int
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Reason, f.Message)
}

// failf builds a Failure with a formatted message.
func failf(reason Reason, format string, args ...any) *Failure {
	return &Failure{Reason: reason, Message: fmt.Sprintf(format, args...)}
}
