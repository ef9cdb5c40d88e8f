package client

import "fmt"

// ErrorKind classifies a failed API call.
type ErrorKind int

const (
	// KindTransport: the request never produced an HTTP response.
	KindTransport ErrorKind = iota
	// KindHTTPStatus: the backend answered with a non-2xx status.
	KindHTTPStatus
	// KindEnvelope: a well-formed response reported success=false.
	KindEnvelope
	// KindDecode: the response body could not be decoded.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTPStatus:
		return "http_status"
	case KindEnvelope:
		return "envelope"
	case KindDecode:
		return "decode"
	}
	return "unknown"
}

// APIError is the single normalized error surfaced when mock fallback is
// disabled.
type APIError struct {
	Kind    ErrorKind
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: API error: %d", e.Op, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: request failed", e.Op)
}

func (e *APIError) Unwrap() error { return e.Err }
