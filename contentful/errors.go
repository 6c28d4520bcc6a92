package contentful

import "fmt"

// ConfigurationError reports a missing credential. It is returned before any
// request is made.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return "contentful credentials not configured: missing " + e.Field
}

// APIError is returned when Contentful answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("contentful api error: %d", e.StatusCode)
}

// ProtocolError is returned when a successful response is not JSON, either
// by content type or because the body does not decode. Err holds the decode
// error in the second case.
type ProtocolError struct {
	ContentType string
	Err         error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return "contentful api returned invalid JSON: " + e.Err.Error()
	}
	return "contentful api returned non-JSON response"
}

func (e *ProtocolError) Unwrap() error { return e.Err }
