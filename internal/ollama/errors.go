package ollama

import "fmt"

// ErrorKind classifies a failed generation call so callers can branch on
// the failure class without matching message strings.
type ErrorKind int

const (
	// KindUnreachable means the endpoint could not be connected to.
	KindUnreachable ErrorKind = iota
	// KindTimeout means the request exceeded the configured timeout.
	KindTimeout
	// KindBadStatus means the endpoint answered with a non-2xx status.
	KindBadStatus
	// KindMalformedResponse means the response body did not carry the
	// expected answer field.
	KindMalformedResponse
)

// GenerateError is a failed call to the model endpoint.
type GenerateError struct {
	Kind       ErrorKind
	StatusCode int // set when Kind is KindBadStatus
	cause      error
}

func (e *GenerateError) Error() string {
	switch e.Kind {
	case KindUnreachable:
		return "could not connect to the AI model; make sure Ollama is running (ollama serve)"
	case KindTimeout:
		return "the request to the AI model timed out; please try again"
	case KindBadStatus:
		return fmt.Sprintf("the AI model returned an error (status code %d)", e.StatusCode)
	case KindMalformedResponse:
		return "received an unexpected response format from the AI model"
	}
	return "AI model request failed"
}

func (e *GenerateError) Unwrap() error {
	return e.cause
}
