package summary

import "fmt"

// ErrorKind classifies summarization failures so the HTTP layer can map
// each one to a distinct status code.
type ErrorKind int

const (
	// UnsupportedProvider means the requested backend is not registered.
	UnsupportedProvider ErrorKind = iota
	// MissingCredential means no API key was supplied or configured.
	MissingCredential
	// ProviderFailure covers errors returned by the backend itself.
	ProviderFailure
	// Timeout means the provider call exceeded the configured bound.
	Timeout
)

func (k ErrorKind) String() string {
	switch k {
	case UnsupportedProvider:
		return "unsupported provider"
	case MissingCredential:
		return "missing credential"
	case ProviderFailure:
		return "provider failure"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// SummarizationError reports why a summary could not be produced.
type SummarizationError struct {
	Kind     ErrorKind
	Provider string
	Message  string
}

func (e *SummarizationError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("summarization failed (%s, provider %s): %s", e.Kind, e.Provider, e.Message)
	}
	return fmt.Sprintf("summarization failed (%s): %s", e.Kind, e.Message)
}
