package pipeline

import "fmt"

// ExternalServiceError wraps a failure of one of the pipeline collaborators
// (classifier, text extractor, concept extractor, content generator). Stages
// record it on the document and re-raise; the task runner owns retries.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

func NewExternalServiceError(service string, err error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Err: err}
}
