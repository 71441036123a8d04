package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrUnexpectedShape = errors.New("unexpected image container")
	ErrMissingImage    = errors.New("image marker has no img element")
	ErrMissingSource   = errors.New("img element has no src attribute")
	ErrBadDataMW       = errors.New("invalid data-mw attribute")
	ErrBodyTooLarge    = errors.New("response body exceeds size limit")
)

// FetchError wraps errors that occur while talking to the wiki.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// APIError reports a query API response that does not have the expected shape.
type APIError struct {
	Endpoint string
	Err      error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("malformed API response from %s: %v", e.Endpoint, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// MarkupError reports rendered HTML that breaks the media markup contract.
type MarkupError struct {
	Page string
	Tag  string
	Err  error
}

func (e *MarkupError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("markup error on page %q (tag %s): %v", e.Page, e.Tag, e.Err)
	}
	return fmt.Sprintf("markup error on page %q: %v", e.Page, e.Err)
}

func (e *MarkupError) Unwrap() error { return e.Err }

// OutputError wraps errors that occur while rendering the report.
type OutputError struct {
	Renderer string
	Err      error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("output error (%s): %v", e.Renderer, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }

// PipelineError wraps errors that occur in the processing pipeline.
type PipelineError struct {
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline error at stage %q: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }
