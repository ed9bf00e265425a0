package catalog

import (
	"fmt"
	"time"
)

// FetchError reports the page (zero based) whose request failed.
type FetchError struct {
	Page int
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("error fetching page %d:\n>>> %v", e.Page, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type BulkExportError struct {
	JobId string
	Code  string
}

func (e *BulkExportError) Error() string {
	return fmt.Sprintf("bulk export %s failed with code %s", e.JobId, e.Code)
}

type FetchTimeoutError struct {
	JobId   string
	Status  BulkStatus
	Timeout time.Duration
}

func (e *FetchTimeoutError) Error() string {
	return fmt.Sprintf("bulk export %s still %s after %v", e.JobId, e.Status, e.Timeout)
}

// MalformedResultError points at the 1-based line of the bulk result that could not be used.
type MalformedResultError struct {
	Line   int
	Reason string
	Err    error
}

func (e *MalformedResultError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed bulk result at line %d: %s:\n>>> %v", e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed bulk result at line %d: %s", e.Line, e.Reason)
}

func (e *MalformedResultError) Unwrap() error {
	return e.Err
}
