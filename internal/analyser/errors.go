package analyser

import "fmt"

// InitializationError reports that the detector/recognizer pair could not be
// constructed. The failed construction publishes no handle, so the next
// Acquire retries from scratch.
type InitializationError struct {
	Err error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("analyser initialization failed: %v", e.Err)
}

func (e *InitializationError) Unwrap() error {
	return e.Err
}

// DetectionError reports a detector backend failure while processing a frame.
type DetectionError struct {
	Err error
}

func (e *DetectionError) Error() string {
	return fmt.Sprintf("face detection failed: %v", e.Err)
}

func (e *DetectionError) Unwrap() error {
	return e.Err
}

// SelectorError reports an invalid configuration selector. It is distinct
// from an empty query result: a caller seeing SelectorError has a broken
// configuration, not a frame without faces.
type SelectorError struct {
	Field string
	Value string
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("invalid %s selector: %q", e.Field, e.Value)
}
