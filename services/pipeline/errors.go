package pipeline

import "fmt"

// stage failure wrappers. the orchestrator tags every failure with the
// stage that produced it so the CLI can say which part of the run died
// before exiting non-zero.

type FetchError struct {
	Source string
	Err    error
}

func (e FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e FetchError) Unwrap() error { return e.Err }

type ExtractionError struct {
	Err error
}

func (e ExtractionError) Error() string {
	return fmt.Sprintf("extract: %v", e.Err)
}

func (e ExtractionError) Unwrap() error { return e.Err }

type CleaningError struct {
	Err error
}

func (e CleaningError) Error() string {
	return fmt.Sprintf("clean: %v", e.Err)
}

func (e CleaningError) Unwrap() error { return e.Err }

type ReportingError struct {
	Err error
}

func (e ReportingError) Error() string {
	return fmt.Sprintf("report: %v", e.Err)
}

func (e ReportingError) Unwrap() error { return e.Err }
