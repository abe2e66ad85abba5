package dataset

import "fmt"

// LoadError is returned when the dataset file cannot be turned into a complete set of records.
// It is the only failure the dashboard core can produce.
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unable to load dataset %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("unable to load dataset %s: %s", e.Path, e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func newLoadError(path, reason string, err error) *LoadError {
	return &LoadError{Path: path, Reason: reason, Err: err}
}
