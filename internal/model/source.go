// Package model defines the data structures shared by the scan and replace workflows.
package model

import "fmt"

// Path represents a file system path.
type Path string

// FileError records a recoverable failure tied to a single file.
// It never aborts a run; it is reported alongside the results.
type FileError struct {
	Path Path
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}
