package model

import "errors"

// ErrEmptyTarget is returned when a replacement job has nothing to search for.
var ErrEmptyTarget = errors.New("target substring must not be empty")

// ReplacementJob describes one literal edit applied to every candidate file
// under Root.
type ReplacementJob struct {
	Root        Path
	DirContains string
	FileNames   []string
	Extensions  []string
	Exclude     []string

	Marker      string // must be present for the file to be considered
	Guard       string // presence means the edit was already applied
	Target      string
	Replacement string
}

// Validate checks that the job can be applied.
func (j ReplacementJob) Validate() error {
	if j.Target == "" {
		return ErrEmptyTarget
	}

	return nil
}

// Outcome is the result of applying a ReplacementJob to a single file.
type Outcome int

const (
	// OutcomeSkipped indicates the file does not carry the required marker.
	OutcomeSkipped Outcome = iota
	// OutcomeAlreadyApplied indicates the guard is present or the edit changes nothing.
	OutcomeAlreadyApplied
	// OutcomeUpdated indicates the file was rewritten.
	OutcomeUpdated
	// OutcomeNotFound indicates the target substring is absent.
	OutcomeNotFound
	// OutcomeFailed indicates the file could not be read or written.
	OutcomeFailed
)

// Outcomes lists every outcome in display order.
var Outcomes = []Outcome{
	OutcomeUpdated,
	OutcomeAlreadyApplied,
	OutcomeNotFound,
	OutcomeSkipped,
	OutcomeFailed,
}

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeAlreadyApplied:
		return "already-applied"
	case OutcomeUpdated:
		return "updated"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ReplaceResult represents the result of applying a job to one file.
type ReplaceResult struct {
	Path    Path
	Outcome Outcome
	Err     error  // set only when Outcome is OutcomeFailed
	Diff    string // unified diff, populated in dry-run mode
}

// ReplaceReport collects the per-file results of a replace run in walk order.
type ReplaceReport struct {
	Job         ReplacementJob
	Results     []ReplaceResult
	DryRun      bool
	RootMissing bool
}

// Count returns how many files ended with the given outcome.
func (r ReplaceReport) Count(outcome Outcome) int {
	n := 0

	for _, result := range r.Results {
		if result.Outcome == outcome {
			n++
		}
	}

	return n
}
