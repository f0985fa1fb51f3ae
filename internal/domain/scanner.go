package domain

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"loctool.dev/pkg/loctool/internal/adapter"
	m "loctool.dev/pkg/loctool/internal/model"
)

// ErrInvalidUTF8 is returned when a file's content is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

// ContainsRange reports whether any character of text lies within rng.
func ContainsRange(text string, rng m.CodepointRange) bool {
	for _, r := range text {
		if rng.Contains(r) {
			return true
		}
	}

	return false
}

// MatchContent applies ContainsRange according to policy. The line policy
// stops at the first matching line; the answer is the same as for the whole
// file policy.
func MatchContent(text string, rng m.CodepointRange, policy m.MatchPolicy) bool {
	if policy != m.MatchLineByLine {
		return ContainsRange(text, rng)
	}

	for line := range strings.Lines(text) {
		if ContainsRange(line, rng) {
			return true
		}
	}

	return false
}

// Scanner finds files containing characters from a code-point range.
type Scanner interface {
	// Scan walks target.Root and returns matching files in discovery order.
	// Per-file read failures and a missing root are recorded in the result;
	// only invalid targets and cancellation are returned as errors.
	Scan(ctx context.Context, target m.ScanTarget) (m.ScanResult, error)
}

type scanner struct {
	fsAdapter adapter.SourceFSAdapter
	walker    TreeWalker
}

// NewScanner constructs a Scanner that reads files through fsAdapter and
// enumerates them with walker.
func NewScanner(fsAdapter adapter.SourceFSAdapter, walker TreeWalker) Scanner {
	return &scanner{
		fsAdapter: fsAdapter,
		walker:    walker,
	}
}

func (s *scanner) Scan(ctx context.Context, target m.ScanTarget) (m.ScanResult, error) {
	result := m.ScanResult{Target: target, Files: []m.Path{}}

	if err := target.Range.Validate(); err != nil {
		return result, err
	}

	slog.Debug("Starting scan", "root", target.Root, "range", target.Range.String(), "policy", target.Policy.String())

	opts := WalkOptions{
		Root:       target.Root,
		Extensions: target.Extensions,
		Exclude:    target.Exclude,
	}

	for path, err := range s.walker.Files(ctx, opts) {
		if err != nil {
			if errors.Is(err, ErrRootNotFound) {
				slog.Debug("Scan root missing", "root", target.Root)
				result.RootMissing = true

				return result, nil
			}

			var fileErr m.FileError
			if errors.As(err, &fileErr) {
				result.Errors = append(result.Errors, fileErr)
				continue
			}

			return result, err
		}

		text, err := readText(s.fsAdapter, path)
		if err != nil {
			slog.Error("Failed to read file", "path", path, "error", err)
			result.Errors = append(result.Errors, m.FileError{Path: path, Err: err})

			continue
		}

		if MatchContent(text, target.Range, target.Policy) {
			slog.Debug("Match", "path", path)
			result.Files = append(result.Files, path)
		}
	}

	slog.Debug("Scan finished", "root", target.Root, "matches", len(result.Files), "errors", len(result.Errors))

	return result, nil
}

// readText loads a whole file and checks that it decodes as UTF-8.
func readText(fsAdapter adapter.SourceFSAdapter, path m.Path) (string, error) {
	data, err := fsAdapter.ReadFile(path)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(data) {
		return "", ErrInvalidUTF8
	}

	return string(data), nil
}
