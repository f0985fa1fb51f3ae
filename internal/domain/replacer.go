package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"loctool.dev/pkg/loctool/internal/adapter"
	m "loctool.dev/pkg/loctool/internal/model"
)

// Replacer applies a literal, idempotent edit to files.
type Replacer interface {
	// Apply runs job against a single file. Failures are reported through the
	// result's OutcomeFailed, never as a separate error.
	Apply(ctx context.Context, path m.Path, job m.ReplacementJob, dryRun bool) m.ReplaceResult

	// Run applies job to every candidate file under job.Root in walk order.
	Run(ctx context.Context, job m.ReplacementJob, dryRun bool) (m.ReplaceReport, error)
}

type replacer struct {
	fsAdapter adapter.SourceFSAdapter
	walker    TreeWalker
}

// NewReplacer constructs a Replacer that edits files through fsAdapter and
// finds candidates with walker.
func NewReplacer(fsAdapter adapter.SourceFSAdapter, walker TreeWalker) Replacer {
	return &replacer{
		fsAdapter: fsAdapter,
		walker:    walker,
	}
}

func (r *replacer) Apply(ctx context.Context, path m.Path, job m.ReplacementJob, dryRun bool) m.ReplaceResult {
	result := m.ReplaceResult{Path: path}

	if err := ctx.Err(); err != nil {
		result.Outcome = m.OutcomeFailed
		result.Err = err

		return result
	}

	content, err := readText(r.fsAdapter, path)
	if err != nil {
		slog.Error("Failed to read file", "path", path, "error", err)
		result.Outcome = m.OutcomeFailed
		result.Err = fmt.Errorf("read: %w", err)

		return result
	}

	updated, outcome := applyJob(content, job)
	result.Outcome = outcome

	if outcome != m.OutcomeUpdated {
		slog.Debug("File left unchanged", "path", path, "outcome", outcome.String())
		return result
	}

	if dryRun {
		result.Diff = unifiedDiff(path, content, updated)
		return result
	}

	if err := r.fsAdapter.WriteFile(path, []byte(updated)); err != nil {
		slog.Error("Failed to write file", "path", path, "error", err)
		result.Outcome = m.OutcomeFailed
		result.Err = fmt.Errorf("write: %w", err)

		return result
	}

	slog.Debug("File updated", "path", path)

	return result
}

// applyJob decides the outcome for content and returns the edited text when
// the outcome is OutcomeUpdated.
func applyJob(content string, job m.ReplacementJob) (string, m.Outcome) {
	if job.Marker != "" && !strings.Contains(content, job.Marker) {
		return content, m.OutcomeSkipped
	}

	if job.Guard != "" && strings.Contains(content, job.Guard) {
		return content, m.OutcomeAlreadyApplied
	}

	if !strings.Contains(content, job.Target) {
		return content, m.OutcomeNotFound
	}

	updated := strings.Replace(content, job.Target, job.Replacement, 1)
	if updated == content {
		return content, m.OutcomeAlreadyApplied
	}

	return updated, m.OutcomeUpdated
}

func unifiedDiff(path m.Path, before, after string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + string(path),
		ToFile:   "b/" + string(path),
		Context:  3,
	})
	if err != nil {
		slog.Warn("Failed to render diff", "path", path, "error", err)
		return ""
	}

	return diff
}

func (r *replacer) Run(ctx context.Context, job m.ReplacementJob, dryRun bool) (m.ReplaceReport, error) {
	report := m.ReplaceReport{Job: job, DryRun: dryRun, Results: []m.ReplaceResult{}}

	if err := job.Validate(); err != nil {
		return report, err
	}

	slog.Debug("Starting replace", "root", job.Root, "dirContains", job.DirContains, "files", job.FileNames, "dryRun", dryRun)

	opts := WalkOptions{
		Root:        job.Root,
		DirContains: job.DirContains,
		FileNames:   job.FileNames,
		Extensions:  job.Extensions,
		Exclude:     job.Exclude,
	}

	for path, err := range r.walker.Files(ctx, opts) {
		if err != nil {
			if errors.Is(err, ErrRootNotFound) {
				slog.Debug("Replace root missing", "root", job.Root)
				report.RootMissing = true

				return report, nil
			}

			var fileErr m.FileError
			if errors.As(err, &fileErr) {
				report.Results = append(report.Results, m.ReplaceResult{
					Path:    fileErr.Path,
					Outcome: m.OutcomeFailed,
					Err:     fileErr.Err,
				})

				continue
			}

			return report, err
		}

		report.Results = append(report.Results, r.Apply(ctx, path, job, dryRun))
	}

	slog.Debug("Replace finished", "root", job.Root, "files", len(report.Results), "updated", report.Count(m.OutcomeUpdated))

	return report, nil
}
