package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "loctool.dev/pkg/loctool/internal/model"
)

// SimpleUI implements UI with line-oriented text written to the command's output.
type SimpleUI struct {
	cmd     *cobra.Command
	palette palette
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, color bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, palette: newPalette(color)}
}

// DisplayScanResult prints read errors, then one matching path per line, then a count.
func (s *SimpleUI) DisplayScanResult(ctx context.Context, result m.ScanResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if result.RootMissing {
		s.printf("Directory %s does not exist.\n", result.Target.Root)
		s.printf("%s\n", countLine(0))

		return nil
	}

	for _, fileErr := range result.Errors {
		s.printf("Error reading %s: %v\n", fileErr.Path, fileErr.Err)
	}

	s.printf("Files containing characters in %s under %s:\n", result.Target.Range, result.Target.Root)

	for _, path := range result.Files {
		s.printf("%s\n", s.palette.file(path))
	}

	s.printf("%s\n", countLine(len(result.Files)))

	return nil
}

// DisplayReplaceReport prints one line per candidate file followed by an outcome table.
func (s *SimpleUI) DisplayReplaceReport(ctx context.Context, report m.ReplaceReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if report.RootMissing {
		s.printf("Directory %s does not exist.\n", report.Job.Root)
		s.printf("%s\n", countLine(0))

		return nil
	}

	for _, result := range report.Results {
		s.printf("%s\n", s.replaceLine(result, report.DryRun))

		if result.Diff != "" {
			s.printf("%s", result.Diff)

			if !strings.HasSuffix(result.Diff, "\n") {
				s.printf("\n")
			}
		}
	}

	s.printf("\n%s", renderOutcomeTable(report))

	return nil
}

func (s *SimpleUI) replaceLine(result m.ReplaceResult, dryRun bool) string {
	path := s.palette.file(result.Path)

	switch result.Outcome {
	case m.OutcomeUpdated:
		label := "Updated"
		if dryRun {
			label = "Would update"
		}

		return fmt.Sprintf("%s %s", s.palette.outcome(result.Outcome, label), path)
	case m.OutcomeAlreadyApplied:
		return fmt.Sprintf("%s %s, already applied", s.palette.outcome(result.Outcome, "Skipping"), path)
	case m.OutcomeSkipped:
		return fmt.Sprintf("%s %s, marker not found", s.palette.outcome(result.Outcome, "Skipping"), path)
	case m.OutcomeNotFound:
		return fmt.Sprintf("%s %s", s.palette.outcome(result.Outcome, "Could not find target string in"), path)
	case m.OutcomeFailed:
		return fmt.Sprintf("%s %s: %v", s.palette.outcome(result.Outcome, "Error processing"), path, result.Err)
	default:
		return fmt.Sprintf("%s %s", result.Outcome, path)
	}
}

func renderOutcomeTable(report m.ReplaceReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Outcome", "Files"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, outcome := range m.Outcomes {
		table.Append([]string{outcome.String(), fmt.Sprintf("%d", report.Count(outcome))})
	}

	table.SetFooter([]string{
		"Total",
		fmt.Sprintf("%d", len(report.Results)),
	})

	table.Render()

	return tableBuffer.String()
}

func countLine(n int) string {
	if n == 1 {
		return "1 file found"
	}

	return fmt.Sprintf("%d files found", n)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
