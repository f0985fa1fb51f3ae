// Package domain holds the scan and replace logic of loctool.
package domain

import (
	"context"
	"fmt"
	"log/slog"

	"loctool.dev/pkg/loctool/internal/controller"
	m "loctool.dev/pkg/loctool/internal/model"
)

// ScanArgs contains the arguments for a scan run.
type ScanArgs struct {
	Target m.ScanTarget
}

// ReplaceArgs contains the arguments for a replace run.
type ReplaceArgs struct {
	Job    m.ReplacementJob
	DryRun bool
}

// Workflow drives a command from input arguments to displayed results.
// Per-file failures and missing roots are displayed, not returned; an error
// means the run could not start or its output could not be written.
type Workflow interface {
	Scan(ctx context.Context, args ScanArgs) error
	Replace(ctx context.Context, args ReplaceArgs) error
}

type workflow struct {
	controller.UI
	Scanner
	Replacer
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(ui controller.UI, scanner Scanner, replacer Replacer) Workflow {
	return &workflow{
		UI:       ui,
		Scanner:  scanner,
		Replacer: replacer,
	}
}

func (w *workflow) Scan(ctx context.Context, args ScanArgs) error {
	result, err := w.Scanner.Scan(ctx, args.Target)
	if err != nil {
		slog.Error("Failed to scan", "root", args.Target.Root, "error", err)
		return fmt.Errorf("scan: %w", err)
	}

	if err := w.DisplayScanResult(ctx, result); err != nil {
		slog.Error("Failed to display scan result", "error", err)
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

func (w *workflow) Replace(ctx context.Context, args ReplaceArgs) error {
	report, err := w.Run(ctx, args.Job, args.DryRun)
	if err != nil {
		slog.Error("Failed to replace", "root", args.Job.Root, "error", err)
		return fmt.Errorf("replace: %w", err)
	}

	if err := w.DisplayReplaceReport(ctx, report); err != nil {
		slog.Error("Failed to display replace report", "error", err)
		return fmt.Errorf("display: %w", err)
	}

	return nil
}
