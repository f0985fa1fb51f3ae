package controller

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	m "loctool.dev/pkg/loctool/internal/model"
)

// StructuredUI implements UI by emitting one JSON or YAML document per command.
type StructuredUI struct {
	cmd    *cobra.Command
	format Format
}

// NewStructuredUI creates a new StructuredUI for FormatJSON or FormatYAML.
func NewStructuredUI(cmd *cobra.Command, format Format) *StructuredUI {
	return &StructuredUI{cmd: cmd, format: format}
}

type fileErrorDocument struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

type scanDocument struct {
	Root        string              `json:"root" yaml:"root"`
	Range       string              `json:"range" yaml:"range"`
	Extensions  []string            `json:"extensions" yaml:"extensions"`
	RootMissing bool                `json:"root_missing" yaml:"root_missing"`
	Files       []string            `json:"files" yaml:"files"`
	Errors      []fileErrorDocument `json:"errors" yaml:"errors"`
	Count       int                 `json:"count" yaml:"count"`
}

type replaceResultDocument struct {
	Path    string `json:"path" yaml:"path"`
	Outcome string `json:"outcome" yaml:"outcome"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
	Diff    string `json:"diff,omitempty" yaml:"diff,omitempty"`
}

type replaceDocument struct {
	Root        string                  `json:"root" yaml:"root"`
	DryRun      bool                    `json:"dry_run" yaml:"dry_run"`
	RootMissing bool                    `json:"root_missing" yaml:"root_missing"`
	Results     []replaceResultDocument `json:"results" yaml:"results"`
	Summary     map[string]int          `json:"summary" yaml:"summary"`
}

// DisplayScanResult writes the scan result as a single document.
func (s *StructuredUI) DisplayScanResult(ctx context.Context, result m.ScanResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := scanDocument{
		Root:        string(result.Target.Root),
		Range:       result.Target.Range.String(),
		Extensions:  append([]string{}, result.Target.Extensions...),
		RootMissing: result.RootMissing,
		Files:       make([]string, 0, len(result.Files)),
		Errors:      make([]fileErrorDocument, 0, len(result.Errors)),
		Count:       len(result.Files),
	}

	for _, path := range result.Files {
		doc.Files = append(doc.Files, string(path))
	}

	for _, fileErr := range result.Errors {
		doc.Errors = append(doc.Errors, fileErrorDocument{Path: string(fileErr.Path), Error: fileErr.Err.Error()})
	}

	return s.encode(doc)
}

// DisplayReplaceReport writes the replace report as a single document.
func (s *StructuredUI) DisplayReplaceReport(ctx context.Context, report m.ReplaceReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := replaceDocument{
		Root:        string(report.Job.Root),
		DryRun:      report.DryRun,
		RootMissing: report.RootMissing,
		Results:     make([]replaceResultDocument, 0, len(report.Results)),
		Summary:     make(map[string]int, len(m.Outcomes)),
	}

	for _, result := range report.Results {
		entry := replaceResultDocument{
			Path:    string(result.Path),
			Outcome: result.Outcome.String(),
			Diff:    result.Diff,
		}
		if result.Err != nil {
			entry.Error = result.Err.Error()
		}

		doc.Results = append(doc.Results, entry)
	}

	for _, outcome := range m.Outcomes {
		doc.Summary[outcome.String()] = report.Count(outcome)
	}

	return s.encode(doc)
}

func (s *StructuredUI) encode(doc any) error {
	out := s.cmd.OutOrStdout()

	switch s.format {
	case FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}

		return nil
	case FormatYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)

		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		return encoder.Close()
	}

	return fmt.Errorf("unsupported structured format %q", s.format)
}
