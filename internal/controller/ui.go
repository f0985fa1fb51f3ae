// Package controller provides output adapters for displaying scan and replace results.
package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	m "loctool.dev/pkg/loctool/internal/model"
)

// Format selects how results are rendered.
type Format string

// Available output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a format name into a Format. An empty name selects FormatText.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}

	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", name)
}

// UI defines the interface for displaying results.
// Implementations can use different output methods (line-oriented text, JSON, YAML).
type UI interface {
	DisplayScanResult(ctx context.Context, result m.ScanResult) error
	DisplayReplaceReport(ctx context.Context, report m.ReplaceReport) error
}

// NewUI returns the UI implementation for format, writing through cmd's output.
// color enables terminal styling for the text format.
func NewUI(cmd *cobra.Command, format Format, color bool) (UI, error) {
	switch format {
	case "", FormatText:
		return NewSimpleUI(cmd, color), nil
	case FormatJSON, FormatYAML:
		return NewStructuredUI(cmd, format), nil
	}

	return nil, fmt.Errorf("unknown output format %q", format)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}
