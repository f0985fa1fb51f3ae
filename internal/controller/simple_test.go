package controller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "loctool.dev/pkg/loctool/internal/model"
)

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cmd := &cobra.Command{Use: "test"}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	return cmd, out
}

func TestSimpleUI_DisplayScanResult(t *testing.T) {
	cmd, out := newTestCmd()
	ui := NewSimpleUI(cmd, false)

	err := ui.DisplayScanResult(context.Background(), m.ScanResult{
		Target: m.ScanTarget{Root: "app/es", Range: m.HanRange},
		Files:  []m.Path{"app/es/page.tsx", "app/es/about/page.tsx"},
		Errors: []m.FileError{{Path: "app/es/bad.ts", Err: errors.New("content is not valid UTF-8")}},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"Error reading app/es/bad.ts: content is not valid UTF-8",
		"Files containing characters in U+4E00..U+9FFF under app/es:",
		"app/es/page.tsx",
		"app/es/about/page.tsx",
		"2 files found",
	}, lines)
}

func TestSimpleUI_DisplayScanResult_Empty(t *testing.T) {
	cmd, out := newTestCmd()
	ui := NewSimpleUI(cmd, false)

	err := ui.DisplayScanResult(context.Background(), m.ScanResult{
		Target: m.ScanTarget{Root: "app/en", Range: m.HanRange},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(out.String(), "0 files found\n"))
}

func TestSimpleUI_DisplayScanResult_RootMissing(t *testing.T) {
	cmd, out := newTestCmd()
	ui := NewSimpleUI(cmd, false)

	err := ui.DisplayScanResult(context.Background(), m.ScanResult{
		Target:      m.ScanTarget{Root: "app/jp", Range: m.HanRange},
		RootMissing: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Directory app/jp does not exist.\n0 files found\n", out.String())
}

func TestSimpleUI_DisplayReplaceReport(t *testing.T) {
	cmd, out := newTestCmd()
	ui := NewSimpleUI(cmd, false)

	err := ui.DisplayReplaceReport(context.Background(), m.ReplaceReport{
		Job: m.ReplacementJob{Root: "app"},
		Results: []m.ReplaceResult{
			{Path: "app/en/settings/page.tsx", Outcome: m.OutcomeUpdated},
			{Path: "app/jp/settings/page.tsx", Outcome: m.OutcomeAlreadyApplied},
			{Path: "app/es/settings/page.tsx", Outcome: m.OutcomeNotFound},
			{Path: "app/de/settings/page.tsx", Outcome: m.OutcomeSkipped},
			{Path: "app/zh/settings/page.tsx", Outcome: m.OutcomeFailed, Err: errors.New("read: permission denied")},
		},
	})
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "Updated app/en/settings/page.tsx\n")
	assert.Contains(t, output, "Skipping app/jp/settings/page.tsx, already applied\n")
	assert.Contains(t, output, "Could not find target string in app/es/settings/page.tsx\n")
	assert.Contains(t, output, "Skipping app/de/settings/page.tsx, marker not found\n")
	assert.Contains(t, output, "Error processing app/zh/settings/page.tsx: read: permission denied\n")
	assert.Contains(t, output, "already-applied")
	assert.Contains(t, output, "TOTAL")
}

func TestSimpleUI_DisplayReplaceReport_DryRun(t *testing.T) {
	cmd, out := newTestCmd()
	ui := NewSimpleUI(cmd, false)

	diff := "--- a/page.tsx\n+++ b/page.tsx\n@@ -1 +1,2 @@\n de\n+jp\n"
	err := ui.DisplayReplaceReport(context.Background(), m.ReplaceReport{
		DryRun:  true,
		Results: []m.ReplaceResult{{Path: "page.tsx", Outcome: m.OutcomeUpdated, Diff: diff}},
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Would update page.tsx\n"+diff)
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	cmd, out := newTestCmd()
	ui := NewSimpleUI(cmd, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, ui.DisplayScanResult(ctx, m.ScanResult{}), context.Canceled)
	assert.ErrorIs(t, ui.DisplayReplaceReport(ctx, m.ReplaceReport{}), context.Canceled)
	assert.Empty(t, out.String())
}

func TestCountLine(t *testing.T) {
	assert.Equal(t, "0 files found", countLine(0))
	assert.Equal(t, "1 file found", countLine(1))
	assert.Equal(t, "12 files found", countLine(12))
}
