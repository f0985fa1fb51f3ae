package domain

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"loctool.dev/pkg/loctool/internal/adapter"
	m "loctool.dev/pkg/loctool/internal/model"
)

func TestContainsRange(t *testing.T) {
	tests := []struct {
		name string
		text string
		rng  m.CodepointRange
		want bool
	}{
		{"han character", "Hello 世", m.HanRange, true},
		{"ascii only", "Hello World", m.HanRange, false},
		{"empty", "", m.HanRange, false},
		{"low bound inclusive", string(rune(0x4e00)), m.HanRange, true},
		{"high bound inclusive", string(rune(0x9fff)), m.HanRange, true},
		{"just below range", string(rune(0x4dff)), m.HanRange, false},
		{"just above range", string(rune(0xa000)), m.HanRange, false},
		{"japanese kana is outside han", "こんにちは", m.HanRange, false},
		{"custom range", "naïve", m.CodepointRange{Low: 0xe0, High: 0xff}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsRange(tt.text, tt.rng))
		})
	}
}

func TestMatchContent_PoliciesAgree(t *testing.T) {
	inputs := []string{
		"",
		"const x = 1;\n",
		"line one\nline two\nconst x = \"你好\";\n",
		"no newline at end 中",
		"first 字\nsecond\n",
		"\n\n\n",
	}

	for _, input := range inputs {
		whole := MatchContent(input, m.HanRange, m.MatchWholeFile)
		lines := MatchContent(input, m.HanRange, m.MatchLineByLine)
		assert.Equal(t, whole, lines, "input %q", input)
		assert.Equal(t, ContainsRange(input, m.HanRange), whole, "input %q", input)
	}
}

func TestScanner_Scan(t *testing.T) {
	t.Run("finds only files with characters in range", func(t *testing.T) {
		root := t.TempDir()
		writeTree(t, root, map[string]string{
			"a.tsx": `const x = "你好";`,
			"b.ts":  `const y = "hi";`,
		})

		s := NewScanner(adapter.NewLocalSourceFSAdapter(), NewTreeWalker(adapter.NewLocalSourceFSAdapter()))

		result, err := s.Scan(context.Background(), m.ScanTarget{
			Root:       m.Path(root),
			Extensions: []string{".tsx", ".ts"},
			Range:      m.HanRange,
		})
		require.NoError(t, err)

		assert.Equal(t, []m.Path{m.Path(filepath.Join(root, "a.tsx"))}, result.Files)
		assert.Empty(t, result.Errors)
		assert.False(t, result.RootMissing)
	})

	t.Run("keeps discovery order and ignores other extensions", func(t *testing.T) {
		root := t.TempDir()
		writeTree(t, root, map[string]string{
			"z.ts":              "// 注释",
			"a/page.tsx":        "<p>設定</p>",
			"a/notes.md":        "中文",
			"b/deep/button.tsx": "label: '按钮'",
			"b/clean.tsx":       "label: 'Button'",
		})

		s := NewScanner(adapter.NewLocalSourceFSAdapter(), NewTreeWalker(adapter.NewLocalSourceFSAdapter()))

		for _, policy := range []m.MatchPolicy{m.MatchWholeFile, m.MatchLineByLine} {
			result, err := s.Scan(context.Background(), m.ScanTarget{
				Root:       m.Path(root),
				Extensions: []string{".ts", ".tsx"},
				Range:      m.HanRange,
				Policy:     policy,
			})
			require.NoError(t, err)

			assert.Equal(t, []m.Path{
				m.Path(filepath.Join(root, "a", "page.tsx")),
				m.Path(filepath.Join(root, "b", "deep", "button.tsx")),
				m.Path(filepath.Join(root, "z.ts")),
			}, result.Files, "policy %s", policy)
		}
	})

	t.Run("empty directory yields empty result", func(t *testing.T) {
		s := NewScanner(adapter.NewLocalSourceFSAdapter(), NewTreeWalker(adapter.NewLocalSourceFSAdapter()))

		result, err := s.Scan(context.Background(), m.ScanTarget{Root: m.Path(t.TempDir()), Range: m.HanRange})
		require.NoError(t, err)

		assert.NotNil(t, result.Files)
		assert.Empty(t, result.Files)
		assert.False(t, result.RootMissing)
	})

	t.Run("missing root is reported, not an error", func(t *testing.T) {
		s := NewScanner(adapter.NewLocalSourceFSAdapter(), NewTreeWalker(adapter.NewLocalSourceFSAdapter()))

		result, err := s.Scan(context.Background(), m.ScanTarget{
			Root:  m.Path(filepath.Join(t.TempDir(), "app", "jp")),
			Range: m.HanRange,
		})
		require.NoError(t, err)

		assert.True(t, result.RootMissing)
		assert.Empty(t, result.Files)
	})

	t.Run("invalid utf-8 is recorded and the scan continues", func(t *testing.T) {
		root := t.TempDir()
		writeTree(t, root, map[string]string{
			"bad.ts":  "\xff\xfe broken",
			"good.ts": "中",
		})

		s := NewScanner(adapter.NewLocalSourceFSAdapter(), NewTreeWalker(adapter.NewLocalSourceFSAdapter()))

		result, err := s.Scan(context.Background(), m.ScanTarget{Root: m.Path(root), Range: m.HanRange})
		require.NoError(t, err)

		assert.Equal(t, []m.Path{m.Path(filepath.Join(root, "good.ts"))}, result.Files)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, m.Path(filepath.Join(root, "bad.ts")), result.Errors[0].Path)
		assert.ErrorIs(t, result.Errors[0], ErrInvalidUTF8)
	})

	t.Run("unreadable file is recorded and the scan continues", func(t *testing.T) {
		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("permission bits are not enforced")
		}

		root := t.TempDir()
		writeTree(t, root, map[string]string{
			"locked.ts": "中",
			"open.ts":   "中",
		})
		locked := filepath.Join(root, "locked.ts")
		require.NoError(t, os.Chmod(locked, 0o000))
		t.Cleanup(func() { _ = os.Chmod(locked, 0o644) })

		s := NewScanner(adapter.NewLocalSourceFSAdapter(), NewTreeWalker(adapter.NewLocalSourceFSAdapter()))

		result, err := s.Scan(context.Background(), m.ScanTarget{Root: m.Path(root), Range: m.HanRange})
		require.NoError(t, err)

		assert.Equal(t, []m.Path{m.Path(filepath.Join(root, "open.ts"))}, result.Files)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, m.Path(locked), result.Errors[0].Path)
	})

	t.Run("invalid range is rejected", func(t *testing.T) {
		s := NewScanner(adapter.NewLocalSourceFSAdapter(), NewTreeWalker(adapter.NewLocalSourceFSAdapter()))

		_, err := s.Scan(context.Background(), m.ScanTarget{
			Root:  m.Path(t.TempDir()),
			Range: m.CodepointRange{Low: 0x9fff, High: 0x4e00},
		})
		assert.ErrorIs(t, err, m.ErrInvalidRange)
	})
}
