package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const settingsPage = `const languages = [
    { code: 'zh-hk', name: '繁體中文', nativeName: '繁體中文' },
    { code: 'de', name: '德語', nativeName: 'Deutsch' },
  ];
`

func TestReplaceCmd_DefaultsAddLanguages(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"zh-hk/settings/page.tsx": settingsPage,
		"zh-hk/profile/page.tsx":  settingsPage,
	})
	page := filepath.Join(root, "zh-hk", "settings", "page.tsx")

	output, err := executeCommand(t, newReplaceCmd(), "replace", root)
	require.NoError(t, err)
	assert.Contains(t, output, "Updated "+page)

	data, err := os.ReadFile(page)
	require.NoError(t, err)

	want := `const languages = [
    { code: 'zh-hk', name: '繁體中文', nativeName: '繁體中文' },
    { code: 'de', name: '德語', nativeName: 'Deutsch' },
    { code: 'jp', name: '日語', nativeName: '日本語' },
    { code: 'es', name: '西班牙語', nativeName: 'Español' },
  ];
`
	assert.Equal(t, want, string(data))

	profile, err := os.ReadFile(filepath.Join(root, "zh-hk", "profile", "page.tsx"))
	require.NoError(t, err)
	assert.Equal(t, settingsPage, string(profile))

	output, err = executeCommand(t, newReplaceCmd(), "replace", root)
	require.NoError(t, err)
	assert.Contains(t, output, "Skipping "+page+", already applied")

	again, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Equal(t, want, string(again))
}

func TestReplaceCmd_DryRun(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"en/settings/page.tsx": settingsPage})
	page := filepath.Join(root, "en", "settings", "page.tsx")

	output, err := executeCommand(t, newReplaceCmd(), "replace", root, "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, output, "Would update "+page)
	assert.Contains(t, output, "+    { code: 'jp', name: '日語', nativeName: '日本語' },")

	data, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Equal(t, settingsPage, string(data))
}

func TestReplaceCmd_CustomStrings(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"config/i18n.ts": "locales: ['en']\n"})
	file := filepath.Join(root, "config", "i18n.ts")

	output, err := executeCommand(t, newReplaceCmd(), "replace", root,
		"--dir-contains", "config",
		"--file", "i18n.ts",
		"--marker", "locales:",
		"--guard", "'fr'",
		"--target", "['en']",
		"--replacement", "['en', 'fr']",
	)
	require.NoError(t, err)
	assert.Contains(t, output, "Updated "+file)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "locales: ['en', 'fr']\n", string(data))
}

func TestReplaceCmd_TargetNotFound(t *testing.T) {
	root := t.TempDir()
	content := "const languages = [\n  { code: 'en' },\n];\n"
	writeFiles(t, root, map[string]string{"settings/page.tsx": content})
	page := filepath.Join(root, "settings", "page.tsx")

	output, err := executeCommand(t, newReplaceCmd(), "replace", root)
	require.NoError(t, err)
	assert.Contains(t, output, "Could not find target string in "+page)

	data, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestReplaceCmd_MissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "app")

	output, err := executeCommand(t, newReplaceCmd(), "replace", missing)
	require.NoError(t, err)
	assert.Contains(t, output, "Directory "+missing+" does not exist.")
}

func TestReplaceCmd_EmptyTarget(t *testing.T) {
	_, err := executeCommand(t, newReplaceCmd(), "replace", t.TempDir(), "--target=")
	assert.Error(t, err)
}
