package intellidocs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func listingOf(summary string) string {
	listing, _, _ := strings.Cut(summary, snippetsHeader)
	return listing
}

func TestSummarizeSkipsExcludedDirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"app.js":                         "console.log(1)",
		"node_modules/left-pad/index.js": "module.exports = 1",
		".git/HEAD":                      "ref: refs/heads/main",
		"__pycache__/mod.cpython.pyc":    "x",
		"venv/bin/activate":              "x",
		"src/venv/inner.txt":             "x",
		"src/lib.js":                     "x",
	})

	summary, err := NewSummarizer(SummarizerConfig{}).Summarize(root, "proj")
	require.NoError(t, err)

	listing := listingOf(summary)
	for _, name := range []string{"node_modules", ".git", "__pycache__", "venv", "index.js", "HEAD", "activate", "inner.txt"} {
		assert.NotContains(t, listing, name)
	}
	assert.Contains(t, listing, "    app.js\n")
	assert.Contains(t, listing, "    src/\n")
	assert.Contains(t, listing, "        lib.js\n")
}

func TestSummarizeListingOrderAndIndentation(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"A":     "a",
		"B":     "b",
		"D/C":   "c",
		"D/E/F": "f",
	})

	summary, err := NewSummarizer(SummarizerConfig{}).Summarize(root, "project_zip")
	require.NoError(t, err)

	want := listingHeader +
		"project_zip/\n" +
		"    A\n" +
		"    B\n" +
		"    D/\n" +
		"        C\n" +
		"        E/\n" +
		"            F\n"
	assert.Equal(t, want, listingOf(summary))
	assert.True(t, strings.HasSuffix(summary, snippetsHeader))
}

func TestSummarizeKeyFileExcerpts(t *testing.T) {
	root := t.TempDir()
	long := strings.Repeat("é", 1500)
	writeTree(t, root, map[string]string{
		"package.json":          `{"name":"demo"}`,
		"backend/app.py":        long,
		"backend/notes.txt":     "not a key file",
		"web/index.html":        "",
		"requirements.txt.bak":  "flask",
		"docs/requirements.txt": "flask==3.0\n",
	})

	summary, err := NewSummarizer(SummarizerConfig{}).Summarize(root, "proj")
	require.NoError(t, err)

	assert.Contains(t, summary, "\n--- Content of package.json ---\n{\"name\":\"demo\"}\n---------------------\n")
	assert.Contains(t, summary, "\n--- Content of app.py ---\n"+strings.Repeat("é", 1000)+"\n---------------------\n")
	assert.NotContains(t, summary, strings.Repeat("é", 1001))
	assert.Contains(t, summary, "\n--- Content of index.html ---\n\n---------------------\n")
	assert.Contains(t, summary, "\n--- Content of requirements.txt ---\nflask==3.0\n\n---------------------\n")
	assert.NotContains(t, summary, "Content of notes.txt")
	assert.NotContains(t, summary, "Content of requirements.txt.bak")
}

func TestSummarizeUnreadableKeyFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.py"), []byte{'o', 'k', 0xff, 0xfe}, 0o644))
	writeTree(t, root, map[string]string{"server.js": "listen()"})

	summary, err := NewSummarizer(SummarizerConfig{}).Summarize(root, "proj")
	require.NoError(t, err)

	assert.Contains(t, summary, "\n--- Could not read content of main.py ---\n")
	assert.Contains(t, summary, "\n--- Content of server.js ---\nlisten()\n")
	assert.Contains(t, listingOf(summary), "    main.py\n")
}

func TestSummarizeAdditionalIgnores(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":       "package main",
		"docs/guide.md": "guide",
		"image.png":     "png",
	})

	summary, err := NewSummarizer(SummarizerConfig{AdditionalIgnores: []string{"docs", "*.png", " "}}).Summarize(root, "proj")
	require.NoError(t, err)

	listing := listingOf(summary)
	assert.Contains(t, listing, "main.go")
	assert.NotContains(t, listing, "docs/")
	assert.NotContains(t, listing, "guide.md")
	assert.NotContains(t, listing, "image.png")
}

func TestSummarizeMaxBytes(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{}
	for i := 0; i < 50; i++ {
		files[filepath.Join("pkg", strings.Repeat("x", 10)+string(rune('a'+i%26))+string(rune('a'+i/26))+".go")] = "x"
	}
	writeTree(t, root, files)

	unbounded, err := NewSummarizer(SummarizerConfig{}).Summarize(root, "proj")
	require.NoError(t, err)
	require.Greater(t, len(unbounded), 200)

	capped, err := NewSummarizer(SummarizerConfig{MaxBytes: 200}).Summarize(root, "proj")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(capped, truncatedNote))
	assert.Equal(t, 200+len(truncatedNote), len(capped))
	assert.True(t, strings.HasPrefix(unbounded, strings.TrimSuffix(capped, truncatedNote)))
}

func TestSummarizeRootDefaultsToDirectoryName(t *testing.T) {
	root := filepath.Join(t.TempDir(), "my-project")
	writeTree(t, root, map[string]string{"README": "hi"})

	summary, err := NewSummarizer(SummarizerConfig{}).Summarize(root, "")
	require.NoError(t, err)
	assert.Contains(t, summary, listingHeader+"my-project/\n    README\n")
}

func TestSummarizeMissingRoot(t *testing.T) {
	_, err := NewSummarizer(SummarizerConfig{}).Summarize(filepath.Join(t.TempDir(), "missing"), "x")
	assert.Error(t, err)
}

func TestTruncateUTF8(t *testing.T) {
	assert.Equal(t, "ab", truncateUTF8("abé", 3))
	assert.Equal(t, "abé", truncateUTF8("abé", 4))
	assert.Equal(t, "", truncateUTF8("é", 1))
}

func symlinkOrSkip(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
}

func TestSummarizeDoesNotListSymlinkedDirectories(t *testing.T) {
	base := t.TempDir()
	outside := filepath.Join(base, "outside")
	root := filepath.Join(base, "proj")
	writeTree(t, outside, map[string]string{"dep/index.js": "module.exports = 1"})
	writeTree(t, root, map[string]string{"app.js": "x", "lib/util.js": "x"})
	symlinkOrSkip(t, outside, filepath.Join(root, "node_modules"))
	symlinkOrSkip(t, filepath.Join(root, "lib"), filepath.Join(root, "shared"))

	summary, err := NewSummarizer(SummarizerConfig{}).Summarize(root, "proj")
	require.NoError(t, err)

	assert.Equal(t, listingHeader+"proj/\n    app.js\n    lib/\n        util.js\n", listingOf(summary))
}

func TestSummarizeRefusesKeyFileOutsideRoot(t *testing.T) {
	base := t.TempDir()
	secret := filepath.Join(base, "host.env")
	require.NoError(t, os.WriteFile(secret, []byte("GEMINI_API_KEY=host-secret"), 0o644))
	root := filepath.Join(base, "proj")
	writeTree(t, root, map[string]string{"config/requirements.txt": "flask"})
	symlinkOrSkip(t, secret, filepath.Join(root, "package.json"))
	symlinkOrSkip(t, filepath.Join(root, "config", "requirements.txt"), filepath.Join(root, "requirements.txt"))

	summary, err := NewSummarizer(SummarizerConfig{}).Summarize(root, "proj")
	require.NoError(t, err)

	assert.NotContains(t, summary, "host-secret")
	assert.Contains(t, summary, "\n--- Could not read content of package.json ---\n")
	assert.Contains(t, summary, "    package.json\n")
	assert.Contains(t, summary, "\n--- Content of requirements.txt ---\nflask\n")
}
