package intellidocs

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStager(t *testing.T) *Stager {
	t.Helper()
	root := t.TempDir()
	stager, err := NewStager(StagerConfig{
		ReposDir:   filepath.Join(root, "temp_repos"),
		UploadsDir: filepath.Join(root, "temp_uploads"),
	})
	require.NoError(t, err)
	return stager
}

func bytesUpload(name string, data []byte) Upload {
	return Upload{
		Filename: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func stringUpload(name, content string) Upload {
	return bytesUpload(name, []byte(content))
}

type zipEntry struct {
	name    string
	content string
}

func buildZip(t *testing.T, entries ...zipEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		if !strings.HasSuffix(e.name, "/") {
			_, err = w.Write([]byte(e.content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"../../evil.txt":         "evil.txt",
		"My cool movie.mov":      "My_cool_movie.mov",
		`..\..\windows.ini`:      "windows.ini",
		"/etc/passwd":            "etc_passwd",
		"main.py":                "main.py",
		"résumé.pdf":             "rsum.pdf",
		"...":                    "",
		"":                       "",
		"con.txt":                "_con.txt",
		"  spaced   name  .go  ": "spaced_name_.go",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeFilename(in), "input %q", in)
	}
}

func TestStageNoInput(t *testing.T) {
	stager := newTestStager(t)
	_, err := stager.Stage(context.Background(), Source{})
	assert.ErrorIs(t, err, ErrNoInput)

	_, err = stager.Stage(context.Background(), Source{RepoURL: "   ", Archive: &Upload{}})
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestSaveEmptySelection(t *testing.T) {
	stager := newTestStager(t)
	_, err := stager.Stage(context.Background(), Source{FilesField: true})
	assert.ErrorIs(t, err, ErrEmptySelection)

	_, err = stager.Save([]Upload{{Filename: ""}, stringUpload("a.txt", "a")})
	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.Empty(t, dirEntries(t, stager.config.UploadsDir))
}

func TestSaveStripsDirectoryComponents(t *testing.T) {
	stager := newTestStager(t)
	stage, err := stager.Save([]Upload{
		stringUpload("../../evil.txt", "evil"),
		stringUpload("app.py", "print('hi')"),
		stringUpload("...", "dropped"),
	})
	require.NoError(t, err)
	defer stage.Cleanup()

	assert.Equal(t, filesStageName, stage.Name)
	assert.ElementsMatch(t, []string{"evil.txt", "app.py"}, dirEntries(t, stage.Dir))
	data, err := os.ReadFile(filepath.Join(stage.Dir, "evil.txt"))
	require.NoError(t, err)
	assert.Equal(t, "evil", string(data))

	_, err = os.Stat(filepath.Join(filepath.Dir(filepath.Dir(stage.Dir)), "evil.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestStageDirectoriesAreUniquePerRequest(t *testing.T) {
	stager := newTestStager(t)
	first, err := stager.Save([]Upload{stringUpload("a.txt", "a")})
	require.NoError(t, err)
	defer first.Cleanup()
	second, err := stager.Save([]Upload{stringUpload("b.txt", "b")})
	require.NoError(t, err)
	defer second.Cleanup()

	assert.NotEqual(t, first.Dir, second.Dir)
	assert.Equal(t, []string{"a.txt"}, dirEntries(t, first.Dir))
	assert.Equal(t, []string{"b.txt"}, dirEntries(t, second.Dir))
}

func TestExtractArchiveRoundTrip(t *testing.T) {
	stager := newTestStager(t)
	archive := buildZip(t,
		zipEntry{name: "A", content: "a"},
		zipEntry{name: "B", content: "b"},
		zipEntry{name: "D/"},
		zipEntry{name: "D/C", content: "c"},
	)

	stage, err := stager.Stage(context.Background(), Source{
		Archive: &Upload{Filename: "project.zip", Open: bytesUpload("project.zip", archive).Open},
		Files:   []Upload{stringUpload("ignored.txt", "x")},
	})
	require.NoError(t, err)

	summary, err := NewSummarizer(SummarizerConfig{}).Summarize(stage.Dir, stage.Name)
	require.NoError(t, err)
	assert.Equal(t, listingHeader+"project_zip/\n    A\n    B\n    D/\n        C\n", listingOf(summary))

	require.NoError(t, stage.Cleanup())
	_, err = os.Stat(stage.Dir)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(stage.Dir + ".zip")
	assert.True(t, os.IsNotExist(err))
}

func TestExtractRejectsPathTraversal(t *testing.T) {
	stager := newTestStager(t)
	archive := buildZip(t,
		zipEntry{name: "ok.txt", content: "ok"},
		zipEntry{name: "../../escaped.txt", content: "bad"},
	)

	_, err := stager.Extract(bytesUpload("evil.zip", archive))
	var ae *ArchiveError
	require.True(t, errors.As(err, &ae), "got %v", err)
	assert.Equal(t, "evil.zip", ae.Name)

	assert.Empty(t, dirEntries(t, stager.config.UploadsDir))
	_, statErr := os.Stat(filepath.Join(filepath.Dir(stager.config.UploadsDir), "escaped.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtractCorruptArchive(t *testing.T) {
	stager := newTestStager(t)
	_, err := stager.Extract(stringUpload("broken.zip", "definitely not a zip"))

	var ae *ArchiveError
	require.True(t, errors.As(err, &ae), "got %v", err)
	assert.Equal(t, "broken.zip", ae.Name)
	assert.Empty(t, dirEntries(t, stager.config.UploadsDir))
}

func TestSafeJoin(t *testing.T) {
	root := filepath.FromSlash("/stage")
	for _, name := range []string{"../x", "a/../../x", `..\x`, "/etc/passwd"} {
		_, err := safeJoin(root, name)
		assert.Error(t, err, name)
	}
	got, err := safeJoin(root, "a/./b/c.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", "b", "c.txt"), got)
}

func TestCloneInvalidRepository(t *testing.T) {
	stager := newTestStager(t)
	missing := filepath.Join(t.TempDir(), "no-such-repo")

	_, err := stager.Stage(context.Background(), Source{RepoURL: missing})
	var ce *CloneError
	require.True(t, errors.As(err, &ce), "got %v", err)
	assert.Equal(t, missing, ce.URL)
	assert.Empty(t, dirEntries(t, stager.config.ReposDir))
}

func TestRepoName(t *testing.T) {
	assert.Equal(t, "repo.git", repoName("https://github.com/user/repo.git"))
	assert.Equal(t, "repo", repoName("https://github.com/user/repo/"))
	assert.Equal(t, "repository", repoName("https://github.com/.."))
}
