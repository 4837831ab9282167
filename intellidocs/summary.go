package intellidocs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	log "github.com/rs/zerolog/log"
)

const (
	listingHeader  = "Project file structure:\n"
	snippetsHeader = "\nKey code snippets:\n"
	truncatedNote  = "\n[summary truncated]\n"
)

var (
	errInvalidUTF8  = errors.New("invalid utf-8 sequence")
	errOutsideStage = errors.New("symlink target is outside the project root")
)

// SummarizerConfig holds the configuration for the summarizer
type SummarizerConfig struct {
	// MaxBytes caps the summary length; zero leaves it unbounded
	MaxBytes          int
	AdditionalIgnores []string
}

// Summarizer builds the structure summary handed to the README prompt
type Summarizer struct {
	config         SummarizerConfig
	ignorePatterns *IgnorePatterns
}

// NewSummarizer creates a new Summarizer instance
func NewSummarizer(config SummarizerConfig) *Summarizer {
	return &Summarizer{
		config:         config,
		ignorePatterns: newIgnorePatterns(config.AdditionalIgnores),
	}
}

// Summarize walks root and returns the listing followed by key file excerpts.
// name labels the root directory in the listing.
func (s *Summarizer) Summarize(root, name string) (string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("failed to stat project root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("project root %s is not a directory", root)
	}
	if name == "" {
		name = filepath.Base(root)
		if abs, err := filepath.Abs(root); err == nil {
			name = filepath.Base(abs)
		}
	}
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project root: %w", err)
	}
	w := &walker{
		Summarizer: s,
		root:       realRoot,
	}
	w.listing.WriteString(listingHeader)
	w.snippets.WriteString(snippetsHeader)
	if err := w.walk(root, name, 0); err != nil {
		return "", err
	}
	summary := w.listing.String() + w.snippets.String()
	if s.config.MaxBytes > 0 && len(summary) > s.config.MaxBytes {
		log.Debug().Int("size", len(summary)).Int("max", s.config.MaxBytes).Msg("truncating summary")
		summary = truncateUTF8(summary, s.config.MaxBytes) + truncatedNote
	}
	log.Debug().Str("path", root).Int("size", len(summary)).Msg("summarized project")
	return summary, nil
}

// walker carries the output buffers and the resolved root for a single Summarize call
type walker struct {
	*Summarizer
	root              string
	listing, snippets strings.Builder
}

func (w *walker) walk(dir, name string, level int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	fmt.Fprintf(&w.listing, "%s%s/\n", indent(level), name)
	var subdirs []os.DirEntry
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.Type()&fs.ModeSymlink != 0 {
			// symlinked directories are neither listed nor followed
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				continue
			}
		}
		if entry.IsDir() {
			if !w.ignorePatterns.skipDir(entry.Name()) {
				subdirs = append(subdirs, entry)
			}
			continue
		}
		if w.ignorePatterns.skipFile(entry.Name()) {
			continue
		}
		fmt.Fprintf(&w.listing, "%s%s\n", indent(level+1), entry.Name())
		if !IsKeyFile(entry.Name()) {
			continue
		}
		content, err := w.readKeyFile(path)
		if err != nil {
			log.Debug().Err(err).Msg("skipping unreadable key file")
			fmt.Fprintf(&w.snippets, "\n--- Could not read content of %s ---\n", entry.Name())
			continue
		}
		fmt.Fprintf(&w.snippets, "\n--- Content of %s ---\n%s\n---------------------\n", entry.Name(), content)
	}
	for _, sub := range subdirs {
		if err := w.walk(filepath.Join(dir, sub.Name()), sub.Name(), level+1); err != nil {
			return err
		}
	}
	return nil
}

// readKeyFile reads an excerpt of path, refusing symlinks that resolve outside the root
func (w *walker) readKeyFile(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", &UnreadableFileError{Path: path, Err: err}
	}
	rel, err := filepath.Rel(w.root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &UnreadableFileError{Path: path, Err: errOutsideStage}
	}
	return readExcerpt(resolved, keyFileExcerptChars)
}

// readExcerpt returns the first n characters of a UTF-8 text file
func readExcerpt(path string, n int) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", &UnreadableFileError{Path: path, Err: err}
	}
	defer file.Close()
	reader := bufio.NewReader(file)
	var out strings.Builder
	for i := 0; i < n; i++ {
		r, size, err := reader.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", &UnreadableFileError{Path: path, Err: err}
		}
		if r == utf8.RuneError && size == 1 {
			return "", &UnreadableFileError{Path: path, Err: errInvalidUTF8}
		}
		out.WriteRune(r)
	}
	return out.String(), nil
}

func indent(level int) string {
	return strings.Repeat(" ", 4*level)
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
