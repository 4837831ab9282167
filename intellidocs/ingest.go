package intellidocs

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/google/uuid"
	log "github.com/rs/zerolog/log"
)

const (
	archiveStageName = "project_zip"
	filesStageName   = "project_files"
)

// Upload is a single uploaded file
type Upload struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

// Source is the request payload for README generation.
// FilesField is set when the request carried a "files" field, even an empty one.
type Source struct {
	RepoURL    string
	Archive    *Upload
	Files      []Upload
	FilesField bool
}

// Stage is a staged project tree owned by a single request
type Stage struct {
	Dir   string
	Name  string
	extra []string
}

// Cleanup removes the staging directory and any files saved next to it
func (st *Stage) Cleanup() error {
	if st == nil {
		return nil
	}
	var errs []error
	for _, p := range st.extra {
		errs = append(errs, RemoveStaging(p))
	}
	errs = append(errs, RemoveStaging(st.Dir))
	return errors.Join(errs...)
}

// StagerConfig holds the staging roots and clone credentials
type StagerConfig struct {
	ReposDir   string
	UploadsDir string
	// GitHubToken is used for HTTP basic auth when cloning; optional
	GitHubToken string
}

// Stager materializes a Source as a local directory
type Stager struct {
	config StagerConfig
}

// NewStager creates a new Stager and ensures the staging roots exist
func NewStager(config StagerConfig) (*Stager, error) {
	for _, dir := range []string{config.ReposDir, config.UploadsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create staging root %s: %w", dir, err)
		}
	}
	return &Stager{config: config}, nil
}

// Stage picks exactly one ingestion strategy: repository URL, then archive, then files
func (s *Stager) Stage(ctx context.Context, src Source) (*Stage, error) {
	switch {
	case strings.TrimSpace(src.RepoURL) != "":
		return s.Clone(ctx, strings.TrimSpace(src.RepoURL))
	case src.Archive != nil && src.Archive.Filename != "":
		return s.Extract(*src.Archive)
	case src.FilesField:
		return s.Save(src.Files)
	default:
		return nil, ErrNoInput
	}
}

// Clone clones url (depth 1) into a fresh staging directory
func (s *Stager) Clone(ctx context.Context, url string) (*Stage, error) {
	name := repoName(url)
	stage := &Stage{
		Dir:  filepath.Join(s.config.ReposDir, name+"-"+uuid.New().String()),
		Name: name,
	}
	if err := RemoveStaging(stage.Dir); err != nil {
		return nil, fmt.Errorf("failed to clear staging directory: %w", err)
	}
	cloneOpts := &git.CloneOptions{
		URL:   url,
		Depth: 1,
	}
	if s.config.GitHubToken != "" {
		log.Debug().Msg("using GitHub token for authentication")
		cloneOpts.Auth = &http.BasicAuth{
			Username: "git", // can be anything but not empty
			Password: s.config.GitHubToken,
		}
	}
	if _, err := git.PlainCloneContext(ctx, stage.Dir, false, cloneOpts); err != nil {
		// go-git may leave a partial tree behind
		if cerr := stage.Cleanup(); cerr != nil {
			log.Warn().Err(cerr).Str("path", stage.Dir).Msg("failed to remove partial clone")
		}
		return nil, &CloneError{URL: url, Err: err}
	}
	log.Debug().Str("url", url).Str("path", stage.Dir).Msg("cloned repository")
	return stage, nil
}

// Extract saves an uploaded zip archive and extracts it into a fresh staging directory
func (s *Stager) Extract(archive Upload) (*Stage, error) {
	stage, err := s.newUploadStage(archiveStageName)
	if err != nil {
		return nil, err
	}
	archivePath := stage.Dir + ".zip"
	stage.extra = append(stage.extra, archivePath)
	if err := saveUpload(archive, archivePath); err != nil {
		stage.cleanupQuietly()
		return nil, &ArchiveError{Name: archive.Filename, Err: err}
	}
	if err := extractZip(archivePath, stage.Dir); err != nil {
		stage.cleanupQuietly()
		var ae *ArchiveError
		if errors.As(err, &ae) {
			ae.Name = archive.Filename
			return nil, ae
		}
		return nil, &ArchiveError{Name: archive.Filename, Err: err}
	}
	log.Debug().Str("archive", archive.Filename).Str("path", stage.Dir).Msg("extracted archive")
	return stage, nil
}

// Save writes individually uploaded files, flattened, into a fresh staging directory
func (s *Stager) Save(files []Upload) (*Stage, error) {
	if len(files) == 0 || files[0].Filename == "" {
		return nil, ErrEmptySelection
	}
	stage, err := s.newUploadStage(filesStageName)
	if err != nil {
		return nil, err
	}
	saved := 0
	for _, file := range files {
		name := SanitizeFilename(file.Filename)
		if name == "" {
			log.Debug().Str("filename", file.Filename).Msg("skipping file with unusable name")
			continue
		}
		if err := saveUpload(file, filepath.Join(stage.Dir, name)); err != nil {
			stage.cleanupQuietly()
			return nil, fmt.Errorf("failed to save %s: %w", name, err)
		}
		saved++
	}
	log.Debug().Int("count", saved).Str("path", stage.Dir).Msg("saved uploaded files")
	return stage, nil
}

func (s *Stager) newUploadStage(name string) (*Stage, error) {
	stage := &Stage{
		Dir:  filepath.Join(s.config.UploadsDir, name+"-"+uuid.New().String()),
		Name: name,
	}
	if err := RemoveStaging(stage.Dir); err != nil {
		return nil, fmt.Errorf("failed to clear staging directory: %w", err)
	}
	if err := os.MkdirAll(stage.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	return stage, nil
}

func (st *Stage) cleanupQuietly() {
	if err := st.Cleanup(); err != nil {
		log.Warn().Err(err).Str("path", st.Dir).Msg("failed to remove staging directory")
	}
}

func saveUpload(upload Upload, dest string) error {
	if upload.Open == nil {
		return fmt.Errorf("upload %s has no content", upload.Filename)
	}
	src, err := upload.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	return out.Close()
}

func extractZip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return &ArchiveError{Err: fmt.Errorf("failed to open zip: %w", err)}
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := safeJoin(destDir, f.Name)
		if err != nil {
			return &ArchiveError{Entry: f.Name, Err: err}
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		if err := extractZipFile(f, target); err != nil {
			return &ArchiveError{Entry: f.Name, Err: err}
		}
	}
	return nil
}

func extractZipFile(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open file in zip: %w", err)
	}
	defer rc.Close()
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("failed to extract file: %w", err)
	}
	return out.Close()
}

// safeJoin resolves an archive entry name inside root, rejecting anything that escapes it
func safeJoin(root, name string) (string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	if path.IsAbs(name) || filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return "", fmt.Errorf("absolute path in archive")
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return "", fmt.Errorf("path traversal in archive")
		}
	}
	cleaned := path.Clean("/" + name)
	if cleaned == "/" {
		return root, nil
	}
	return filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(cleaned, "/"))), nil
}

func repoName(url string) string {
	name := path.Base(strings.TrimRight(url, "/"))
	name = SanitizeFilename(name)
	if name == "" {
		return "repository"
	}
	return name
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
	windowsDeviceNames  = map[string]bool{
		"CON": true, "AUX": true, "COM1": true, "COM2": true, "COM3": true, "COM4": true,
		"LPT1": true, "LPT2": true, "LPT3": true, "PRN": true, "NUL": true,
	}
)

// SanitizeFilename reduces an uploaded filename to a safe base name.
// Path separators become word breaks, whitespace runs become underscores,
// anything outside [A-Za-z0-9_.-] is dropped and leading/trailing dots and
// underscores are trimmed, so "../../evil.txt" becomes "evil.txt".
func SanitizeFilename(name string) string {
	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	if name != "" && windowsDeviceNames[strings.ToUpper(strings.SplitN(name, ".", 2)[0])] {
		name = "_" + name
	}
	return name
}
