// Package intellidocs turns a project source into a README prompt.
//
// A Source (repository URL, zip archive or loose files) is staged into a
// per-request directory by a Stager, described by a Summarizer as an indented
// file listing plus excerpts of key files, and rendered into a prompt for the
// model. Staging directories are always removed when the request finishes.
//
// Usage:
//
//	stager, err := intellidocs.NewStager(intellidocs.StagerConfig{
//	    ReposDir:   "temp_repos",
//	    UploadsDir: "temp_uploads",
//	})
//	svc := intellidocs.NewService(model, stager, intellidocs.NewSummarizer(intellidocs.SummarizerConfig{}))
//
//	// Generate a README for a repository
//	readme, err := svc.GenerateReadme(ctx, intellidocs.Source{RepoURL: "https://github.com/user/repo"})
//
//	// Or reformat pasted text as Markdown
//	md, err := svc.FormatText(ctx, rawText, "")
package intellidocs
