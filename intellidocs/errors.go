package intellidocs

import (
	"errors"
	"fmt"
)

var (
	ErrNoInput        = errors.New("no GitHub URL, zip file, or individual files provided")
	ErrEmptySelection = errors.New("no files were selected")
	ErrNoText         = errors.New("no text provided")
)

// CloneError is returned when a remote repository cannot be cloned
type CloneError struct {
	URL string
	Err error
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("failed to clone repository %s: %v", e.URL, e.Err)
}

func (e *CloneError) Unwrap() error { return e.Err }

// ArchiveError is returned for corrupt archives or entries escaping the staging root
type ArchiveError struct {
	Name  string
	Entry string
	Err   error
}

func (e *ArchiveError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("failed to extract %s (entry %q): %v", e.Name, e.Entry, e.Err)
	}
	return fmt.Sprintf("failed to extract %s: %v", e.Name, e.Err)
}

func (e *ArchiveError) Unwrap() error { return e.Err }

// UnreadableFileError never leaves the summarizer; it becomes a placeholder line
type UnreadableFileError struct {
	Path string
	Err  error
}

func (e *UnreadableFileError) Error() string {
	return fmt.Sprintf("could not read %s: %v", e.Path, e.Err)
}

func (e *UnreadableFileError) Unwrap() error { return e.Err }
