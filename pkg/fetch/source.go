package fetch

import (
	"context"
	"fmt"
	"os"
)

// FetchError is the user-visible failure of the initial dataset fetch.
// The view surfaces it as an error state with a retry action and never
// starts the simulation.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching dataset from %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Source produces one raw dataset document per view activation. No
// incremental updates: a refetch replaces the dataset wholesale.
type Source interface {
	// Fetch retrieves the raw payload bytes
	Fetch(ctx context.Context) ([]byte, error)
	// Name identifies the source in logs and errors
	Name() string
}

// FileSource reads a dataset document from the local filesystem
type FileSource struct {
	Path string
}

// NewFileSource creates a source reading from the given path
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string {
	return "file:" + s.Path
}

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &FetchError{Source: s.Name(), Err: err}
	}
	return data, nil
}
