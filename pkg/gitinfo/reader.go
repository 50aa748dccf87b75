// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package gitinfo

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate -header ../../license_prefix.txt

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Reader reads information from the git history of content files
//
//counterfeiter:generate . Reader
type Reader interface {
	// LastUpdated returns the time of the last commit changing the file at path.
	// It returns nil if the file has no history.
	LastUpdated(path string) (*time.Time, error)
}

// State defines the state of the repository lookup
type State int

const (
	_ State = iota
	// Prepared repository state
	Prepared
	// Failed repository state
	Failed
)

// Repository reads git information from the repository containing Dir
type Repository struct {
	// Dir is any directory inside the work tree
	Dir           string
	State         State
	PreviousError error

	repo  *gogit.Repository
	root  string
	mutex sync.Mutex
}

// New creates a Repository reader for the work tree containing dir.
// The repository is opened on first use.
func New(dir string) *Repository {
	return &Repository{Dir: dir}
}

func (r *Repository) prepare() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	switch r.State {
	case Failed:
		return r.PreviousError
	case Prepared:
		return nil
	}
	if err := r.open(); err != nil {
		r.State = Failed
		r.PreviousError = err
		return err
	}
	r.State = Prepared
	return nil
}

func (r *Repository) open() error {
	abs, err := filepath.Abs(r.Dir)
	if err != nil {
		return err
	}
	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return fmt.Errorf("failed to open git repository for %s: %w", r.Dir, err)
	}
	w, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open git work tree for %s: %w", r.Dir, err)
	}
	r.repo = repo
	r.root = w.Filesystem.Root()
	return nil
}

// RelPath returns path relative to the root of the work tree, slash separated
func (r *Repository) RelPath(path string) (string, error) {
	if err := r.prepare(); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(r.root, abs)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// LastUpdated returns the committer time of the last commit changing path
func (r *Repository) LastUpdated(path string) (*time.Time, error) {
	rel, err := r.RelPath(path)
	if err != nil {
		return nil, err
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	iter, err := r.repo.Log(&gogit.LogOptions{
		FileName: &rel,
		Order:    gogit.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read git log of %s: %w", rel, err)
	}
	defer iter.Close()
	var last *object.Commit
	last, err = iter.Next()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read git log of %s: %w", rel, err)
	}
	when := last.Committer.When.UTC()
	return &when, nil
}
