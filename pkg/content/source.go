// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate -header ../../license_prefix.txt

// Source provides access to the files of a content root.
// All paths are slash separated and relative to the content root.
//
//counterfeiter:generate . Source
type Source interface {
	// Tree lists the files under dir recursively in lexicographic order
	Tree(dir string) ([]string, error)
	// Read returns the content of the file at path
	Read(path string) ([]byte, error)
	// Exists reports whether dir is an existing directory
	Exists(dir string) (bool, error)
}

// NewSource creates a Source reading the content root from fs
func NewSource(fs afero.Fs, root string) Source {
	return &fsSource{fs: fs, root: root}
}

type fsSource struct {
	fs   afero.Fs
	root string
}

func (s *fsSource) abs(p string) string {
	return filepath.Join(s.root, filepath.FromSlash(path.Clean("/" + p)))
}

func (s *fsSource) Tree(dir string) ([]string, error) {
	base := s.abs(dir)
	var files []string
	err := afero.Walk(s.fs, base, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list content files in %s: %w", base, err)
	}
	sort.Strings(files)
	return files, nil
}

func (s *fsSource) Read(p string) ([]byte, error) {
	b, err := afero.ReadFile(s.fs, s.abs(p))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return b, nil
}

func (s *fsSource) Exists(dir string) (bool, error) {
	ok, err := afero.IsDir(s.fs, s.abs(dir))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return ok, err
}
