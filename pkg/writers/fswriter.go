// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package writers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FSWriter is implementation of Writer interface for writing blobs to a file system
type FSWriter struct {
	// Fs is the target file system, the OS file system if nil
	Fs   afero.Fs
	Root string
}

func (f *FSWriter) Write(name, path string, content []byte) error {
	fs := f.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	root := filepath.Clean(f.Root)
	p := filepath.Join(root, filepath.FromSlash(path))
	filePath := filepath.Join(p, name)
	if !within(root, filePath) {
		return fmt.Errorf("refusing to write %s outside of %s", filePath, root)
	}
	if err := fs.MkdirAll(p, os.ModePerm); err != nil {
		return err
	}
	if err := afero.WriteFile(fs, filePath, content, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", filePath, err)
	}
	return nil
}

func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
