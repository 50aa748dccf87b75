// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package tests

import (
	"flag"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// SetKlogV sets the logging flags when unit tests are run
func SetKlogV(level int) {
	l := strconv.Itoa(level)
	if f := flag.Lookup("v"); f != nil {
		_ = f.Value.Set(l)
	}
	if f := flag.Lookup("logtostderr"); f != nil {
		_ = f.Value.Set("true")
	}
}

// ContentFS creates an in-memory filesystem with files written under root.
// Keys of files are slash separated paths relative to root.
func ContentFS(root string, files map[string]string) afero.Fs {
	fs := afero.NewMemMapFs()
	if err := WriteFiles(fs, root, files); err != nil {
		panic(err)
	}
	return fs
}

// WriteFiles writes files under root of fs in sorted path order
func WriteFiles(fs afero.Fs, root string, files map[string]string) error {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := path.Join(root, name)
		if err := fs.MkdirAll(path.Dir(p), os.ModePerm); err != nil {
			return err
		}
		if err := afero.WriteFile(fs, p, []byte(files[name]), 0644); err != nil {
			return err
		}
	}
	return nil
}

// TempDir returns a unique, not yet existing path in the OS temp directory
func TempDir(prefix string) string {
	return filepath.Join(os.TempDir(), prefix+uuid.New().String())
}
