// Copyright 2023 The Dawn Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package baseline

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"
)

// FS is the interface to the file system holding the web tests.
// Paths are slash separated and relative to the web tests root.
type FS interface {
	// ReadFile returns the content of the file. If the file does not exist,
	// the returned error wraps fs.ErrNotExist.
	ReadFile(path string) ([]byte, error)
	// WriteFile writes the file, creating parent directories as needed.
	WriteFile(path string, content []byte) error
	// Remove deletes the file.
	Remove(path string) error
	// Exists returns true if the file exists.
	Exists(path string) bool
}

// OSFS is an FS backed by the operating system's file system
type OSFS struct {
	// Root is the path to the web tests root directory
	Root string
}

var _ FS = OSFS{}

func (f OSFS) abs(p string) string { return filepath.Join(f.Root, filepath.FromSlash(p)) }

// ReadFile implements FS
func (f OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(f.abs(path))
}

// WriteFile implements FS
func (f OSFS) WriteFile(path string, content []byte) error {
	abs := f.abs(path)
	if err := os.MkdirAll(filepath.Dir(abs), 0777); err != nil {
		return err
	}
	return os.WriteFile(abs, content, 0666)
}

// Remove implements FS
func (f OSFS) Remove(path string) error {
	return os.Remove(f.abs(path))
}

// Exists implements FS
func (f OSFS) Exists(path string) bool {
	s, err := os.Stat(f.abs(path))
	return err == nil && !s.IsDir()
}

// MemFS is an in-memory FS, safe for concurrent use
type MemFS struct {
	mutex sync.Mutex
	files map[string][]byte
}

var _ FS = &MemFS{}

// NewMemFS returns a new MemFS populated with the given files
func NewMemFS(files map[string]string) *MemFS {
	m := &MemFS{files: make(map[string][]byte, len(files))}
	for p, content := range files {
		m.files[path.Clean(p)] = []byte(content)
	}
	return m
}

// ReadFile implements FS
func (m *MemFS) ReadFile(p string) ([]byte, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	content, ok := m.files[path.Clean(p)]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: p, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), content...), nil
}

// WriteFile implements FS
func (m *MemFS) WriteFile(p string, content []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.files[path.Clean(p)] = append([]byte(nil), content...)
	return nil
}

// Remove implements FS
func (m *MemFS) Remove(p string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	p = path.Clean(p)
	if _, ok := m.files[p]; !ok {
		return &fs.PathError{Op: "remove", Path: p, Err: fs.ErrNotExist}
	}
	delete(m.files, p)
	return nil
}

// Exists implements FS
func (m *MemFS) Exists(p string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	_, ok := m.files[path.Clean(p)]
	return ok
}

// Files returns a copy of all the files held by the MemFS
func (m *MemFS) Files() map[string]string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	out := make(map[string]string, len(m.files))
	for p, content := range m.files {
		out[p] = string(content)
	}
	return out
}

// Paths returns the sorted paths of all the files held by the MemFS
func (m *MemFS) Paths() []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
