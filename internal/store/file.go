// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const fileSuffix = ".levels.yaml"

// FileStore stores levels as YAML files in a directory.
//
type FileStore struct {
	Dir string
}

// NewFileStore returns a FileStore writing to dir. An empty dir means the
// current directory.
//
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "."
	}
	return &FileStore{Dir: dir}
}

func (f *FileStore) path(circuit string) string {
	return filepath.Join(f.Dir, circuit+fileSuffix)
}

// Save implements Store.
//
func (f *FileStore) Save(_ context.Context, circuit string, lv Levels) error {
	if err := checkName(circuit); err != nil {
		return err
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create store directory")
	}
	data, err := yaml.Marshal(lv)
	if err != nil {
		return errors.Wrap(err, "failed to marshal levels")
	}
	tmp := f.path(circuit) + ".tmp"
	if err = os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write levels")
	}
	return errors.Wrap(os.Rename(tmp, f.path(circuit)), "failed to write levels")
}

// Load implements Store.
//
func (f *FileStore) Load(_ context.Context, circuit string) (Levels, error) {
	if err := checkName(circuit); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path(circuit))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrNotFound, circuit)
		}
		return nil, errors.Wrap(err, "failed to read levels")
	}
	lv := make(Levels)
	if err = yaml.Unmarshal(data, &lv); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", f.path(circuit))
	}
	return lv, nil
}

// Delete implements Store.
//
func (f *FileStore) Delete(_ context.Context, circuit string) error {
	if err := checkName(circuit); err != nil {
		return err
	}
	if err := os.Remove(f.path(circuit)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to delete levels")
	}
	return nil
}

// Close implements Store.
//
func (f *FileStore) Close() error { return nil }
