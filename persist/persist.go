//
// Copyright 2019-2020 Nestybox, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package persist implements the FilterPersistenceBlob store (spec §6):
// a durable byte blob per FilterKind, keyed by a well-known filename under
// a configurable state directory, rewritten atomically on every successful
// mutating filter-set call.
package persist

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/nestybox/peacemaker/domain"
)

// Store persists FilterEntry sets to disk, one file per FilterKind.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir. The directory is created lazily
// on first Save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(kind domain.FilterKind) string {
	name := "fs-filters.blob"
	if kind == domain.RegistryFilter {
		name = "reg-filters.blob"
	}
	return filepath.Join(s.dir, name)
}

// Save rewrites the blob for kind atomically (write-to-temp, then rename).
func (s *Store) Save(kind domain.FilterKind, entries []domain.FilterEntry) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("persist: create state dir: %w", err)
	}

	target := s.path(kind)
	tmp := target + ".tmp"

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("persist: open temp file: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, uint32(len(entries))); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("persist: write count: %w", err)
	}
	for _, e := range entries {
		if err := writeEntry(w, e); err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("persist: write entry: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("persist: flush: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("persist: close: %w", err)
	}

	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("persist: rename into place: %w", err)
	}

	logrus.Debugf("persist: saved %d entries for kind=%s to %s", len(entries), kind, target)
	return nil
}

// Restore reads back the blob previously written for kind. A missing file
// is treated as an empty set, not an error -- there's nothing to restore
// on a fresh install.
func (s *Store) Restore(kind domain.FilterKind) ([]domain.FilterEntry, error) {
	target := s.path(kind)

	f, err := os.Open(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("persist: open: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("persist: read count: %w", err)
	}

	entries := make([]domain.FilterEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		e, err := readEntry(r, kind)
		if err != nil {
			return nil, fmt.Errorf("persist: read entry %d: %w", i, err)
		}
		entries = append(entries, e)
	}

	logrus.Debugf("persist: restored %d entries for kind=%s from %s", len(entries), kind, target)
	return entries, nil
}

func writeEntry(w *bufio.Writer, e domain.FilterEntry) error {
	if err := binary.Write(w, binary.LittleEndian, e.ID); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(e.Ops)); err != nil {
		return err
	}
	patternBytes := []byte(e.Pattern)
	if len(patternBytes) > domain.MaxPatternLen {
		patternBytes = patternBytes[:domain.MaxPatternLen]
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(patternBytes))); err != nil {
		return err
	}
	_, err := w.Write(patternBytes)
	return err
}

func readEntry(r *bufio.Reader, kind domain.FilterKind) (domain.FilterEntry, error) {
	var e domain.FilterEntry
	e.Kind = kind

	if err := binary.Read(r, binary.LittleEndian, &e.ID); err != nil {
		return e, err
	}
	var ops uint32
	if err := binary.Read(r, binary.LittleEndian, &ops); err != nil {
		return e, err
	}
	e.Ops = domain.FilterOp(ops)

	var patLen uint32
	if err := binary.Read(r, binary.LittleEndian, &patLen); err != nil {
		return e, err
	}
	buf := make([]byte, patLen)
	if _, err := fillFull(r, buf); err != nil {
		return e, err
	}
	e.Pattern = string(buf)

	return e, nil
}

func fillFull(r *bufio.Reader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
