// Package history keeps the log of previously entered lines and persists it
// to a plain text file, one entry per line.
package history

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FileName is the name of the history file in the user's home directory.
const FileName = ".replrc_history"

// History is the in-memory list of entered lines backed by a file.
type History struct {
	fs    afero.Fs
	path  string
	limit int

	entries []string
}

// New creates a history stored at path. When limit is positive, only the
// newest limit entries are written back by Save.
func New(fs afero.Fs, path string, limit int) *History {
	return &History{
		fs:    fs,
		path:  path,
		limit: limit,
	}
}

// Path returns the location of the history file.
func (h *History) Path() string {
	return h.path
}

// Load appends the entries in the history file to memory. A missing file
// isn't an error, there's just nothing to load yet.
func (h *History) Load() error {
	fd, err := h.fs.Open(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer fd.Close()

	scanner := bufio.NewScanner(fd)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			h.entries = append(h.entries, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading history %q: %w", h.path, err)
	}
	return nil
}

// Add records a line, empty lines are skipped.
func (h *History) Add(line string) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return
	}
	h.entries = append(h.entries, line)
}

// Entries returns a copy of the history, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries in memory.
func (h *History) Len() int {
	return len(h.entries)
}

// Tail returns up to n of the newest entries, oldest first.
func (h *History) Tail(n int) []string {
	entries := h.Entries()
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}

// Clear drops all entries from memory, the file is untouched until Save.
func (h *History) Clear() {
	h.entries = nil
}

// Save overwrites the history file with the in-memory entries.
func (h *History) Save() error {
	buf := &bytes.Buffer{}
	for _, entry := range h.Tail(h.limit) {
		buf.WriteString(entry)
		buf.WriteByte('\n')
	}

	if dir := filepath.Dir(h.path); dir != "" {
		if err := h.fs.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}

	fd, err := h.fs.OpenFile(h.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	if _, err := fd.Write(buf.Bytes()); err != nil {
		fd.Close()
		return fmt.Errorf("writing history %q: %w", h.path, err)
	}
	return fd.Close()
}
