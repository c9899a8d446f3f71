// Package store persists the knowledge graph on the local filesystem.
//
// Layout under the data directory:
//
//	entities/<type>s.jsonl    append-only entity version logs, one JSON record per line
//	relationships.jsonl       append-only relationship log
//	decisions/<id>.json       one document per decision
//	reconciliation/<id>.json  one document per contradiction
//
// The on-disk representation is an external contract: other tooling reads the
// logs directly, so records are plain newline-delimited JSON in append order
// and documents are pretty-printed JSON keyed by id.
package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrNotFound = errors.New("not found")

// maxLineSize bounds a single log record. Entity payloads are small
// structured observations, not blobs.
const maxLineSize = 4 * 1024 * 1024

func appendLine(path string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log %s: %w", filepath.Base(path), err)
	}
	if _, err := f.Write(append(b, '\n')); err != nil {
		_ = f.Close()
		return fmt.Errorf("append log %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close log %s: %w", filepath.Base(path), err)
	}
	return nil
}

// scanLines reads a whole log in append order. A log that does not exist yet
// reads as empty. A line that fails to parse surfaces as an error rather than
// being skipped, so corruption is never silently masked.
func scanLines[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	var out []T
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("corrupt record at %s line %d: %w", filepath.Base(path), line, err)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read log %s: %w", filepath.Base(path), err)
	}
	return out, nil
}

func readDoc[T any](path string) (*T, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read document %s: %w", filepath.Base(path), err)
	}
	var rec T
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("corrupt document %s: %w", filepath.Base(path), err)
	}
	return &rec, nil
}

func writeDoc(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write document %s: %w", filepath.Base(path), err)
	}
	return nil
}

// listDocs reads every .json document in a directory. A directory that does
// not exist yet reads as empty.
func listDocs[T any](dir string) ([]T, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read directory %s: %w", filepath.Base(dir), err)
	}
	var out []T
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		rec, err := readDoc[T](filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}
