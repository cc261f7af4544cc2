package laxjson

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// File helpers materialize whole documents: the core model needs "give me
// the whole text" and "accept the whole text" only. The filesystem is an
// afero.Fs so callers can substitute an in-memory fs in tests.

// LoadFile reads the file at path from fsys and parses it.
func LoadFile(fsys afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return doc, nil
}

// SaveFile serializes doc and writes it to path on fsys, creating or
// truncating the file. A trailing newline is appended.
func SaveFile(fsys afero.Fs, path string, doc *Document, pretty bool) error {
	var data []byte
	if pretty {
		data = doc.Pretty()
	} else {
		data = doc.Bytes()
	}
	data = append(data, '\n')
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// LoadReader reads r to the end and parses the result.
func LoadReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return Parse(data)
}

// SaveWriter serializes doc to w with a trailing newline.
func SaveWriter(w io.Writer, doc *Document, pretty bool) error {
	var data []byte
	if pretty {
		data = doc.Pretty()
	} else {
		data = doc.Bytes()
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}
