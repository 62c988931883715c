package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"shelve/internal/faults"
)

const stageConfig = "config"

// Load reads an extensions document from path. A missing file yields
// faults.ErrConfigNotFound; unreadable or malformed content yields
// faults.ErrConfigParse. Nothing is returned unless the whole document
// validates.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, faults.Wrap(faults.ErrConfigNotFound, stageConfig, "read extensions",
				fmt.Sprintf("configuration file %q not found", path), nil)
		}
		return nil, faults.Wrap(faults.ErrConfigParse, stageConfig, "read extensions",
			fmt.Sprintf("failed to read configuration file %q", path), err)
	}
	table, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfigParse, stageConfig, "parse extensions",
			fmt.Sprintf("failed to parse configuration file %q", path), err)
	}
	return table, nil
}

// Parse decodes a JSON object mapping category names to arrays of extension
// strings. Keys keep their document order, which becomes the classification
// order.
func Parse(r io.Reader) (*Table, error) {
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var categories []Category
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected category name, got %v", tok)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate category %q", name)
		}
		seen[name] = struct{}{}

		var extensions []string
		if err := dec.Decode(&extensions); err != nil {
			return nil, fmt.Errorf("category %q: extensions must be an array of strings: %w", name, err)
		}
		categories = append(categories, Category{Name: name, Extensions: extensions})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected content after the top-level object")
	}
	return New(categories)
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty document")
		}
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", strings.TrimSpace(want.String()), tok)
	}
	return nil
}
