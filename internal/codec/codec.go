// Package codec reads and writes proposal files in JSON or YAML.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/proquote/internal/domain"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	ErrUnknownFormat   = errors.New("unknown proposal format (use .json, .yaml or .yml)")
	ErrInvalidDocument = errors.New("invalid proposal document")
)

// FormatFromPath maps a file extension to a Format.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Base(path))
	}
}

func Encode(w io.Writer, doc domain.Proposal, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Decode parses a proposal and checks its invariants. Files are edited by
// hand, so a violation is reported as an error rather than trusted.
func Decode(r io.Reader, format Format) (domain.Proposal, error) {
	var doc domain.Proposal
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return domain.Proposal{}, fmt.Errorf("decoding json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return domain.Proposal{}, fmt.Errorf("decoding yaml: %w", err)
		}
	default:
		return domain.Proposal{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err := doc.Validate(); err != nil {
		return domain.Proposal{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return doc, nil
}

// Load reads a proposal file, choosing the format from its extension.
func Load(path string) (domain.Proposal, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return domain.Proposal{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return domain.Proposal{}, fmt.Errorf("opening proposal: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f, format)
	if err != nil {
		return domain.Proposal{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

// Save writes the proposal atomically: a temp file in the same directory is
// renamed over path once fully written.
func Save(path string, doc domain.Proposal) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".proquote-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, doc, format); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding proposal: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing proposal: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("saving proposal: %w", err)
	}
	return nil
}
