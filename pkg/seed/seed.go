// Package seed decodes the versioned YAML datasets that back the site's
// read-only content.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only dataset layout this build understands.
const SupportedVersion = 1

var (
	ErrUnsupportedVersion = errors.New("unsupported dataset version")
	ErrEmptyDataset       = errors.New("dataset is empty")
)

// Header is embedded (inline) by every dataset document.
type Header struct {
	Version int `yaml:"version"`
}

func (h Header) DatasetVersion() int { return h.Version }

// Versioned is satisfied by any document that embeds Header.
type Versioned interface {
	DatasetVersion() int
}

// Issue describes one problem found while checking a dataset.
type Issue struct {
	Record  int    `json:"record"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (i Issue) Error() string {
	if i.Field == "" {
		return fmt.Sprintf("record %d: %s", i.Record, i.Message)
	}
	return fmt.Sprintf("record %d: %s: %s", i.Record, i.Field, i.Message)
}

func (i Issue) Unwrap() error { return i.Err }

// Decode reads a YAML document into v, rejecting unknown keys and
// unsupported versions.
func Decode(r io.Reader, v Versioned) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyDataset
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode dataset: %w", err)
	}

	if got := v.DatasetVersion(); got != SupportedVersion {
		return fmt.Errorf("%w: %d (want %d)", ErrUnsupportedVersion, got, SupportedVersion)
	}
	return nil
}

// DecodeFile is Decode over the file at path.
func DecodeFile(path string, v Versioned) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	if err := Decode(f, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Join folds issues into a single error, or nil when there are none.
func Join(issues []Issue) error {
	if len(issues) == 0 {
		return nil
	}
	errs := make([]error, len(issues))
	for i := range issues {
		errs[i] = issues[i]
	}
	return errors.Join(errs...)
}
