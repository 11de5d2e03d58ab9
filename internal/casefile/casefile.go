// Package casefile loads transformation validation cases from YAML or JSON
// files and evaluates them.
//
// A case file looks like:
//
//	cases:
//	  - name: trim tail
//	    before: {text: "Repl.it uses operational transformations to ...", cursor: 0}
//	    after: {text: "Repl.it uses operational transformations.", cursor: 40}
//	    ops: [40, -47]
//	    expect: true
//
// The ops list accepts either the compact form shown above or the explicit
// form (- skip: 40, - delete: 47, - insert: "x"). JSON files use the same keys
// with the compact ops form. A missing expect defaults to true.
package casefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"gopkg.in/yaml.v3"

	ot "github.com/shiv248/ot-validate"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither YAML nor JSON.
	ErrUnsupportedFormat = errors.New("unsupported case file format")

	// ErrNoCases is returned when a file holds no cases.
	ErrNoCases = errors.New("no cases")

	// ErrDuplicateCase is returned when two cases in one file share a name.
	ErrDuplicateCase = errors.New("duplicate case name")
)

// Format is the encoding of a case file.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Case is one validation check: ops applied to Before should (or should not,
// per Expect) produce After.
type Case struct {
	Name   string            `yaml:"name" json:"name"`
	Before ot.Document       `yaml:"before" json:"before"`
	After  ot.Document       `yaml:"after" json:"after"`
	Ops    ot.Transformation `yaml:"ops" json:"ops"`
	Expect *bool             `yaml:"expect,omitempty" json:"expect,omitempty"`
}

// Expected returns the expected validation result, defaulting to true.
func (c Case) Expected() bool {
	if c.Expect == nil {
		return true
	}
	return *c.Expect
}

// File is a parsed case file.
type File struct {
	Path  string `yaml:"-" json:"-"`
	Cases []Case `yaml:"cases" json:"cases"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// Load reads and parses the case file at path.
func Load(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case file: %w", err)
	}

	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path

	return f, nil
}

// Parse decodes case file contents in the given format.
func Parse(data []byte, format Format) (*File, error) {
	f := &File{}

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(f); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}

	if len(f.Cases) == 0 {
		return nil, ErrNoCases
	}

	if err := f.normalize(); err != nil {
		return nil, err
	}

	return f, nil
}

// normalize names unnamed cases and rejects duplicate names.
func (f *File) normalize() error {
	seen := mapset.NewThreadUnsafeSet[string]()

	for i := range f.Cases {
		if f.Cases[i].Name == "" {
			f.Cases[i].Name = "case-" + strconv.Itoa(i+1)
		}
		if !seen.Add(f.Cases[i].Name) {
			return fmt.Errorf("%w: %q", ErrDuplicateCase, f.Cases[i].Name)
		}
	}

	return nil
}
