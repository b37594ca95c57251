package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bubbletreemap/pkg/errors"
	"github.com/matzehuels/bubbletreemap/pkg/hierarchy"
)

// Supported formats.
const (
	FormatAuto = ""
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the explicit format names.
var Formats = []string{FormatJSON, FormatYAML}

// ReadHierarchy decodes a nested or flat hierarchy from r and builds the
// tree. ReadHierarchy does not close r.
func ReadHierarchy(r io.Reader, format string) (*hierarchy.Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read hierarchy")
	}
	return Decode(data, format)
}

// Decode is ReadHierarchy for bytes already in memory.
func Decode(data []byte, format string) (*hierarchy.Tree, error) {
	if format == FormatAuto {
		format = Detect(data)
	}
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	}
	return nil, errors.ValidateFormat(format, Formats)
}

// Detect guesses the format of data: JSON when it starts with an object or
// array, YAML otherwise.
func Detect(data []byte) string {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// FormatFromPath maps a file extension to a format, or FormatAuto when the
// extension is not recognised.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatAuto
}

// ReadFile reads the hierarchy at path.
func ReadFile(path string) (*hierarchy.Tree, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	tree, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return tree, nil
}

func decodeJSON(data []byte) (*hierarchy.Tree, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var rows []hierarchy.Row
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json rows")
		}
		return hierarchy.FromFlat(rows)
	}
	var d hierarchy.Data
	if err := json.Unmarshal(trimmed, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}
	return hierarchy.Build(d)
}

func decodeYAML(data []byte) (*hierarchy.Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty yaml document")
	}
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var rows []hierarchy.Row
		if err := root.Decode(&rows); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml rows")
		}
		return hierarchy.FromFlat(rows)
	case yaml.MappingNode:
		var d hierarchy.Data
		if err := root.Decode(&d); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
		}
		return hierarchy.Build(d)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "yaml hierarchy must be a mapping or a sequence (line %d)", root.Line)
}
