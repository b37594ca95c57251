package io

import (
	"encoding/json"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bubbletreemap/pkg/errors"
	"github.com/matzehuels/bubbletreemap/pkg/hierarchy"
)

// WriteHierarchy encodes tree in nested form. Values and radii are written
// resolved, so the output reads back into an identical tree.
func WriteHierarchy(w io.Writer, tree *hierarchy.Tree, format string) error {
	d := tree.Data()
	switch format {
	case FormatJSON, FormatAuto:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	}
	return errors.ValidateFormat(format, Formats)
}

// WriteFile writes tree to path in the format implied by its extension,
// JSON when the extension is not recognised.
func WriteFile(tree *hierarchy.Tree, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	if err := WriteHierarchy(f, tree, FormatFromPath(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
