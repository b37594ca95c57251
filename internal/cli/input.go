package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/bubbletreemap/pkg/errors"
	bio "github.com/matzehuels/bubbletreemap/pkg/io"
	"github.com/matzehuels/bubbletreemap/pkg/pipeline"
)

// stdinName reads input from standard input.
const stdinName = "-"

// readInput reads path, or stdin for "-". When opts has no input format
// yet, the file extension picks one.
func readInput(path string, opts *pipeline.Options) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinName {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, wrapInput(path, err)
	}
	if opts.InputFormat == bio.FormatAuto && path != stdinName {
		opts.InputFormat = bio.FormatFromPath(path)
	}
	return data, nil
}

// isLayout reports whether data is a layout.json written by the layout
// command rather than a hierarchy.
func isLayout(data []byte) bool {
	var probe struct {
		Nodes json.RawMessage `json:"nodes"`
		Width *float64        `json:"width"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.Nodes != nil && probe.Width != nil
}

// outputBase derives the base output path. A known format extension on
// output is stripped; without output the input name is used.
func outputBase(output, input string) string {
	if output == "" {
		if input == stdinName {
			return appName
		}
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".layout")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
