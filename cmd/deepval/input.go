package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ravenfield/argus-deepval/deepval"
	"github.com/ravenfield/argus-deepval/deepval/edn"
)

// readValue loads one value from a file, picking the reader by extension:
// .json and .yaml/.yml decode through the native bridge, everything else is
// parsed as EDN. "-" reads EDN from stdin.
func readValue(path string) (deepval.Value, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var native any
		if err := json.Unmarshal(data, &native); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return deepval.FromNative(native)
	case ".yaml", ".yml":
		var native any
		if err := yaml.Unmarshal(data, &native); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return deepval.FromNative(native)
	default:
		v, err := edn.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return v, nil
	}
}

// readValues loads one value per path.
func readValues(paths []string) ([]deepval.Value, error) {
	out := make([]deepval.Value, 0, len(paths))
	for _, p := range paths {
		v, err := readValue(p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
