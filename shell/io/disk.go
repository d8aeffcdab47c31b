package io

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefsFile is where shell definitions are kept across sessions, in the home directory.
const DefsFile = ".tilectl_defs.yml"

// DefaultDefsPath is DefsFile in the home directory, or in the working directory if there is no home.
func DefaultDefsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefsFile
	}
	return filepath.Join(home, DefsFile)
}

// LoadDefs reads definitions saved by StoreDefs. A missing file is no definitions.
func LoadDefs(path string) (map[string][]string, error) {
	defs := make(map[string][]string)
	b, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return defs, nil
	}
	if err != nil {
		return defs, errors.WithStack(err)
	}
	if err := yaml.Unmarshal(b, &defs); err != nil {
		return make(map[string][]string), errors.Wrapf(err, "reading definitions from %s", path)
	}
	for k, v := range defs {
		if len(v) == 0 {
			delete(defs, k)
		}
	}
	return defs, nil
}

func StoreDefs(path string, writer FileWriter, defs map[string][]string) error {
	b, err := yaml.Marshal(defs)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.Wrap(writer.WriteToFile(path, b), "**NOTE**: definitions might not be persisted")
}
