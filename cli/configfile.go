package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/getdocker/getdocker/install"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".getdocker.yaml"

// loadConfig returns an install.Config with defaults applied and the values
// from the configuration file merged in. A missing default configuration file
// is not an error, a missing explicitly given one is.
func loadConfig(path string) (*install.Config, error) {
	config, err := install.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("initialize configuration: %w", err)
	}

	explicit := path != ""
	if !explicit {
		home, err := homedir.Dir()
		if err != nil {
			return config, nil //nolint:nilerr
		}
		path = filepath.Join(home, defaultConfigFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("read configuration file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse configuration file %s: %w", path, err)
	}
	return config, nil
}
