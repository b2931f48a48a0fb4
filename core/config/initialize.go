package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Initialize writes the default configuration into dir unless one already
// exists, then loads it.
func Initialize(fs afero.Fs, dir string, logger *log.Logger) (*Configuration, error) {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, errors.WithStack(err)
	}

	configPath := filepath.Join(dir, ConfigurationName)
	switch _, err := fs.Stat(configPath); {
	case err == nil:
		logger.Printf("Configuration already exists: %s\n", configPath)
	case os.IsNotExist(err):
		logger.Printf("Writing configuration: %s\n", configPath)
		if err := afero.WriteFile(fs, configPath, defaultConfigData, 0644); err != nil {
			return nil, errors.WithStack(err)
		}
	default:
		return nil, errors.WithStack(err)
	}

	return Load(fs, dir)
}
