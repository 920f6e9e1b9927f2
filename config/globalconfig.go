// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

const AppName = "maycharts"
const configFileName = "chartconfig.yaml"
const configFileVersion = 1

type GlobalConfig struct {
	dir            string
	loaded         bool
	version        VersionConfig
	appConfig      AppConfig
	appConfigMutex sync.Mutex
}

type VersionConfig struct {
	FileVersion int
}

func NewGlobalConfig() Config {
	return NewGlobalConfigAt("")
}

// NewGlobalConfigAt stores the configuration in dir instead of the user
// config directory.
func NewGlobalConfigAt(dir string) *GlobalConfig {
	return &GlobalConfig{
		dir: dir,
		version: VersionConfig{
			FileVersion: configFileVersion,
		},
		appConfig: NewAppConfig(),
	}
}

func (g *GlobalConfig) GetAppName() string {
	return AppName
}

// Locks access to the configuration and returns a copy which can be modified.
// Unlock needs to be called afterwards, if no error was returned.
func (g *GlobalConfig) Lock() (*AppConfig, error) {
	g.appConfigMutex.Lock()
	if !g.loaded {
		err := g.read()
		if err != nil {
			g.appConfigMutex.Unlock()
			return nil, err
		}
	}
	appConfigCopy := g.appConfig.deepCopy()
	return &appConfigCopy, nil
}

// Update the configuration and unlock access.
// If the configuration was changed, the configuration will be written before unlocking.
func (g *GlobalConfig) Unlock(c *AppConfig, forceWriting bool) error {
	var err error
	if forceWriting || !cmp.Equal(g.appConfig, *c) {
		g.appConfig = *c
		err = g.write()
	}
	g.appConfigMutex.Unlock()
	return err
}

func (g *GlobalConfig) Copy(forceReading bool) (AppConfig, error) {
	g.appConfigMutex.Lock()
	defer g.appConfigMutex.Unlock()
	if !g.loaded || forceReading {
		err := g.read()
		if err != nil {
			return AppConfig{}, err
		}
	}
	return g.appConfig.deepCopy(), nil
}

// ConfigDirEnv overrides the configuration directory, e.g. for a second
// chart instance with its own settings.
const ConfigDirEnv = "MAYCHARTS_CONFIG_DIR"

func (g *GlobalConfig) configDir() (string, error) {
	if g.dir != "" {
		return g.dir, nil
	}
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir, nil
	}
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("unable to determine configuration path: %w", err)
	}
	return filepath.Join(userConfigDir, g.GetAppName()), nil
}

func (g *GlobalConfig) configFile() (string, error) {
	dir, err := g.configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func (g *GlobalConfig) read() error {
	fileName, err := g.configFile()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(fileName)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("configuration file %s does not exist yet, using defaults", fileName)
		g.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read configuration file: %w", err)
	}
	c, err := decodeConfig(data)
	if err != nil {
		return err
	}
	g.appConfig = c
	g.loaded = true
	return nil
}

// decodeConfig rejects files of newer releases, which could contain
// settings that would be lost when writing.
func decodeConfig(data []byte) (AppConfig, error) {
	var v VersionConfig
	if err := yaml.Unmarshal(data, &v); err != nil {
		return AppConfig{}, fmt.Errorf("failed to parse configuration version: %w", err)
	}
	if v.FileVersion > configFileVersion {
		return AppConfig{}, fmt.Errorf("configuration file version %d is newer than %d", v.FileVersion, configFileVersion)
	}
	c := NewAppConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return AppConfig{}, fmt.Errorf("failed to parse app configuration: %w", err)
	}
	c.Sanitize()
	return c, nil
}

func (g *GlobalConfig) encode() ([]byte, error) {
	g.appConfig.Sanitize()
	stored := g.appConfig.deepCopy()
	stored.RemoveDefaults()
	version, err := yaml.Marshal(&g.version)
	if err != nil {
		return nil, fmt.Errorf("error encoding configuration version: %w", err)
	}
	body, err := yaml.Marshal(&stored)
	if err != nil {
		return nil, fmt.Errorf("error encoding app configuration: %w", err)
	}
	return append(version, body...), nil
}

func (g *GlobalConfig) write() error {
	fileName, err := g.configFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fileName), 0700); err != nil {
		return fmt.Errorf("failed to create configuration directory: %w", err)
	}
	data, err := g.encode()
	if err != nil {
		return err
	}
	// Replace the file only after it was completely written.
	tmpFileName := fileName + ".tmp"
	if err := os.WriteFile(tmpFileName, data, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	if err := os.Rename(tmpFileName, fileName); err != nil {
		return fmt.Errorf("failed to replace configuration file: %w", err)
	}
	return nil
}
