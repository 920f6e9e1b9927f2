// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

type TestConfig struct {
	appConfig AppConfig
	unlocks   int
}

// Test configurations are not stored and not thread safe.
// Intended only for use in unit tests.
func NewTestConfig() *TestConfig {
	return &TestConfig{
		appConfig: NewAppConfig(),
	}
}

func (t *TestConfig) GetAppName() string {
	return "test"
}

func (t *TestConfig) Lock() (*AppConfig, error) {
	c := t.appConfig.deepCopy()
	return &c, nil
}

func (t *TestConfig) Unlock(c *AppConfig, forceWriting bool) error {
	t.appConfig = *c
	t.unlocks++
	return nil
}

func (t *TestConfig) Copy(forceReading bool) (AppConfig, error) {
	return t.appConfig.deepCopy(), nil
}

// Unlocks returns how often the configuration was unlocked.
func (t *TestConfig) Unlocks() int {
	return t.unlocks
}
