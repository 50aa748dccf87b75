// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

const (
	// DefaultConfigFileName is the name of the tool configuration file in HomeDir
	DefaultConfigFileName = "config.yaml"
	// HomeDir is the docnav directory in the user home
	HomeDir = ".docnav"
	// ConfigEnv overrides the location of the tool configuration file.
	// DOCNAV_CONFIG is taken by the --config flag.
	ConfigEnv = "DOCNAV_TOOL_CONFIG"
)

// Path returns the tool configuration file path and whether it was set explicitly
// with the ConfigEnv environment variable
func Path() (string, bool, error) {
	if configFilePath, found := os.LookupEnv(ConfigEnv); found {
		if configFilePath == "" {
			return "", true, fmt.Errorf("the provided environment variable %s is set to empty string", ConfigEnv)
		}
		return configFilePath, true, nil
	}
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(userHomeDir, HomeDir, DefaultConfigFileName), false, nil
}

// Load reads the tool configuration file into vip. A missing default
// configuration file is not an error, a missing explicit one is.
func Load(vip *viper.Viper) error {
	configFilePath, explicit, err := Path()
	if err != nil {
		return err
	}
	stat, err := os.Stat(configFilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			klog.V(4).Infof("no configuration file at %s\n", configFilePath)
			return nil
		}
		return fmt.Errorf("failed to get file info for configuration file path %s: %w", configFilePath, err)
	}
	if stat.IsDir() {
		return fmt.Errorf("the config file path %s is directory, instead of file", configFilePath)
	}
	vip.SetConfigFile(configFilePath)
	vip.SetConfigType("yaml")
	if err = vip.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", configFilePath, err)
	}
	klog.V(4).Infof("using configuration file %s\n", configFilePath)
	return nil
}
