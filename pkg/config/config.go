/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package config

import (
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"
)

// Config holds the persistent settings of the tool. Field tags are JSON
// because sigs.k8s.io/yaml converts through JSON.
type Config struct {
	// Device is the serial device the IMU is attached to
	Device string `json:"device,omitempty"`
	// Baud is the serial line rate, the line is always 8N1 raw
	Baud int `json:"baud,omitempty"`
	// Output is the default capture file path
	Output string `json:"output,omitempty"`
	// FrameSize is the total frame length in bytes including header and CRC
	FrameSize int `json:"frameSize,omitempty"`
	// IP is the address the verification API server binds to
	IP string `json:"ip,omitempty"`
	// DBPath is the path of the verification history database
	DBPath   string `json:"dbPath,omitempty"`
	LogLevel string `json:"logLevel,omitempty"`

	filepath string
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, ConfigFile)
}

func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, DBFile)
}

// NewConfig creates a config with default values backed by the given file
func NewConfig(path string) *Config {
	return &Config{
		Device:    DefaultDevice,
		Baud:      DefaultBaud,
		Output:    DefaultOutput,
		FrameSize: DefaultFrameSize,
		IP:        DefaultIP,
		DBPath:    DefaultDBPath(),
		LogLevel:  DefaultLogLevel,
		filepath:  path,
	}
}

func NewDefaultConfig() *Config {
	return NewConfig(DefaultConfigPath())
}

// Load reads the config file over the defaults. A missing file is not an
// error, the defaults stay in effect.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(c.filepath), 0755); err != nil {
		return err
	}

	return os.WriteFile(c.filepath, data, 0644)
}

func (c *Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return ""
	}
	return string(data)
}
