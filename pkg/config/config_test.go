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
	"errors"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg := NewConfig(filepath.Join(t.TempDir(), "config"))
	if err := cfg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Device != DefaultDevice || cfg.FrameSize != DefaultFrameSize {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestPersistAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")

	cfg := NewConfig(path)
	cfg.Device = "/dev/ttyUSB0"
	cfg.Baud = 921600
	cfg.FrameSize = 68
	if err := cfg.Persist(false); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	loaded := NewConfig(path)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Device != "/dev/ttyUSB0" || loaded.Baud != 921600 {
		t.Fatalf("loaded = %+v", loaded)
	}
}

func TestPersistRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	cfg := NewConfig(path)
	if err := cfg.Persist(false); err != nil {
		t.Fatalf("first Persist: %v", err)
	}

	err := cfg.Persist(false)
	var exists ErrConfigFileExists
	if !errors.As(err, &exists) {
		t.Fatalf("expected ErrConfigFileExists, got %v", err)
	}

	if err := cfg.Persist(true); err != nil {
		t.Fatalf("Persist with overwrite: %v", err)
	}
}
