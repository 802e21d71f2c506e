/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(EnvConfigPath, path)
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "nope.yaml"))
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Editor != DefaultEditor() {
		t.Fatalf("Editor = %+v, want defaults %+v", cfg.Editor, DefaultEditor())
	}
}

func TestLoadMergesFile(t *testing.T) {
	writeConfig(t, "editor:\n  resname: DPPC\n  label: PO4\n  output_mode: coby\n  ymax: 12\nlogging:\n  level: debug\n")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Editor.Resname != "DPPC" || cfg.Editor.Label != "PO4" || cfg.Editor.OutputMode != "coby" || cfg.Editor.YMax != 12 {
		t.Fatalf("editor fields not merged: %+v", cfg.Editor)
	}
	if cfg.Editor.XMin != -5 || cfg.Editor.XMax != 5 || cfg.Editor.HitRadius != 0.3 {
		t.Fatalf("unset fields should keep defaults: %+v", cfg.Editor)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadRejectsSchemaViolation(t *testing.T) {
	writeConfig(t, "editor:\n  ymax: \"tall\"\n")
	_, err := Load()
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	writeConfig(t, "editor:\n  output_mode: gromacs\n")
	_, err := Load()
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestLoadRejectsInvertedXRange(t *testing.T) {
	writeConfig(t, "editor:\n  xmin: 3\n  xmax: -3\n")
	_, err := Load()
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) || cerr.Field != "editor.xmin" {
		t.Fatalf("expected editor.xmin ConfigurationError, got %v", err)
	}
}

func TestEnvOverridesEditor(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv(EnvResname, "POPE")
	t.Setenv(EnvYMax, "15")
	t.Setenv(EnvOutputMode, "COBY")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Editor.Resname != "POPE" || cfg.Editor.YMax != 15 || cfg.Editor.OutputMode != "coby" {
		t.Fatalf("env overrides not applied: %+v", cfg.Editor)
	}
}

func TestEnvOverrideIgnoresBadYMax(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv(EnvYMax, "abc")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Editor.YMax != 10 {
		t.Fatalf("invalid env ymax should be ignored, got %v", cfg.Editor.YMax)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	t.Setenv(EnvConfigPath, path)
	cfg := Defaults()
	cfg.Editor.Resname = "DOPC"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got.Editor.Resname != "DOPC" {
		t.Fatalf("Resname = %q after round trip", got.Editor.Resname)
	}
}

func TestSaveEditorKeepsOtherSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(EnvConfigPath, path)
	if err := os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvLogLevel, "error")

	e := DefaultEditor()
	e.Resname = "POPE"
	e.Label = "GL1"
	e.YMax = 12
	if err := SaveEditor(e); err != nil {
		t.Fatalf("SaveEditor: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var raw AppConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw.Logging.Level != "debug" {
		t.Fatalf("logging level = %q, env override must not be persisted", raw.Logging.Level)
	}
	if raw.Editor.Resname != "POPE" || raw.Editor.Label != "GL1" || raw.Editor.YMax != 12 {
		t.Fatalf("editor section not saved: %+v", raw.Editor)
	}
	if err := Validate(data); err != nil {
		t.Fatalf("saved file fails schema: %v", err)
	}
}

func TestSaveEditorRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(EnvConfigPath, path)
	e := DefaultEditor()
	e.YMax = -1
	var cerr *ConfigurationError
	if err := SaveEditor(e); !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("nothing should be written for an invalid editor section")
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "DEBUG"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/tmp/bgd.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/bgd.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}
