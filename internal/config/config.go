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
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EditorConfig seeds a new editing session.
type EditorConfig struct {
	Resname    string  `yaml:"resname"`
	Label      string  `yaml:"label"`       // name given to the next placed bead
	OutputMode string  `yaml:"output_mode"` // "insane" | "coby"
	YMax       float64 `yaml:"ymax"`        // visible depth range is [0, ymax]
	XMin       float64 `yaml:"xmin"`
	XMax       float64 `yaml:"xmax"`
	HitRadius  float64 `yaml:"hit_radius"` // plane units, not pixels
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Editor        EditorConfig  `yaml:"editor"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Editor:        DefaultEditor(),
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// DefaultEditor returns the editor defaults: an x range of [-5, 5], depth up
// to 10 and a 0.3 hit radius.
func DefaultEditor() EditorConfig {
	return EditorConfig{
		Resname:    "UNK",
		Label:      "BEAD",
		OutputMode: "insane",
		YMax:       10,
		XMin:       -5,
		XMax:       5,
		HitRadius:  0.3,
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath = "BGD_CONFIG"
	EnvResname    = "BGD_RESNAME"
	EnvLabel      = "BGD_LABEL"
	EnvYMax       = "BGD_YMAX"
	EnvOutputMode = "BGD_OUTPUT_MODE"
	EnvHitRadius  = "BGD_HIT_RADIUS"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "BGD_LOG_LEVEL"
	EnvLogFormat = "BGD_LOG_FORMAT"
	EnvLogSource = "BGD_LOG_SOURCE"
	EnvLogFile   = "BGD_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "BeadGrid")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "BeadGrid")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "beadgrid")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
// A file that does not parse or violates the schema yields a *ConfigurationError.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return Defaults(), err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path. A missing file is not an error.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := Validate(data); err != nil {
			return cfg, err
		}
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, &ConfigurationError{Field: path, Err: err}
		}
		mergeInto(&cfg, &fileCfg)
	}
	applyEnvOverrides(&cfg)
	if err := cfg.Editor.Check(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// SaveEditor replaces the editor section of the user config file with e and
// keeps the rest of the file as written. Environment overrides are not
// persisted.
func SaveEditor(e EditorConfig) error {
	if err := e.Check(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return fmt.Errorf("read config: %w", err)
	default:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return &ConfigurationError{Field: path, Err: err}
		}
		mergeInto(&cfg, &fileCfg)
	}
	cfg.Editor = e
	return Save(cfg)
}

// Check validates relations the schema cannot express.
func (e EditorConfig) Check() error {
	if e.XMin >= e.XMax {
		return &ConfigurationError{Field: "editor.xmin", Value: strconv.FormatFloat(e.XMin, 'g', -1, 64),
			Err: fmt.Errorf("must be below xmax (%g)", e.XMax)}
	}
	if err := CheckYMax(e.YMax); err != nil {
		return err
	}
	if !(e.HitRadius > 0) || math.IsInf(e.HitRadius, 0) {
		return &ConfigurationError{Field: "editor.hit_radius", Value: strconv.FormatFloat(e.HitRadius, 'g', -1, 64), Err: ErrNotPositive}
	}
	return nil
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if s := strings.TrimSpace(src.Editor.Resname); s != "" {
		dst.Editor.Resname = s
	}
	if src.Editor.Label != "" {
		dst.Editor.Label = src.Editor.Label
	}
	if s := strings.TrimSpace(src.Editor.OutputMode); s != "" {
		dst.Editor.OutputMode = strings.ToLower(s)
	}
	if src.Editor.YMax != 0 {
		dst.Editor.YMax = src.Editor.YMax
	}
	// a [0, 0] x range is meaningless, so treat it as unset
	if src.Editor.XMin != 0 || src.Editor.XMax != 0 {
		dst.Editor.XMin = src.Editor.XMin
		dst.Editor.XMax = src.Editor.XMax
	}
	if src.Editor.HitRadius != 0 {
		dst.Editor.HitRadius = src.Editor.HitRadius
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvResname)); v != "" {
		cfg.Editor.Resname = v
	}
	if v := os.Getenv(EnvLabel); v != "" {
		cfg.Editor.Label = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutputMode)); v != "" {
		cfg.Editor.OutputMode = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvYMax)); v != "" {
		if f, err := ParseYMax(v); err == nil {
			cfg.Editor.YMax = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvHitRadius)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Editor.HitRadius = f
		}
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}
