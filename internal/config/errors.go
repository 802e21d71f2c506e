/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotPositive marks numeric settings that must be finite and above zero.
var ErrNotPositive = errors.New("must be a finite number above zero")

// ConfigurationError reports a setting that cannot be used. Field names the
// setting (yaml key path or UI entry) and Value holds the rejected input.
type ConfigurationError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("configuration: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("configuration: %s=%q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ParseYMax converts the text of a depth-range entry into a value usable as
// the top of the plane.
func ParseYMax(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &ConfigurationError{Field: "ymax", Value: s, Err: err}
	}
	if err := CheckYMax(v); err != nil {
		return 0, err
	}
	return v, nil
}

// CheckYMax rejects non-finite and non-positive depth ranges.
func CheckYMax(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return &ConfigurationError{Field: "ymax", Value: strconv.FormatFloat(v, 'g', -1, 64), Err: ErrNotPositive}
	}
	return nil
}
