/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"math"
	"testing"
)

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRectContainsEdges(t *testing.T) {
	r := Span(-5, 0, 5, 10)
	if !r.Contains(Pt{-5, 0}) || !r.Contains(Pt{5, 10}) {
		t.Fatalf("expected edge points to be contained")
	}
	if r.Contains(Pt{5.01, 3}) || r.Contains(Pt{0, -0.1}) {
		t.Fatalf("expected outside points to be rejected")
	}
	if r.W != 10 || r.H != 10 {
		t.Fatalf("unexpected span: %+v", r)
	}
}

func TestRectEmpty(t *testing.T) {
	if !Span(0, 0, 1, 0).Empty() {
		t.Fatalf("zero height rect should be empty")
	}
	if !Span(2, 0, 1, 5).Empty() {
		t.Fatalf("inverted rect should be empty")
	}
	if Span(-5, 0, 5, 10).Max() != (Pt{5, 10}) {
		t.Fatalf("unexpected max corner")
	}
}
