/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "testing"

func TestGuidesHiddenBelowThreshold(t *testing.T) {
	if g := Guides(8.4); len(g) != 0 {
		t.Fatalf("expected no guides for ymax 8.4, got %d", len(g))
	}
}

func TestGuidesShownAtDefaultRange(t *testing.T) {
	g := Guides(10)
	if len(g) != 4 {
		t.Fatalf("expected 4 guide bands, got %d", len(g))
	}
	if g[0].Name != "Choline Headgroup" || g[3].Name != "Acyl-chains" {
		t.Fatalf("unexpected band order: %q .. %q", g[0].Name, g[3].Name)
	}
	for i := 1; i < len(g); i++ {
		if g[i].MaxZ != g[i-1].MinZ {
			t.Fatalf("bands %d and %d are not contiguous", i-1, i)
		}
	}
	if g[3].MinZ != 0 {
		t.Fatalf("acyl band should start at the plane floor")
	}
}
