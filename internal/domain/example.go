/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// ExampleResname is the residue name of the reference configuration.
const ExampleResname = "POPC"

// Example returns the POPC reference layout: headgroup, phosphate and glycerol
// beads stacked on x=0 above two acyl chains at x=0 and x=1, spanning z 2..8.
func Example() []Bead {
	return []Bead{
		{Pos: Point{X: 0, Z: 8}, Label: "NC3"},
		{Pos: Point{X: 0, Z: 7}, Label: "PO4"},
		{Pos: Point{X: 0, Z: 6}, Label: "GL1"},
		{Pos: Point{X: 0.5, Z: 6}, Label: "GL2"},
		{Pos: Point{X: 0, Z: 5}, Label: "C1A"},
		{Pos: Point{X: 0, Z: 4}, Label: "D2A"},
		{Pos: Point{X: 0, Z: 3}, Label: "C3A"},
		{Pos: Point{X: 0, Z: 2}, Label: "C4A"},
		{Pos: Point{X: 1, Z: 5}, Label: "C1B"},
		{Pos: Point{X: 1, Z: 4}, Label: "C2B"},
		{Pos: Point{X: 1, Z: 3}, Label: "C3B"},
		{Pos: Point{X: 1, Z: 2}, Label: "C4B"},
	}
}
