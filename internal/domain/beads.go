/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the bead set edited on the lipid grid. A bead is a point
// on the x/z plane paired with its name; the set keeps beads in the order the
// user placed them, which is also the order they appear in the topology.

import (
	"errors"
	"fmt"
	"math"
)

// ErrIndexOutOfRange is returned when a bead index does not address the set.
var ErrIndexOutOfRange = errors.New("bead index out of range")

// Point is a position on the logical plane. X is the lateral axis and Z the
// depth axis; neither is bounded by the model.
type Point struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Z-q.Z) }

// Bead is a named point.
type Bead struct {
	Pos   Point  `json:"pos"`
	Label string `json:"label"`
}

// BeadSet is an ordered collection of beads. The zero value is an empty set.
type BeadSet struct {
	beads []Bead
}

// NewBeadSet returns a set holding a copy of beads.
func NewBeadSet(beads ...Bead) *BeadSet {
	s := &BeadSet{}
	s.Replace(beads)
	return s
}

func (s *BeadSet) Len() int { return len(s.beads) }

// At returns the bead at index i.
func (s *BeadSet) At(i int) (Bead, error) {
	if err := s.check(i); err != nil {
		return Bead{}, err
	}
	return s.beads[i], nil
}

// Append adds a bead at the end of the set.
func (s *BeadSet) Append(p Point, label string) {
	s.beads = append(s.beads, Bead{Pos: p, Label: label})
}

// RemoveAt deletes the bead at i and returns it. Remaining beads keep their
// relative order.
func (s *BeadSet) RemoveAt(i int) (Bead, error) {
	if err := s.check(i); err != nil {
		return Bead{}, err
	}
	b := s.beads[i]
	s.beads = append(s.beads[:i], s.beads[i+1:]...)
	return b, nil
}

// UpdateAt moves the bead at i to p. The label is left untouched.
func (s *BeadSet) UpdateAt(i int, p Point) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.beads[i].Pos = p
	return nil
}

// FindNear returns the lowest index whose bead lies strictly closer than
// radius to q. Overlapping beads therefore resolve to the oldest one.
func (s *BeadSet) FindNear(q Point, radius float64) (int, bool) {
	for i, b := range s.beads {
		if b.Pos.Dist(q) < radius {
			return i, true
		}
	}
	return -1, false
}

// Clear removes all beads.
func (s *BeadSet) Clear() { s.beads = nil }

// Replace swaps the whole content for a copy of beads.
func (s *BeadSet) Replace(beads []Bead) {
	s.beads = append([]Bead(nil), beads...)
}

// Beads returns a copy of the beads in order.
func (s *BeadSet) Beads() []Bead { return append([]Bead(nil), s.beads...) }

// Points returns the bead positions in order.
func (s *BeadSet) Points() []Point {
	out := make([]Point, len(s.beads))
	for i, b := range s.beads {
		out[i] = b.Pos
	}
	return out
}

// Labels returns the bead names in order.
func (s *BeadSet) Labels() []string {
	out := make([]string, len(s.beads))
	for i, b := range s.beads {
		out[i] = b.Label
	}
	return out
}

func (s *BeadSet) check(i int) error {
	if i < 0 || i >= len(s.beads) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(s.beads))
	}
	return nil
}
