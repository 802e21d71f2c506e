/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// Color is an RGBA color used by guide bands.
type Color struct{ R, G, B, A uint8 }

// Band is a horizontal depth region drawn behind the beads as a placement hint.
type Band struct {
	Name   string
	MinZ   float64
	MaxZ   float64
	LabelZ float64 // depth at which the band name is anchored
	Fill   Color
	Text   Color
}

// GuidesMinYMax is the smallest visible depth at which guides are shown.
const GuidesMinYMax = 8.5

// Guides returns the typical POPC depth regions for a plane that is visible up
// to ymax. Nothing is returned when the headgroup band would be cut off.
func Guides(ymax float64) []Band {
	if ymax < GuidesMinYMax {
		return nil
	}
	return []Band{
		{Name: "Choline Headgroup", MinZ: 7.5, MaxZ: 8.5, LabelZ: 8,
			Fill: Color{R: 0, G: 0, B: 255, A: 77}, Text: Color{R: 0, G: 0, B: 255, A: 179}},
		{Name: "PO4", MinZ: 6.5, MaxZ: 7.5, LabelZ: 7,
			Fill: Color{R: 255, G: 165, B: 0, A: 77}, Text: Color{R: 255, G: 140, B: 0, A: 179}},
		{Name: "Glycerol Region", MinZ: 5.5, MaxZ: 6.5, LabelZ: 6,
			Fill: Color{R: 255, G: 0, B: 0, A: 77}, Text: Color{R: 255, G: 0, B: 0, A: 179}},
		{Name: "Acyl-chains", MinZ: 0, MaxZ: 5.5, LabelZ: 2.5,
			Fill: Color{R: 128, G: 128, B: 128, A: 77}, Text: Color{R: 0, G: 0, B: 0, A: 179}},
	}
}
