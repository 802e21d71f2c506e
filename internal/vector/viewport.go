/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Viewport maps the logical plane onto a W x H pixel surface. Screen y grows
// downward while plane y grows upward, so the mapping flips the vertical axis.
type Viewport struct {
	Plane Rect
	W, H  float64
}

// ToScreen converts a plane point into surface coordinates.
func (v Viewport) ToScreen(p Pt) Pt {
	if v.Plane.Empty() {
		return Pt{}
	}
	sx := v.W / v.Plane.W
	sy := v.H / v.Plane.H
	return Pt{
		X: (p.X - v.Plane.X) * sx,
		Y: v.H - (p.Y-v.Plane.Y)*sy,
	}
}

// ToPlane converts surface coordinates back into the plane.
func (v Viewport) ToPlane(x, y float64) Pt {
	if v.W <= 0 || v.H <= 0 {
		return Pt{}
	}
	return Pt{
		X: v.Plane.X + x/v.W*v.Plane.W,
		Y: v.Plane.Y + (v.H-y)/v.H*v.Plane.H,
	}
}
