/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"beadgrid/internal/domain"
	"beadgrid/internal/vector"
)

// PreviewOptions controls the PNG, SVG and PDF previews of a bead set.
// Zero values fall back to the editor's default plane and a 600x600 surface.
type PreviewOptions struct {
	Plane   vector.Rect // visible region of the x/z plane
	Width   int         // surface width in pixels (PNG, SVG) or millimetres (PDF plot)
	Height  int
	Guides  bool   // draw depth bands when the plane is tall enough
	Title   string // optional heading, PDF and SVG only
	NoGrid  bool
	Request Request // PDF only: grammar printed under the plot
}

// DefaultPlane is x in [-5, 5] and depth in [0, 10].
var DefaultPlane = vector.Span(-5, 0, 5, 10)

func (o PreviewOptions) withDefaults(w, h int) PreviewOptions {
	if o.Plane.Empty() {
		o.Plane = DefaultPlane
	}
	if o.Width <= 0 {
		o.Width = w
	}
	if o.Height <= 0 {
		o.Height = h
	}
	return o
}

func (o PreviewOptions) viewport() vector.Viewport {
	return vector.Viewport{Plane: o.Plane, W: float64(o.Width), H: float64(o.Height)}
}

func (o PreviewOptions) guides() []domain.Band {
	if !o.Guides {
		return nil
	}
	return domain.Guides(o.Plane.Max().Y)
}

// gridTicks returns the whole-unit positions inside [lo, hi].
func gridTicks(lo, hi float64) []float64 {
	var out []float64
	for v := float64(int(lo)); v <= hi; v++ {
		if v >= lo {
			out = append(out, v)
		}
	}
	return out
}

func bandRect(vp vector.Viewport, b domain.Band) (x0, y0, x1, y1 float64) {
	top := vp.ToScreen(vector.Pt{X: vp.Plane.X, Y: b.MaxZ})
	bot := vp.ToScreen(vector.Pt{X: vp.Plane.Max().X, Y: b.MinZ})
	return top.X, top.Y, bot.X, bot.Y
}

// bandLabelX is where band names start, half a unit in from the left edge.
func bandLabelX(plane vector.Rect) float64 { return plane.X + 0.5 }
