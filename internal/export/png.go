/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"beadgrid/internal/domain"
	"beadgrid/internal/vector"
)

const beadRadiusPx = 5

// RenderPNG rasterizes beads onto a plane preview and encodes it as PNG.
func RenderPNG(w io.Writer, beads []domain.Bead, opt PreviewOptions) error {
	img := RenderImage(beads, opt)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// RenderImage draws the preview: white background, optional depth bands,
// unit grid, then bead markers with their names to the left.
func RenderImage(beads []domain.Bead, opt PreviewOptions) *image.RGBA {
	opt = opt.withDefaults(600, 600)
	vp := opt.viewport()
	img := image.NewRGBA(image.Rect(0, 0, opt.Width, opt.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

	for _, b := range opt.guides() {
		x0, y0, x1, y1 := bandRect(vp, b)
		r := image.Rect(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))
		draw.Draw(img, r, &image.Uniform{C: toNRGBA(b.Fill)}, image.Point{}, draw.Over)
		at := vp.ToScreen(vector.Pt{X: bandLabelX(opt.Plane), Y: b.LabelZ})
		drawText(img, b.Name, int(math.Round(at.X)), int(math.Round(at.Y))-2, toNRGBA(b.Text), false)
	}

	if !opt.NoGrid {
		gc := color.RGBA{R: 210, G: 210, B: 210, A: 255}
		for _, x := range gridTicks(opt.Plane.X, opt.Plane.Max().X) {
			sx := int(math.Round(vp.ToScreen(vector.Pt{X: x}).X))
			vline(img, sx, 0, opt.Height-1, gc)
		}
		for _, z := range gridTicks(opt.Plane.Y, opt.Plane.Max().Y) {
			sy := int(math.Round(vp.ToScreen(vector.Pt{Y: z}).Y))
			hline(img, 0, opt.Width-1, sy, gc)
		}
	}

	halo := color.NRGBA{R: 128, G: 128, B: 128, A: 51}
	dot := color.RGBA{R: 220, G: 0, B: 0, A: 255}
	for _, b := range beads {
		c := vp.ToScreen(vector.Pt{X: b.Pos.X, Y: b.Pos.Z})
		cx, cy := int(math.Round(c.X)), int(math.Round(c.Y))
		fillCircle(img, cx, cy, beadRadiusPx*4, halo)
		fillCircle(img, cx, cy, beadRadiusPx, dot)
		drawText(img, b.Label, cx-beadRadiusPx, cy, color.Black, true)
	}
	return img
}

func toNRGBA(c domain.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// drawText writes s with its baseline at y. When alignRight is set the text
// ends at x, otherwise it starts there.
func drawText(img draw.Image, s string, x, y int, col color.Color, alignRight bool) {
	d := &font.Drawer{Dst: img, Src: image.NewUniform(col), Face: basicfont.Face7x13}
	if alignRight {
		x -= d.MeasureString(s).Round()
	}
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
}

func hline(img *image.RGBA, x0, x1, y int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y, col)
	}
}

func vline(img *image.RGBA, x, y0, y1 int, col color.RGBA) {
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x, y, col)
	}
}

func fillCircle(img *image.RGBA, cx, cy, r int, col color.Color) {
	src := &image.Uniform{C: col}
	for dy := -r; dy <= r; dy++ {
		half := int(math.Sqrt(float64(r*r - dy*dy)))
		line := image.Rect(cx-half, cy+dy, cx+half+1, cy+dy+1)
		draw.Draw(img, line, src, image.Point{}, draw.Over)
	}
}
