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
	"io"

	"github.com/jung-kurt/gofpdf"

	"beadgrid/internal/domain"
	"beadgrid/internal/vector"
)

// Sheet margins in millimetres on an A4 portrait page.
const (
	sheetMargin = 15.0
	plotTop     = 28.0
)

// RenderPDF writes a one-page A4 sheet: a heading, the bead plot and the
// serialized block for opt.Request underneath, ready to be copied by hand.
// Width/Height in opt are the plot size in millimetres (default 120x120).
//
// Units are millimetres; the built-in Helvetica and Courier keep text vector
// without embedding fonts.
func RenderPDF(w io.Writer, beads []domain.Bead, opt PreviewOptions) error {
	opt = opt.withDefaults(120, 120)
	pdf := gofpdf.New("P", "mm", "A4", "")
	title := opt.Title
	if title == "" {
		title = "Lipid bead grid: " + opt.Request.ResolvedResname()
	}
	pdf.SetTitle(title, false)
	pdf.SetAuthor("beadgrid", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(sheetMargin, sheetMargin+5, title)

	pageW, _ := pdf.GetPageSize()
	ox := (pageW - float64(opt.Width)) / 2
	oy := plotTop
	vp := opt.viewport()
	at := func(p vector.Pt) (float64, float64) {
		s := vp.ToScreen(p)
		return ox + s.X, oy + s.Y
	}

	for _, b := range opt.guides() {
		x0, y0, x1, y1 := bandRect(vp, b)
		setFillColor(pdf, b.Fill)
		pdf.SetAlpha(float64(b.Fill.A)/255, "Normal")
		pdf.Rect(ox+x0, oy+y0, x1-x0, y1-y0, "F")
		pdf.SetAlpha(1, "Normal")
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(int(b.Text.R), int(b.Text.G), int(b.Text.B))
		tx, ty := at(vector.Pt{X: bandLabelX(opt.Plane), Y: b.LabelZ})
		pdf.Text(tx, ty-0.5, b.Name)
	}

	if !opt.NoGrid {
		setDrawColor(pdf, domain.Color{R: 210, G: 210, B: 210, A: 255})
		pdf.SetLineWidth(0.1)
		for _, x := range gridTicks(opt.Plane.X, opt.Plane.Max().X) {
			x0, y0 := at(vector.Pt{X: x, Y: opt.Plane.Y})
			x1, y1 := at(vector.Pt{X: x, Y: opt.Plane.Max().Y})
			pdf.Line(x0, y0, x1, y1)
		}
		for _, z := range gridTicks(opt.Plane.Y, opt.Plane.Max().Y) {
			x0, y0 := at(vector.Pt{X: opt.Plane.X, Y: z})
			x1, y1 := at(vector.Pt{X: opt.Plane.Max().X, Y: z})
			pdf.Line(x0, y0, x1, y1)
		}
	}
	setDrawColor(pdf, domain.Color{R: 40, G: 40, B: 40, A: 255})
	pdf.SetLineWidth(0.3)
	pdf.Rect(ox, oy, float64(opt.Width), float64(opt.Height), "D")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(0, 0, 0)
	for _, b := range beads {
		x, y := at(vector.Pt{X: b.Pos.X, Y: b.Pos.Z})
		setFillColor(pdf, domain.Color{R: 220, G: 0, B: 0, A: 255})
		pdf.Circle(x, y, 1.2, "F")
		pdf.Text(x-1.6-pdf.GetStringWidth(b.Label), y+1, b.Label)
	}

	pdf.SetFont("Courier", "", 7)
	pdf.SetXY(sheetMargin, oy+float64(opt.Height)+8)
	pdf.MultiCell(pageW-2*sheetMargin, 3.5, Serialize(beads, opt.Request), "", "L", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func setDrawColor(pdf *gofpdf.Fpdf, c domain.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c domain.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}
