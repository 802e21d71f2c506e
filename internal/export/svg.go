/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"io"

	"beadgrid/internal/domain"
	"beadgrid/internal/vector"
)

// RenderSVG writes a vector preview of beads. The layout matches RenderImage.
func RenderSVG(w io.Writer, beads []domain.Bead, opt PreviewOptions) error {
	opt = opt.withDefaults(600, 600)
	vp := opt.viewport()

	var buf bytes.Buffer
	var werr error
	wf := func(format string, a ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, a...)
	}

	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n", opt.Width, opt.Height, opt.Width, opt.Height)
	if opt.Title != "" {
		wf("  <title>%s</title>\n", escText(opt.Title))
	}
	wf("  <rect x=\"0\" y=\"0\" width=\"%d\" height=\"%d\" fill=\"#fff\"/>\n", opt.Width, opt.Height)

	for _, b := range opt.guides() {
		x0, y0, x1, y1 := bandRect(vp, b)
		wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\" fill-opacity=\"%.2f\"/>\n", x0, y0, x1-x0, y1-y0, svgColor(b.Fill), float64(b.Fill.A)/255)
		at := vp.ToScreen(vector.Pt{X: bandLabelX(opt.Plane), Y: b.LabelZ})
		wf("  <text x=\"%g\" y=\"%g\" font-family=\"Helvetica, Arial, sans-serif\" font-size=\"12\" fill=\"%s\" fill-opacity=\"%.2f\">%s</text>\n", at.X, at.Y-2, svgColor(b.Text), float64(b.Text.A)/255, escText(b.Name))
	}

	if !opt.NoGrid {
		for _, x := range gridTicks(opt.Plane.X, opt.Plane.Max().X) {
			sx := vp.ToScreen(vector.Pt{X: x}).X
			wf("  <line x1=\"%g\" y1=\"0\" x2=\"%g\" y2=\"%d\" stroke=\"#d2d2d2\" stroke-width=\"1\"/>\n", sx, sx, opt.Height)
		}
		for _, z := range gridTicks(opt.Plane.Y, opt.Plane.Max().Y) {
			sy := vp.ToScreen(vector.Pt{Y: z}).Y
			wf("  <line x1=\"0\" y1=\"%g\" x2=\"%d\" y2=\"%g\" stroke=\"#d2d2d2\" stroke-width=\"1\"/>\n", sy, opt.Width, sy)
		}
	}

	for _, b := range beads {
		c := vp.ToScreen(vector.Pt{X: b.Pos.X, Y: b.Pos.Z})
		wf("  <circle cx=\"%g\" cy=\"%g\" r=\"%d\" fill=\"#808080\" fill-opacity=\"0.2\"/>\n", c.X, c.Y, beadRadiusPx*4)
		wf("  <circle cx=\"%g\" cy=\"%g\" r=\"%d\" fill=\"#dc0000\"/>\n", c.X, c.Y, beadRadiusPx)
		wf("  <text x=\"%g\" y=\"%g\" text-anchor=\"end\" font-family=\"%s\" font-size=\"9\" fill=\"#000\">%s</text>\n", c.X-beadRadiusPx, c.Y, escAttr("Helvetica, Arial, sans-serif"), escText(b.Label))
	}

	wf("</svg>\n")
	if werr != nil {
		return fmt.Errorf("build svg: %w", werr)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func svgColor(c domain.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func escAttr(s string) string {
	// naive escaping sufficient for our simple usage
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '"':
			out = append(out, '&', 'q', 'u', 'o', 't', ';')
		case '\n':
			out = append(out, ' ')
		case '\r':
			// skip
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '&':
			out = append(out, '&', 'a', 'm', 'p', ';')
		case '<':
			out = append(out, '&', 'l', 't', ';')
		case '>':
			out = append(out, '&', 'g', 't', ';')
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
