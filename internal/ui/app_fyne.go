//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"errors"
	"image/color"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"beadgrid/internal/config"
	"beadgrid/internal/crash"
	"beadgrid/internal/domain"
	"beadgrid/internal/editor"
	"beadgrid/internal/export"
	applog "beadgrid/internal/log"
	"beadgrid/internal/vector"
	"beadgrid/internal/version"
)

const welcomeText = `Welcome to the lipid bead grid editor!
This helps you define the initial lipid grid used by insane and COBY to build membranes.

 1) Enter your lipid resname on the right.
 2) Bead by bead, following the order in your itp file, enter the bead name and click
    where you believe it roughly sits.
    Typical depths of the POPC headgroup, phosphodiester (PO4), glycerol and acyl
    chains are shaded when the plane reaches 8.5. Drag a bead to move it, right click
    to delete it.
 3) Press 'Write Output' and paste the result into insane.py. COBY output is also
    available but bead charges need manual adjustment.
`

// Run starts the Fyne desktop window for a fresh session seeded from cfg.
func Run(cfg config.EditorConfig) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.String("version", version.String()))

	sess := editor.NewSession(cfg)
	defer crash.Recover(sess)

	fyneApp := app.NewWithID("beadgrid")
	w := fyneApp.NewWindow("Lipid Bead Grid")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1100)
	winH := prefs.IntWithFallback("window.height", 700)
	if winW < 800 {
		winW = 800
	}
	if winH < 500 {
		winH = 500
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Ready")
	grid := NewGridCanvas(sess)

	out := widget.NewMultiLineEntry()
	out.TextStyle = fyne.TextStyle{Monospace: true}
	out.Wrapping = fyne.TextWrapOff
	out.SetText(welcomeText)

	resnameEntry := widget.NewEntry()
	resnameEntry.SetPlaceHolder(export.DefaultResname)
	resnameEntry.SetText(sess.Resname())
	resnameEntry.OnChanged = sess.SetResname

	labelEntry := widget.NewEntry()
	labelEntry.SetText(sess.Editor().PendingLabel())
	labelEntry.OnChanged = sess.SetPendingLabel

	ymaxEntry := widget.NewEntry()
	ymaxEntry.SetText(export.FormatCoord(sess.YMax()))
	applyYMax := func(text string) {
		v, err := config.ParseYMax(text)
		if err == nil {
			err = sess.SetYMax(v)
		}
		if err != nil {
			var cerr *config.ConfigurationError
			if errors.As(err, &cerr) {
				l.Warn("ymax rejected", slog.String("value", cerr.Value))
			}
			dialog.ShowError(err, w)
			return
		}
		grid.Refresh()
		status.SetText("Depth range 0 to " + export.FormatCoord(v))
	}
	ymaxEntry.OnSubmitted = applyYMax
	btnYMax := widget.NewButton("Apply", func() { applyYMax(ymaxEntry.Text) })

	cobyCheck := widget.NewCheck("COBY output", func(on bool) {
		if on {
			sess.SetMode(export.COBY)
		} else {
			sess.SetMode(export.Insane)
		}
	})
	cobyCheck.SetChecked(sess.Mode() == export.COBY)

	btnWrite := widget.NewButton("Write Output", func() {
		out.SetText(sess.Output())
		status.SetText("Wrote " + sess.Mode().String() + " output")
	})
	btnExample := widget.NewButton("Example Case", func() {
		sess.LoadExample()
		resnameEntry.SetText(sess.Resname())
		grid.Refresh()
		out.SetText(sess.Output())
		status.SetText("Loaded POPC example")
	})
	btnCopy := widget.NewButton("Copy Output", func() {
		w.Clipboard().SetContent(out.Text)
		status.SetText("Output copied to clipboard")
	})
	btnClear := widget.NewButton("Clear", func() {
		sess.Clear()
		grid.Refresh()
		status.SetText("Cleared")
	})
	btnClose := widget.NewButton("Close", func() { w.Close() })

	grid.OnChanged = func(a editor.Action) {
		status.SetText(a.String() + ", " + strconv.Itoa(sess.Len()) + " beads")
	}

	form := widget.NewForm(
		widget.NewFormItem("Resname", resnameEntry),
		widget.NewFormItem("Bead name", labelEntry),
		widget.NewFormItem("Max depth", container.NewBorder(nil, nil, nil, btnYMax, ymaxEntry)),
	)
	controls := container.NewVBox(form, cobyCheck, btnWrite, btnExample, btnCopy, btnClear, btnClose)
	right := container.NewBorder(controls, nil, nil, nil, out)

	split := container.NewHSplit(grid, right)
	split.Offset = 0.5
	w.SetContent(container.NewBorder(nil, status, nil, nil, split))

	w.SetCloseIntercept(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		if err := config.SaveEditor(sess.Settings()); err != nil {
			l.Warn("editor settings not saved", slog.Any("err", err))
		}
		w.Close()
	})

	w.ShowAndRun()
	l.Info("UI closed", slog.Int("beads", sess.Len()))
	return nil
}

// GridCanvas draws a session's plane and turns pointer events into session
// calls. Primary press adds or captures, dragging moves the capture, release
// drops it and a secondary press deletes.
type GridCanvas struct {
	widget.BaseWidget

	sess *editor.Session
	// OnChanged is called after an event that modified the bead set.
	OnChanged func(editor.Action)
}

var (
	_ desktop.Mouseable = (*GridCanvas)(nil)
	_ desktop.Hoverable = (*GridCanvas)(nil)
	_ fyne.Draggable    = (*GridCanvas)(nil)
)

func NewGridCanvas(sess *editor.Session) *GridCanvas {
	g := &GridCanvas{sess: sess}
	g.ExtendBaseWidget(g)
	return g
}

// PreferredSize sets a decent default size for the widget.
func (g *GridCanvas) PreferredSize() fyne.Size { return fyne.NewSize(500, 500) }

func (g *GridCanvas) viewport() vector.Viewport {
	sz := g.Size()
	return vector.Viewport{Plane: g.sess.Plane(), W: float64(sz.Width), H: float64(sz.Height)}
}

func (g *GridCanvas) toPlane(pos fyne.Position) vector.Pt {
	return g.viewport().ToPlane(float64(pos.X), float64(pos.Y))
}

func (g *GridCanvas) toScreen(p vector.Pt) fyne.Position {
	s := g.viewport().ToScreen(p)
	return fyne.NewPos(float32(s.X), float32(s.Y))
}

func (g *GridCanvas) handle(a editor.Action) {
	if a == editor.ActionNone {
		return
	}
	g.Refresh()
	if a.Changed() && g.OnChanged != nil {
		g.OnChanged(a)
	}
}

func (g *GridCanvas) MouseDown(e *desktop.MouseEvent) {
	p := g.toPlane(e.Position)
	switch e.Button {
	case desktop.MouseButtonPrimary:
		g.handle(g.sess.OnPrimaryPress(p.X, p.Y))
	case desktop.MouseButtonSecondary:
		g.handle(g.sess.OnSecondaryPress(p.X, p.Y))
	}
}

func (g *GridCanvas) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		g.handle(g.sess.OnPrimaryRelease())
	}
}

func (g *GridCanvas) Dragged(e *fyne.DragEvent) {
	p := g.toPlane(e.Position)
	g.handle(g.sess.OnPointerMove(p.X, p.Y))
}

func (g *GridCanvas) DragEnd() { g.handle(g.sess.OnPrimaryRelease()) }

func (g *GridCanvas) MouseIn(*desktop.MouseEvent) {}

func (g *GridCanvas) MouseMoved(e *desktop.MouseEvent) {
	p := g.toPlane(e.Position)
	g.handle(g.sess.OnPointerMove(p.X, p.Y))
}

func (g *GridCanvas) MouseOut() {}

// CreateRenderer builds the background only; plane contents are rebuilt on
// every refresh because bead count changes with each click.
func (g *GridCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.White)
	frame := canvas.NewRectangle(color.Transparent)
	frame.StrokeColor = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	frame.StrokeWidth = 1
	r := &gridCanvasRenderer{g: g, bg: bg, frame: frame}
	r.rebuild()
	return r
}

type gridCanvasRenderer struct {
	g       *GridCanvas
	bg      *canvas.Rectangle
	frame   *canvas.Rectangle
	objects []fyne.CanvasObject
}

func (r *gridCanvasRenderer) Destroy()                     {}
func (r *gridCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *gridCanvasRenderer) MinSize() fyne.Size           { return fyne.NewSize(200, 200) }
func (r *gridCanvasRenderer) Refresh()                     { r.rebuild(); canvas.Refresh(r.g) }

func (r *gridCanvasRenderer) Layout(size fyne.Size) {
	r.rebuild()
}

func nrgba(c domain.Color) color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

// rebuild lays out bands, grid, beads and labels for the current widget size.
func (r *gridCanvasRenderer) rebuild() {
	g := r.g
	size := g.Size()
	plane := g.sess.Plane()
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	r.frame.Resize(size)
	r.frame.Move(fyne.NewPos(0, 0))
	objs := []fyne.CanvasObject{r.bg}

	for _, b := range g.sess.Guides() {
		top := g.toScreen(vector.Pt{X: plane.X, Y: b.MaxZ})
		bot := g.toScreen(vector.Pt{X: plane.Max().X, Y: b.MinZ})
		band := canvas.NewRectangle(nrgba(b.Fill))
		band.Move(top)
		band.Resize(fyne.NewSize(bot.X-top.X, bot.Y-top.Y))
		objs = append(objs, band)

		name := canvas.NewText(b.Name, nrgba(b.Text))
		name.TextSize = 11
		at := g.toScreen(vector.Pt{X: plane.X + 0.5, Y: b.LabelZ})
		name.Move(fyne.NewPos(at.X, at.Y-name.MinSize().Height/2))
		objs = append(objs, name)
	}

	gc := color.RGBA{R: 210, G: 210, B: 210, A: 255}
	for x := float64(int(plane.X)); x <= plane.Max().X; x++ {
		if x < plane.X {
			continue
		}
		p := g.toScreen(vector.Pt{X: x, Y: plane.Y})
		ln := canvas.NewLine(gc)
		ln.Position1 = fyne.NewPos(p.X, 0)
		ln.Position2 = fyne.NewPos(p.X, size.Height)
		objs = append(objs, ln)
	}
	for z := float64(int(plane.Y)); z <= plane.Max().Y; z++ {
		if z < plane.Y {
			continue
		}
		p := g.toScreen(vector.Pt{X: plane.X, Y: z})
		ln := canvas.NewLine(gc)
		ln.Position1 = fyne.NewPos(0, p.Y)
		ln.Position2 = fyne.NewPos(size.Width, p.Y)
		objs = append(objs, ln)
	}

	const rad = float32(5)
	dragged, dragging := g.sess.Editor().Dragging()
	for i, b := range g.sess.Beads() {
		c := g.toScreen(vector.Pt{X: b.Pos.X, Y: b.Pos.Z})
		halo := canvas.NewCircle(color.NRGBA{R: 128, G: 128, B: 128, A: 51})
		halo.Move(fyne.NewPos(c.X-4*rad, c.Y-4*rad))
		halo.Resize(fyne.NewSize(8*rad, 8*rad))
		dot := canvas.NewCircle(color.RGBA{R: 220, G: 0, B: 0, A: 255})
		if dragging && i == dragged {
			dot.StrokeColor = color.Black
			dot.StrokeWidth = 2
		}
		dot.Move(fyne.NewPos(c.X-rad, c.Y-rad))
		dot.Resize(fyne.NewSize(2*rad, 2*rad))
		label := canvas.NewText(b.Label, color.Black)
		label.TextSize = 10
		ls := label.MinSize()
		label.Move(fyne.NewPos(c.X-rad-2-ls.Width, c.Y-ls.Height/2))
		objs = append(objs, halo, dot, label)
	}
	r.objects = append(objs, r.frame)
}
