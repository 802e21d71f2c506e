/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"beadgrid/internal/config"
	"beadgrid/internal/domain"
	"beadgrid/internal/export"
	applog "beadgrid/internal/log"
	"beadgrid/internal/vector"
)

// Session is one editing session: a bead set, the editor driving it and the
// metadata that goes with it on output. Sessions share nothing, so several
// can coexist and tests need no display.
type Session struct {
	set     *domain.BeadSet
	ed      *Editor
	resname string
	mode    export.Mode
	ymax    float64
	xmin    float64
	xmax    float64
	log     *slog.Logger
}

// NewSession starts an empty session seeded from cfg.
func NewSession(cfg config.EditorConfig) *Session {
	def := config.DefaultEditor()
	if !(cfg.XMin < cfg.XMax) || math.IsInf(cfg.XMin, 0) || math.IsInf(cfg.XMax, 0) {
		cfg.XMin, cfg.XMax = def.XMin, def.XMax
	}
	if config.CheckYMax(cfg.YMax) != nil {
		cfg.YMax = def.YMax
	}
	if !validRadius(cfg.HitRadius) {
		cfg.HitRadius = def.HitRadius
	}
	if strings.TrimSpace(cfg.Resname) == "" {
		cfg.Resname = def.Resname
	}
	if cfg.Label == "" {
		cfg.Label = def.Label
	}
	mode, err := export.ParseMode(cfg.OutputMode)
	l := applog.WithComponent("session")
	if err != nil && cfg.OutputMode != "" {
		l.Warn("unknown output mode, using insane", slog.String("mode", cfg.OutputMode))
	}
	s := &Session{
		set:     &domain.BeadSet{},
		resname: cfg.Resname,
		mode:    mode,
		ymax:    cfg.YMax,
		xmin:    cfg.XMin,
		xmax:    cfg.XMax,
		log:     l,
	}
	s.ed = New(s.set, Options{HitRadius: cfg.HitRadius, Bounds: s.Plane()})
	s.ed.SetPendingLabel(cfg.Label)
	s.rescope()
	return s
}

// scope is the logging context for records about this session.
func (s *Session) scope(resname string, mode export.Mode) context.Context {
	return applog.WithScope(context.Background(), applog.Scope{Resname: resname, Mode: mode.String()})
}

func (s *Session) rescope() {
	s.ed.SetLogContext(s.scope(export.Request{Resname: s.resname}.ResolvedResname(), s.mode))
}

// Plane is the region in which presses are accepted: x in [xmin, xmax] and
// depth in [0, ymax].
func (s *Session) Plane() vector.Rect { return vector.Span(s.xmin, 0, s.xmax, s.ymax) }

func (s *Session) Editor() *Editor { return s.ed }

func (s *Session) OnPrimaryPress(x, z float64) Action   { return s.ed.PrimaryPress(x, z) }
func (s *Session) OnSecondaryPress(x, z float64) Action { return s.ed.SecondaryPress(x, z) }
func (s *Session) OnPointerMove(x, z float64) Action    { return s.ed.PointerMove(x, z) }
func (s *Session) OnPrimaryRelease() Action             { return s.ed.PrimaryRelease() }

// SetPendingLabel sets the name of the next placed bead.
func (s *Session) SetPendingLabel(text string) { s.ed.SetPendingLabel(text) }

func (s *Session) SetResname(name string) {
	s.resname = name
	s.rescope()
}

func (s *Session) Resname() string { return s.resname }

func (s *Session) SetMode(m export.Mode) {
	s.mode = m
	s.rescope()
}

func (s *Session) Mode() export.Mode { return s.mode }

// SetYMax changes the visible depth range. Invalid values are rejected with a
// *config.ConfigurationError and leave the session untouched.
func (s *Session) SetYMax(v float64) error {
	if err := config.CheckYMax(v); err != nil {
		return err
	}
	s.ymax = v
	s.ed.SetBounds(s.Plane())
	return nil
}

func (s *Session) YMax() float64 { return s.ymax }

// Guides returns the depth bands to draw for the current range.
func (s *Session) Guides() []domain.Band { return domain.Guides(s.ymax) }

// Beads returns a copy of the current beads in order.
func (s *Session) Beads() []domain.Bead { return s.set.Beads() }

func (s *Session) Len() int { return s.set.Len() }

// Clear empties the set and drops any capture.
func (s *Session) Clear() {
	s.set.Clear()
	s.ed.Reset()
}

// LoadExample replaces the set with the POPC reference layout and sets the
// residue name to match.
func (s *Session) LoadExample() {
	s.set.Replace(domain.Example())
	s.ed.Reset()
	s.resname = domain.ExampleResname
	s.rescope()
	s.log.InfoContext(s.ed.logCtx, "example loaded", slog.Int("beads", s.set.Len()))
}

// RequestOutput serializes the current beads under resname in mode.
func (s *Session) RequestOutput(resname string, mode export.Mode) string {
	req := export.Request{Resname: resname, Mode: mode}
	out := export.Serialize(s.set.Beads(), req)
	ctx := s.scope(req.ResolvedResname(), mode)
	s.log.DebugContext(ctx, "output", slog.Int("beads", s.set.Len()),
		slog.Int("lines", strings.Count(out, "\n")+1))
	return out
}

// Settings returns the session's current editor settings, suitable for
// config.SaveEditor so the next session starts where this one ended.
func (s *Session) Settings() config.EditorConfig {
	return config.EditorConfig{
		Resname:    s.resname,
		Label:      s.ed.PendingLabel(),
		OutputMode: s.mode.String(),
		YMax:       s.ymax,
		XMin:       s.xmin,
		XMax:       s.xmax,
		HitRadius:  s.ed.HitRadius(),
	}
}

// Output serializes with the session's own resname and mode.
func (s *Session) Output() string { return s.RequestOutput(s.resname, s.mode) }
