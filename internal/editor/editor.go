/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor turns pointer events, given in plane coordinates, into edits
// of a bead set. It holds no pixels and no widgets; a view forwards events and
// redraws from the set whenever a transition reports a change.
package editor

import (
	"context"
	"log/slog"
	"math"

	"beadgrid/internal/domain"
	applog "beadgrid/internal/log"
	"beadgrid/internal/vector"
)

// DefaultHitRadius is the plane distance within which a press grabs a bead.
const DefaultHitRadius = 0.3

// Action tells the view what a transition did.
type Action int

const (
	ActionNone Action = iota
	ActionAdded
	ActionCaptured
	ActionMoved
	ActionRemoved
	ActionReleased
)

func (a Action) String() string {
	switch a {
	case ActionAdded:
		return "added"
	case ActionCaptured:
		return "captured"
	case ActionMoved:
		return "moved"
	case ActionRemoved:
		return "removed"
	case ActionReleased:
		return "released"
	default:
		return "none"
	}
}

// Changed reports whether the bead set was modified.
func (a Action) Changed() bool {
	return a == ActionAdded || a == ActionMoved || a == ActionRemoved
}

// Options configure an Editor. A zero Bounds accepts presses anywhere.
type Options struct {
	HitRadius float64
	Bounds    vector.Rect
}

// Editor is the pointer state machine. It is either idle or dragging exactly
// one bead, identified by its current index in the set.
// Not safe for concurrent use; events are expected from a single UI thread.
type Editor struct {
	set      *domain.BeadSet
	opts     Options
	label    string
	dragging int // -1 when idle
	log      *slog.Logger
	logCtx   context.Context
}

// New returns an idle editor over set.
func New(set *domain.BeadSet, opts Options) *Editor {
	if !validRadius(opts.HitRadius) {
		opts.HitRadius = DefaultHitRadius
	}
	return &Editor{
		set:      set,
		opts:     opts,
		dragging: -1,
		log:      applog.WithComponent("editor"),
		logCtx:   context.Background(),
	}
}

func validRadius(r float64) bool { return r > 0 && !math.IsInf(r, 0) }

// SetLogContext sets the context transitions are logged with, typically one
// carrying the session scope.
func (e *Editor) SetLogContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	e.logCtx = ctx
}

// SetPendingLabel sets the name given to the next placed bead.
func (e *Editor) SetPendingLabel(text string) { e.label = text }

func (e *Editor) PendingLabel() string { return e.label }

// SetBounds changes the region in which presses are accepted.
func (e *Editor) SetBounds(r vector.Rect) { e.opts.Bounds = r }

func (e *Editor) Bounds() vector.Rect { return e.opts.Bounds }

func (e *Editor) HitRadius() float64 { return e.opts.HitRadius }

// Dragging returns the captured bead index, if any.
func (e *Editor) Dragging() (int, bool) { return e.dragging, e.dragging >= 0 }

// PrimaryPress grabs the first bead under the pointer, or places a new bead
// with the pending label when nothing is hit.
func (e *Editor) PrimaryPress(x, z float64) Action {
	if !e.inBounds(x, z) {
		return ActionNone
	}
	q := domain.Point{X: x, Z: z}
	if i, ok := e.set.FindNear(q, e.opts.HitRadius); ok {
		e.dragging = i
		e.log.DebugContext(e.logCtx, "capture", slog.Int("index", i))
		return ActionCaptured
	}
	e.dragging = -1
	e.set.Append(q, e.label)
	e.log.DebugContext(e.logCtx, "add", slog.String("label", e.label), slog.Float64("x", x), slog.Float64("z", z), slog.Int("count", e.set.Len()))
	return ActionAdded
}

// SecondaryPress deletes the first bead under the pointer. Only one bead is
// removed per press even when several overlap.
func (e *Editor) SecondaryPress(x, z float64) Action {
	if !e.inBounds(x, z) {
		return ActionNone
	}
	i, ok := e.set.FindNear(domain.Point{X: x, Z: z}, e.opts.HitRadius)
	if !ok {
		return ActionNone
	}
	b, err := e.set.RemoveAt(i)
	if err != nil {
		e.log.ErrorContext(e.logCtx, "remove failed", slog.Int("index", i), slog.Any("err", err))
		return ActionNone
	}
	e.afterRemove(i)
	e.log.DebugContext(e.logCtx, "remove", slog.Int("index", i), slog.String("label", b.Label), slog.Int("count", e.set.Len()))
	return ActionRemoved
}

// PointerMove drags the captured bead to (x, z). Coordinates outside the
// bounds are stored as given; dragging is never clamped.
func (e *Editor) PointerMove(x, z float64) Action {
	if e.dragging < 0 {
		return ActionNone
	}
	p := domain.Point{X: x, Z: z}
	cur, err := e.set.At(e.dragging)
	if err != nil {
		// the set changed underneath us; drop the stale capture
		e.log.WarnContext(e.logCtx, "stale drag index", slog.Int("index", e.dragging), slog.Any("err", err))
		e.dragging = -1
		return ActionNone
	}
	if cur.Pos == p {
		return ActionNone
	}
	_ = e.set.UpdateAt(e.dragging, p)
	return ActionMoved
}

// PrimaryRelease ends any drag.
func (e *Editor) PrimaryRelease() Action {
	if e.dragging < 0 {
		return ActionNone
	}
	e.log.DebugContext(e.logCtx, "release", slog.Int("index", e.dragging))
	e.dragging = -1
	return ActionReleased
}

// Reset drops any capture. Call it after replacing the set's content.
func (e *Editor) Reset() { e.dragging = -1 }

// afterRemove keeps the capture pointing at the same bead after index i is
// deleted, or clears it when that bead was the one removed.
func (e *Editor) afterRemove(i int) {
	switch {
	case e.dragging < 0:
	case e.dragging == i:
		e.dragging = -1
	case e.dragging > i:
		e.dragging--
	}
}

func (e *Editor) inBounds(x, z float64) bool {
	if e.opts.Bounds.Empty() {
		return true
	}
	return e.opts.Bounds.Contains(vector.Pt{X: x, Y: z})
}
