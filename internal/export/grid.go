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
	"strconv"
	"strings"

	"beadgrid/internal/domain"
)

// Mode selects the output grammar.
type Mode int

const (
	// Insane emits the lipidsx/lipidsy/lipidsz/lipidsa block read by insane.py.
	Insane Mode = iota
	// COBY emits a lipid_defs block for COBY.
	COBY
)

func (m Mode) String() string {
	switch m {
	case Insane:
		return "insane"
	case COBY:
		return "coby"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode accepts "insane" or "coby" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "insane":
		return Insane, nil
	case "coby":
		return COBY, nil
	}
	return Insane, fmt.Errorf("unknown output mode %q (want insane or coby)", s)
}

// DefaultResname is used when the requested residue name is blank.
const DefaultResname = "UNK"

// Request carries the metadata that accompanies a bead set on output.
type Request struct {
	Resname string
	Mode    Mode
}

// ResolvedResname returns the trimmed residue name, or DefaultResname.
func (r Request) ResolvedResname() string {
	if s := strings.TrimSpace(r.Resname); s != "" {
		return s
	}
	return DefaultResname
}

// FormatCoord renders v with one decimal. The exact binary value is rounded to
// nearest with ties to even, so 0.25 gives "0.2" and 0.75 gives "0.8", while
// 0.35 (stored slightly below the tie) gives "0.3". This matches printf %.1f.
func FormatCoord(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }

// Round1 rounds v with the same rule as FormatCoord.
func Round1(v float64) float64 {
	r, _ := strconv.ParseFloat(FormatCoord(v), 64)
	return r
}

// Serialize renders beads in the grammar chosen by req. It never modifies
// beads and an empty slice yields well-formed output with empty lists.
func Serialize(beads []domain.Bead, req Request) string {
	resname := req.ResolvedResname()
	xs := make([]string, len(beads))
	ys := make([]string, len(beads))
	zs := make([]string, len(beads))
	labels := make([]string, len(beads))
	idx := make([]string, len(beads))
	for i, b := range beads {
		xs[i] = FormatCoord(b.Pos.X)
		ys[i] = FormatCoord(0)
		zs[i] = FormatCoord(b.Pos.Z)
		labels[i] = b.Label
		idx[i] = strconv.Itoa(i)
	}
	g := grid{
		resname: resname,
		x:       strings.Join(xs, ", "),
		y:       strings.Join(ys, ", "),
		z:       strings.Join(zs, ", "),
		labels:  strings.Join(labels, " "),
		indices: strings.Join(idx, ", "),
	}
	if req.Mode == COBY {
		return g.coby()
	}
	return g.insane()
}

type grid struct {
	resname string
	x, y, z string
	labels  string
	indices string
}

func (g grid) insane() string {
	var b strings.Builder
	b.WriteString("## Insane format output \n")
	fmt.Fprintf(&b, "moltype = \"%s\"\n", g.resname)
	fmt.Fprintf(&b, "lipidsx[\"%s\"] = (%s)\n", g.resname, g.x)
	fmt.Fprintf(&b, "lipidsy[\"%s\"] = (%s)\n", g.resname, g.y)
	fmt.Fprintf(&b, "lipidsz[\"%s\"] = (%s)\n", g.resname, g.z)
	fmt.Fprintf(&b, "lipidsa.update({       #   %s\n", g.indices)
	fmt.Fprintf(&b, "    \"%s\": (moltype, \"   %s  \"),\n", g.resname, g.labels)
	b.WriteString("})")
	return b.String()
}

func (g grid) coby() string {
	const key = "lipid_defs[(lipid_type, params)]"
	var b strings.Builder
	b.WriteString("## COBY format output\n")
	fmt.Fprintf(&b, "lipid_type, params = \"%s\", \"default\"\n", g.resname)
	b.WriteString(key + " = {}\n")
	fmt.Fprintf(&b, "%s[\"x\"] = (%s)\n", key, g.x)
	fmt.Fprintf(&b, "%s[\"y\"] = (%s)\n", key, g.y)
	fmt.Fprintf(&b, "%s[\"z\"] = (%s)\n", key, g.z)
	b.WriteString(key + "[\"center\"] = 6 # CP\n")
	b.WriteString(key + "[\"bd\"] = (0.25, 0.25, 0.3)\n")
	b.WriteString(key + "[\"charges\"] = () ### WARNING: Needs to be manually defined... could be something like this: ((\"NC3\", 1), (\"PO4\", -1))\n")
	fmt.Fprintf(&b, "%s[\"lipids\"] =  #   {%s\n", key, g.indices)
	fmt.Fprintf(&b, "    (\"%s\", \"beads\"): (%s),\n", g.resname, g.labels)
	b.WriteString("}\n")
	return b.String()
}
