/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"reflect"
	"strings"
	"testing"

	"beadgrid/internal/domain"
)

const exampleInsane = `## Insane format output 
moltype = "POPC"
lipidsx["POPC"] = (0.0, 0.0, 0.0, 0.5, 0.0, 0.0, 0.0, 0.0, 1.0, 1.0, 1.0, 1.0)
lipidsy["POPC"] = (0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0)
lipidsz["POPC"] = (8.0, 7.0, 6.0, 6.0, 5.0, 4.0, 3.0, 2.0, 5.0, 4.0, 3.0, 2.0)
lipidsa.update({       #   0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11
    "POPC": (moltype, "   NC3 PO4 GL1 GL2 C1A D2A C3A C4A C1B C2B C3B C4B  "),
})`

const exampleCOBY = `## COBY format output
lipid_type, params = "POPC", "default"
lipid_defs[(lipid_type, params)] = {}
lipid_defs[(lipid_type, params)]["x"] = (0.0, 0.0, 0.0, 0.5, 0.0, 0.0, 0.0, 0.0, 1.0, 1.0, 1.0, 1.0)
lipid_defs[(lipid_type, params)]["y"] = (0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0)
lipid_defs[(lipid_type, params)]["z"] = (8.0, 7.0, 6.0, 6.0, 5.0, 4.0, 3.0, 2.0, 5.0, 4.0, 3.0, 2.0)
lipid_defs[(lipid_type, params)]["center"] = 6 # CP
lipid_defs[(lipid_type, params)]["bd"] = (0.25, 0.25, 0.3)
lipid_defs[(lipid_type, params)]["charges"] = () ### WARNING: Needs to be manually defined... could be something like this: (("NC3", 1), ("PO4", -1))
lipid_defs[(lipid_type, params)]["lipids"] =  #   {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11
    ("POPC", "beads"): (NC3 PO4 GL1 GL2 C1A D2A C3A C4A C1B C2B C3B C4B),
}
`

func TestSerializeExampleInsane(t *testing.T) {
	got := Serialize(domain.Example(), Request{Resname: "POPC", Mode: Insane})
	if got != exampleInsane {
		t.Fatalf("insane output mismatch:\n got: %q\nwant: %q", got, exampleInsane)
	}
}

func TestSerializeExampleCOBY(t *testing.T) {
	got := Serialize(domain.Example(), Request{Resname: "POPC", Mode: COBY})
	if got != exampleCOBY {
		t.Fatalf("coby output mismatch:\n got: %q\nwant: %q", got, exampleCOBY)
	}
}

func TestSerializeEmptySet(t *testing.T) {
	got := Serialize(nil, Request{Mode: Insane})
	want := "## Insane format output \n" +
		"moltype = \"UNK\"\n" +
		"lipidsx[\"UNK\"] = ()\n" +
		"lipidsy[\"UNK\"] = ()\n" +
		"lipidsz[\"UNK\"] = ()\n" +
		"lipidsa.update({       #   \n" +
		"    \"UNK\": (moltype, \"     \"),\n" +
		"})"
	if got != want {
		t.Fatalf("empty insane mismatch:\n got: %q\nwant: %q", got, want)
	}
	coby := Serialize([]domain.Bead{}, Request{Mode: COBY})
	if !strings.Contains(coby, "[\"x\"] = ()\n") || !strings.Contains(coby, "(\"UNK\", \"beads\"): (),\n") {
		t.Fatalf("empty coby output malformed: %q", coby)
	}
}

func TestResnameDefaultsAndTrims(t *testing.T) {
	for _, in := range []string{"", "   ", "\t"} {
		out := Serialize(domain.Example(), Request{Resname: in, Mode: COBY})
		if !strings.Contains(out, `lipid_type, params = "UNK", "default"`) {
			t.Fatalf("resname %q did not default to UNK:\n%s", in, out)
		}
	}
	out := Serialize(nil, Request{Resname: "  DPPC ", Mode: Insane})
	if !strings.Contains(out, `moltype = "DPPC"`) {
		t.Fatalf("resname not trimmed:\n%s", out)
	}
}

func TestFormatCoordTiesToEven(t *testing.T) {
	cases := map[float64]string{
		0.25:  "0.2",
		0.75:  "0.8",
		-0.25: "-0.2",
		0.35:  "0.3",
		0.05:  "0.1",
		1.45:  "1.4",
		2.96:  "3.0",
		-0.04: "-0.0",
		7:     "7.0",
	}
	for in, want := range cases {
		if got := FormatCoord(in); got != want {
			t.Fatalf("FormatCoord(%v) = %q, want %q", in, got, want)
		}
	}
	if got := Round1(0.25); got != 0.2 {
		t.Fatalf("Round1(0.25) = %v, want 0.2", got)
	}
}

func TestInsaneLabelsRoundTrip(t *testing.T) {
	labels := []string{"NC3", "PO4", "GL1", "C1A", "C2A"}
	var beads []domain.Bead
	for i, l := range labels {
		beads = append(beads, domain.Bead{Pos: domain.Point{X: float64(i) * 0.3, Z: 9 - float64(i)}, Label: l})
	}
	out := Serialize(beads, Request{Resname: "TEST", Mode: Insane})
	const open = `"TEST": (moltype, "`
	start := strings.Index(out, open)
	if start < 0 {
		t.Fatalf("label line missing:\n%s", out)
	}
	rest := out[start+len(open):]
	end := strings.Index(rest, `"),`)
	if end < 0 {
		t.Fatalf("label line not terminated:\n%s", out)
	}
	if got := strings.Fields(rest[:end]); !reflect.DeepEqual(got, labels) {
		t.Fatalf("labels = %v, want %v", got, labels)
	}
}

func TestSerializeDoesNotMutate(t *testing.T) {
	set := domain.NewBeadSet(domain.Example()...)
	before := set.Beads()
	_ = Serialize(set.Beads(), Request{Resname: "POPC", Mode: COBY})
	_ = Serialize(set.Beads(), Request{Resname: "POPC", Mode: Insane})
	if !reflect.DeepEqual(before, set.Beads()) {
		t.Fatalf("serialization changed the bead set")
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(" COBY "); err != nil || m != COBY {
		t.Fatalf("ParseMode(COBY) = %v, %v", m, err)
	}
	if m, err := ParseMode("insane"); err != nil || m != Insane {
		t.Fatalf("ParseMode(insane) = %v, %v", m, err)
	}
	if _, err := ParseMode("gro"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if Insane.String() != "insane" || COBY.String() != "coby" {
		t.Fatalf("unexpected mode names")
	}
}
