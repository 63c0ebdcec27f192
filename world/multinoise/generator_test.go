// This file is part of go-mc/server project.
// Copyright (C) 2023.  Tnze
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package multinoise

import (
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"SteelExtractor/world"
)

// climateFunc - семплер з функції
type climateFunc func(qx, qy, qz int32) TargetPoint

func (f climateFunc) Sample(qx, qy, qz int32) TargetPoint { return f(qx, qy, qz) }

func TestGenerator_Classify(t *testing.T) {
	var gotSeed int64
	g := &Generator{
		Preset: "minecraft:nether",
		List:   nether(),
		NewSampler: func(seed int64) (ClimateSampler, error) {
			gotSeed = seed
			// температура росте вздовж x
			return climateFunc(func(qx, _, _ int32) TargetPoint {
				return TargetPoint{Temperature: int64(qx) * 1000}
			}), nil
		},
	}
	if g.Family() != "multi_noise" {
		t.Errorf("family %q", g.Family())
	}
	cls, err := g.NewClassifier(13579)
	if err != nil {
		t.Fatal(err)
	}
	if gotSeed != 13579 {
		t.Errorf("sampler seed %d", gotSeed)
	}
	for qx, want := range map[int32]string{
		0:   "minecraft:nether_wastes",
		8:   "minecraft:crimson_forest",
		-10: "minecraft:basalt_deltas",
	} {
		if b, err := cls.Classify(qx, 0, 0); err != nil || b != want {
			t.Errorf("qx %d: got %q, %v, want %q", qx, b, err, want)
		}
	}
}

func TestGenerator_Unavailable(t *testing.T) {
	sampler := func(int64) (ClimateSampler, error) { return climateFunc(nil), nil }
	for name, g := range map[string]*Generator{
		"no sampler": {Preset: "p", List: nether()},
		"empty list": {Preset: "p", NewSampler: sampler},
	} {
		if _, err := g.NewClassifier(0); !errors.Is(err, world.ErrGeneratorUnavailable) {
			t.Errorf("%s: got %v", name, err)
		}
	}

	boom := errors.New("boom")
	g := &Generator{List: nether(), NewSampler: func(int64) (ClimateSampler, error) { return nil, boom }}
	if _, err := g.NewClassifier(0); !errors.Is(err, boom) || errors.Is(err, world.ErrGeneratorUnavailable) {
		t.Errorf("sampler failure: got %v", err)
	}
}

func TestExtractor(t *testing.T) {
	e := NewExtractor(zap.NewNop(), Presets{
		"b:second": {{Biome: "x", Point: ParameterPoint{Temperature: Span(-0.5, 0.25), Offset: Quantize(0.375)}}},
		"a:first":  {},
	})
	if e.FileName() != "multi_noise_biome_source_parameters.json" {
		t.Errorf("file name %q", e.FileName())
	}
	out, err := e.Extract(nil)
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(out)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"a:first":[],"b:second":[{"biome":"x","parameters":{` +
		`"temperature":[-0.5,0.25],"humidity":[0,0],"continentalness":[0,0],` +
		`"erosion":[0,0],"depth":[0,0],"weirdness":[0,0],"offset":0.375}}]}`
	if string(data) != want {
		t.Errorf("got  %s\nwant %s", data, want)
	}
}
