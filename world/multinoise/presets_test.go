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
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParsePresets(t *testing.T) {
	raw := []byte(`
presets:
  test:lush:
    - biome: minecraft:plains
      parameters:
        temperature: [-0.5, 0.25]
        humidity: 0.5
        offset: 0.25
    - biome: minecraft:desert
      parameters: {temperature: 1}
`)
	p, err := ParsePresets(raw)
	if err != nil {
		t.Fatal(err)
	}
	list := p["test:lush"]
	if len(list) != 2 {
		t.Fatalf("got %d entries", len(list))
	}
	want := ParameterPoint{
		Temperature: Parameter{Min: -5000, Max: 2500},
		Humidity:    Parameter{Min: 5000, Max: 5000},
		Offset:      2500,
	}
	if list[0].Biome != "minecraft:plains" || list[0].Point != want {
		t.Errorf("entry 0: %+v", list[0])
	}
	if list[1].Point.Temperature != (Parameter{10000, 10000}) || list[1].Point.Weirdness != (Parameter{}) {
		t.Errorf("entry 1: %+v", list[1])
	}
}

func TestParsePresets_Errors(t *testing.T) {
	for name, raw := range map[string]string{
		"no biome":      "presets: {a: [{parameters: {temperature: 0}}]}",
		"short range":   "presets: {a: [{biome: x, parameters: {temperature: [0]}}]}",
		"inverted":      "presets: {a: [{biome: x, parameters: {temperature: [1, 0]}}]}",
		"not a number":  "presets: {a: [{biome: x, parameters: {temperature: hot}}]}",
		"mapping value": "presets: {a: [{biome: x, parameters: {temperature: {min: 0}}}]}",
		"bad yaml":      "presets: [",
	} {
		if _, err := ParsePresets([]byte(raw)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	_, err := ParsePresets([]byte("presets: {a: [{parameters: {}}]}"))
	if !errors.Is(err, errNoBiomeName) {
		t.Errorf("got %v", err)
	}
}

func TestLoadPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, []byte("presets: {a: [{biome: x, parameters: {}}]}"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadPresets(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(p["a"]) != 1 {
		t.Errorf("got %+v", p)
	}
	if _, err := LoadPresets(path + ".missing"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v", err)
	}
}

func TestLoadPresets_Bundled(t *testing.T) {
	p, err := LoadWithVanilla("../../multi_noise.yaml")
	if err != nil {
		t.Fatal(err)
	}
	for name, want := range map[string]int{"minecraft:overworld": 7593, "minecraft:nether": 5} {
		if n := len(p[name]); n != want {
			t.Errorf("%s preset has %d biomes, want %d", name, n, want)
		}
	}
	// файл перекриває вбудований незер тими самими значеннями
	for i, e := range p["minecraft:nether"] {
		if want := Nether()[i]; e != want {
			t.Errorf("nether entry %d: got %+v, want %+v", i, e, want)
		}
	}
}

func TestLoadWithVanilla(t *testing.T) {
	p, err := LoadWithVanilla("")
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 2 || len(p["minecraft:overworld"]) == 0 {
		t.Errorf("got %d presets", len(p))
	}
	if _, err := LoadWithVanilla(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v", err)
	}
}
