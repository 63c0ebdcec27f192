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
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Presets - іменовані списки параметрів, наприклад "minecraft:overworld"
type Presets map[string]ParameterList

type presetsFile struct {
	Presets map[string][]entryYAML `yaml:"presets"`
}

type entryYAML struct {
	Biome      string `yaml:"biome"`
	Parameters struct {
		Temperature     rangeYAML `yaml:"temperature"`
		Humidity        rangeYAML `yaml:"humidity"`
		Continentalness rangeYAML `yaml:"continentalness"`
		Erosion         rangeYAML `yaml:"erosion"`
		Depth           rangeYAML `yaml:"depth"`
		Weirdness       rangeYAML `yaml:"weirdness"`
		Offset          float32   `yaml:"offset"`
	} `yaml:"parameters"`
}

// rangeYAML приймає або одне число, або пару [min, max]
type rangeYAML Parameter

func (r *rangeYAML) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var v float32
		if err := n.Decode(&v); err != nil {
			return err
		}
		*r = rangeYAML(Point(v))
		return nil
	case yaml.SequenceNode:
		var v []float32
		if err := n.Decode(&v); err != nil {
			return err
		}
		if len(v) != 2 {
			return fmt.Errorf("line %d: parameter range needs 2 values, got %d", n.Line, len(v))
		}
		if v[0] > v[1] {
			return fmt.Errorf("line %d: parameter range min %g above max %g", n.Line, v[0], v[1])
		}
		*r = rangeYAML(Span(v[0], v[1]))
		return nil
	default:
		return fmt.Errorf("line %d: parameter must be a number or a [min, max] pair", n.Line)
	}
}

// LoadPresets читає пресети з YAML файлу
func LoadPresets(path string) (Presets, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := ParsePresets(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// LoadWithVanilla повертає ванільні пресети, доповнені файлом path.
// Порожній path - тільки ванільні.
func LoadWithVanilla(path string) (Presets, error) {
	if path == "" {
		return Vanilla(), nil
	}
	own, err := LoadPresets(path)
	if err != nil {
		return nil, err
	}
	return Vanilla().Merge(own), nil
}

// ParsePresets розбирає YAML з пресетами
func ParsePresets(raw []byte) (Presets, error) {
	var f presetsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	presets := make(Presets, len(f.Presets))
	for name, entries := range f.Presets {
		list := make(ParameterList, 0, len(entries))
		for i, e := range entries {
			if e.Biome == "" {
				return nil, fmt.Errorf("preset %s entry %d: %w", name, i, errNoBiomeName)
			}
			p := e.Parameters
			list = append(list, Entry{
				Biome: e.Biome,
				Point: ParameterPoint{
					Temperature:     Parameter(p.Temperature),
					Humidity:        Parameter(p.Humidity),
					Continentalness: Parameter(p.Continentalness),
					Erosion:         Parameter(p.Erosion),
					Depth:           Parameter(p.Depth),
					Weirdness:       Parameter(p.Weirdness),
					Offset:          Quantize(p.Offset),
				},
			})
		}
		presets[name] = list
	}
	return presets, nil
}

var errNoBiomeName = errors.New("missing biome")
