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

	"SteelExtractor/world"
)

// ClimateSampler рахує кліматичну точку в абсолютній кварт-координаті.
// Сам шум тут не реалізований: семплер надає той, хто вміє генерувати рельєф.
type ClimateSampler interface {
	Sample(qx, qy, qz int32) TargetPoint
}

// SamplerFactory створює семплер для конкретного сіда світу
type SamplerFactory func(seed int64) (ClimateSampler, error)

// Generator - родина multi_noise
type Generator struct {
	Preset     string
	List       ParameterList
	NewSampler SamplerFactory // nil = родина недоступна в цьому процесі
}

func (g *Generator) Family() string { return "multi_noise" }

func (g *Generator) NewClassifier(seed int64) (world.Classifier, error) {
	if g.NewSampler == nil {
		return nil, fmt.Errorf("%s: no climate sampler: %w", g.Preset, world.ErrGeneratorUnavailable)
	}
	if len(g.List) == 0 {
		return nil, fmt.Errorf("%s: empty parameter list: %w", g.Preset, world.ErrGeneratorUnavailable)
	}
	sampler, err := g.NewSampler(seed)
	if err != nil {
		return nil, fmt.Errorf("%s: create climate sampler fail: %w", g.Preset, err)
	}
	return &classifier{list: g.List, sampler: sampler}, nil
}

type classifier struct {
	list    ParameterList
	sampler ClimateSampler
}

var errNoBiome = errors.New("no biome matches climate")

func (c *classifier) Classify(qx, qy, qz int32) (string, error) {
	biome, ok := c.list.Find(c.sampler.Sample(qx, qy, qz))
	if !ok {
		return "", errNoBiome
	}
	return biome, nil
}
