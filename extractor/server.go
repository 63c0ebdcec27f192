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

package extractor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"SteelExtractor/world"
	"SteelExtractor/world/multinoise"
)

// Йоу, чат! Зараз розберемо як з конфігу збирається світ!
// NewServer читає сід з level.dat і створює генератор для кожного виміру.
// samplers - кліматичні семплери по назві пресету; якщо для пресету
// семплера немає, родина multi_noise буде недоступна і вимір візьме
// запасну конфігурацію.
func NewServer(logger *zap.Logger, config *Config, presets multinoise.Presets, samplers map[string]multinoise.SamplerFactory) (*world.Server, error) {
	path := filepath.Clean(config.LevelName)

	seed, err := world.ReadLevelSeed(path)
	if errors.Is(err, os.ErrNotExist) {
		// Світу ще немає на диску - беремо сід з конфігу
		logger.Info("level.dat not found, using level-seed from config",
			zap.String("level", path),
			zap.Int64("seed", config.LevelSeed),
		)
		seed = config.LevelSeed
	} else if err != nil {
		return nil, fmt.Errorf("read level seed fail: %w", err)
	}

	dims := make([]*world.Dimension, 0, len(config.Dimensions))
	for i := range config.Dimensions {
		dc := &config.Dimensions[i]
		b := generatorBuilder{
			log:      logger.Named(dc.Name),
			level:    path,
			limiter:  &config.ChunkLoadingLimiter,
			presets:  presets,
			samplers: samplers,
		}
		d := &world.Dimension{
			Name:        dc.Name,
			MinSectionY: dc.MinSectionY,
			MaxSectionY: dc.MaxSectionY,
		}
		if d.Preferred, err = b.build(&dc.Generator); err != nil {
			return nil, fmt.Errorf("dimension %s: %w", dc.Name, err)
		}
		if dc.Default != nil {
			if d.Default, err = b.build(dc.Default); err != nil {
				return nil, fmt.Errorf("dimension %s default: %w", dc.Name, err)
			}
		}
		dims = append(dims, d)
	}
	return world.NewServer(logger.Named("world"), seed, dims...)
}

type generatorBuilder struct {
	log      *zap.Logger
	level    string
	limiter  *Limiter
	presets  multinoise.Presets
	samplers map[string]multinoise.SamplerFactory
}

// errUnknownGenerator - у конфігу вказано невідомий тип генератора
var errUnknownGenerator = errors.New("unknown generator type")

func (b *generatorBuilder) build(g *GeneratorConfig) (world.Generator, error) {
	switch g.Type {
	case "fixed":
		return world.Fixed{Biome: g.Biome}, nil
	case "checkerboard":
		return world.Checkerboard{Biomes: g.Biomes, Scale: g.Scale}, nil
	case "region":
		return world.Region{
			Dir:     filepath.Join(b.level, g.Region),
			Limiter: b.limiter.Limiter(),
			Logger:  b.log,
		}, nil
	case "multi_noise":
		list, ok := b.presets[g.Preset]
		if !ok {
			b.log.Warn("Multi-noise preset not found", zap.String("preset", g.Preset))
		}
		return &multinoise.Generator{
			Preset:     g.Preset,
			List:       list,
			NewSampler: b.samplers[g.Preset],
		}, nil
	default:
		return nil, fmt.Errorf("%q: %w", g.Type, errUnknownGenerator)
	}
}
