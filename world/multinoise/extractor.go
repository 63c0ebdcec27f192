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
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"SteelExtractor/world"
)

// Extractor вивантажує всі відомі пресети у multi_noise_biome_source_parameters.json
type Extractor struct {
	log     *zap.Logger
	presets Presets
}

func NewExtractor(log *zap.Logger, presets Presets) *Extractor {
	return &Extractor{log: log.Named("multi-noise"), presets: presets}
}

func (e *Extractor) FileName() string {
	return "multi_noise_biome_source_parameters.json"
}

type entryJSON struct {
	Biome      string         `json:"biome"`
	Parameters parametersJSON `json:"parameters"`
}

type parametersJSON struct {
	Temperature     [2]float32 `json:"temperature"`
	Humidity        [2]float32 `json:"humidity"`
	Continentalness [2]float32 `json:"continentalness"`
	Erosion         [2]float32 `json:"erosion"`
	Depth           [2]float32 `json:"depth"`
	Weirdness       [2]float32 `json:"weirdness"`
	Offset          float32    `json:"offset"`
}

func unquantizeRange(p Parameter) [2]float32 {
	return [2]float32{Unquantize(p.Min), Unquantize(p.Max)}
}

// Extract не залежить від стану сервера: пресети фіксовані
func (e *Extractor) Extract(*world.Server) (any, error) {
	names := maps.Keys(e.presets)
	slices.Sort(names)

	result := make(map[string][]entryJSON, len(names))
	for _, name := range names {
		list := e.presets[name]
		entries := make([]entryJSON, 0, len(list))
		for _, entry := range list {
			p := &entry.Point
			entries = append(entries, entryJSON{
				Biome: entry.Biome,
				Parameters: parametersJSON{
					Temperature:     unquantizeRange(p.Temperature),
					Humidity:        unquantizeRange(p.Humidity),
					Continentalness: unquantizeRange(p.Continentalness),
					Erosion:         unquantizeRange(p.Erosion),
					Depth:           unquantizeRange(p.Depth),
					Weirdness:       unquantizeRange(p.Weirdness),
					Offset:          Unquantize(p.Offset),
				},
			})
		}
		result[name] = entries
		e.log.Debug("Extracted preset", zap.String("preset", name), zap.Int("entries", len(entries)))
	}
	e.log.Info("Extracted multi-noise biome source parameters", zap.Strings("presets", names))
	return result, nil
}
