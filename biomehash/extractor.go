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

package biomehash

import (
	_ "embed"

	"go.uber.org/zap"

	"SteelExtractor/world"
)

//go:embed biome_hashes.schema.json
var schema string

// Extractor пише biome_hashes.json
type Extractor struct {
	log *zap.Logger
	cfg Config
}

func NewExtractor(log *zap.Logger, cfg Config) *Extractor {
	return &Extractor{log: log.Named("biome-hashes"), cfg: cfg}
}

func (e *Extractor) FileName() string {
	return "biome_hashes.json"
}

// Schema - JSON схема файлу, на яку покладається офлайн порівняння
func (e *Extractor) Schema() string {
	return schema
}

func (e *Extractor) Extract(s *world.Server) (any, error) {
	return Collect(e.log, s, e.cfg)
}
