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
	"bytes"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"SteelExtractor/world"
)

// Config - константи вибірки. Це не прапорці запуску: щоб відбитки
// порівнювались між реалізаціями, обидві сторони беруть ті самі значення.
type Config struct {
	Seed        int64  // очікуваний сід світу
	SampleSeed  int64  // сід вибірки чанків, навмисно інший ніж Seed
	SampleCount int    // скільки чанків у вибірці
	HalfRange   int32  // чанки беруться з [-HalfRange, HalfRange)
	Namespace   string // префікс, що відрізається від ідентифікаторів біомів
	Dimensions  []string
}

// DefaultConfig: 625 чанків = 10000 блоків у кожен бік від центру
var DefaultConfig = Config{
	Seed:        13579,
	SampleSeed:  24680,
	SampleCount: 128,
	HalfRange:   625,
	Namespace:   "minecraft:",
	Dimensions:  []string{"overworld", "the_nether", "the_end"},
}

// World - те, що збирачу звіту потрібно від сервера
type World interface {
	Seed() int64
	Dimension(name string) (*world.Dimension, error)
}

// ColumnHash - один рядок звіту: [x, z, "hex"]
type ColumnHash struct {
	X, Z        int32
	Fingerprint Fingerprint
}

func (c ColumnHash) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{c.X, c.Z, c.Fingerprint.String()})
}

// DimensionReport - відбитки одного виміру в порядку вибірки
type DimensionReport struct {
	MinSectionY int32        `json:"min_section_y"`
	MaxSectionY int32        `json:"max_section_y"`
	Hashes      []ColumnHash `json:"hashes"`
}

// NamedDimension зберігає порядок вимірів у звіті
type NamedDimension struct {
	Name string
	*DimensionReport
}

// Report - повний звіт одного запуску
type Report struct {
	Seed        int64
	SampleSeed  int64
	SampleCount int
	Dimensions  []NamedDimension
}

// Dimension повертає звіт виміру або nil, якщо вимір пропущено
func (r *Report) Dimension(name string) *DimensionReport {
	for _, d := range r.Dimensions {
		if d.Name == name {
			return d.DimensionReport
		}
	}
	return nil
}

// MarshalJSON пише ключі в сталому порядку: seed, chunk_sample_seed,
// num_chunks, далі виміри в порядку конфігу
func (r *Report) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	field := func(key string, v any) error {
		if buf.Len() > 0 {
			buf.WriteByte(',')
		} else {
			buf.WriteByte('{')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
		return nil
	}
	if err := field("seed", r.Seed); err != nil {
		return nil, err
	}
	if err := field("chunk_sample_seed", r.SampleSeed); err != nil {
		return nil, err
	}
	if err := field("num_chunks", r.SampleCount); err != nil {
		return nil, err
	}
	for _, d := range r.Dimensions {
		if err := field(d.Name, d.DimensionReport); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// reservedKeys - ключі звіту, які не можуть бути іменами вимірів
var reservedKeys = map[string]bool{
	"seed":              true,
	"chunk_sample_seed": true,
	"num_chunks":        true,
}

// Collect будує звіт для всіх вимірів з cfg.Dimensions.
// Проблеми з окремими вимірами тільки логуються: краще частковий звіт,
// ніж ніякого. Помилка повертається лише для некоректних параметрів вибірки.
func Collect(log *zap.Logger, w World, cfg Config) (*Report, error) {
	if cfg.HalfRange <= 0 {
		return nil, ErrInvalidHalfRange
	}
	report := &Report{
		Seed:        cfg.Seed,
		SampleSeed:  cfg.SampleSeed,
		SampleCount: cfg.SampleCount,
	}

	seed := w.Seed()
	if seed != cfg.Seed {
		log.Warn("World seed differs from the expected seed, hashes will be based on the world seed",
			zap.Int64("world seed", seed),
			zap.Int64("expected seed", cfg.Seed),
		)
	}

	builder := NewBuilder(cfg.Namespace)
	seen := make(map[string]bool, len(cfg.Dimensions))
	for _, name := range cfg.Dimensions {
		logger := log.With(zap.String("dimension", name))
		// ім'я виміру стає ключем JSON поруч із полями звіту
		if reservedKeys[name] || seen[name] {
			logger.Warn("Dimension name clashes with another report key, skipping")
			continue
		}
		seen[name] = true
		dim, err := w.Dimension(name)
		if err != nil {
			logger.Warn("Dimension not available, skipping", zap.Error(err))
			continue
		}
		if minY, maxY := dim.SectionBounds(); minY > maxY {
			logger.Warn("Invalid section bounds, skipping dimension",
				zap.Int32("min section y", minY),
				zap.Int32("max section y", maxY),
			)
			continue
		}
		cls, err := classifierFor(logger, dim, seed)
		if err != nil {
			logger.Warn("Cannot create biome classifier, skipping dimension", zap.Error(err))
			continue
		}
		dr, err := collectDimension(logger, builder, cls, dim, cfg)
		if err != nil {
			return nil, err
		}
		report.Dimensions = append(report.Dimensions, NamedDimension{Name: name, DimensionReport: dr})
		logger.Info("Extracted biome hashes",
			zap.Int("chunks", len(dr.Hashes)),
			zap.Int64("seed", cfg.Seed),
			zap.Int64("sample seed", cfg.SampleSeed),
		)
	}
	return report, nil
}

// classifierFor створює класифікатор з основного генератора виміру.
// Якщо родина недоступна - пробує запасну конфігурацію.
func classifierFor(log *zap.Logger, dim *world.Dimension, seed int64) (world.Classifier, error) {
	if dim.Preferred != nil {
		cls, err := dim.Preferred.NewClassifier(seed)
		if err == nil {
			return cls, nil
		}
		if !errors.Is(err, world.ErrGeneratorUnavailable) || dim.Default == nil {
			return nil, err
		}
		log.Warn("Generator family unavailable, using the default configuration",
			zap.String("family", dim.Preferred.Family()),
			zap.String("default", dim.Default.Family()),
			zap.Error(err),
		)
	}
	if dim.Default == nil {
		return nil, errNoGenerator
	}
	return dim.Default.NewClassifier(seed)
}

var errNoGenerator = errors.New("dimension has no generator")

// collectDimension: вибірка пересівається для кожного виміру тими самими
// параметрами, тому всі виміри мають однакову послідовність чанків
func collectDimension(log *zap.Logger, b *Builder, cls world.Classifier, dim *world.Dimension, cfg Config) (*DimensionReport, error) {
	minY, maxY := dim.SectionBounds()
	columns, err := SampleColumns(cfg.SampleSeed, cfg.SampleCount, cfg.HalfRange)
	if err != nil {
		return nil, err
	}
	dr := &DimensionReport{
		MinSectionY: minY,
		MaxSectionY: maxY,
		Hashes:      make([]ColumnHash, 0, len(columns)),
	}
	for _, col := range columns {
		d := b.Build(cls, col, minY, maxY)
		if d.Failed > 0 {
			log.Warn("Some cells could not be classified",
				zap.Int32("x", col.X),
				zap.Int32("z", col.Z),
				zap.Int("failed", d.Failed),
				zap.Error(d.Err),
			)
		}
		dr.Hashes = append(dr.Hashes, ColumnHash{X: col.X, Z: col.Z, Fingerprint: d.Fingerprint})
	}
	return dr, nil
}
