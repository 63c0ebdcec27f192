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

// Йоу, чат! Зараз розберемо конфігурацію екстрактора!
// Тут описано який світ відкривати, куди писати JSON файли
// і яким генератором описаний кожен вимір.

package extractor

import (
	"path/filepath"
	"time"

	"golang.org/x/time/rate"
)

// Config - головна структура з налаштуваннями
// Поля з тегом `toml` читаються з конфіг файлу
type Config struct {
	// Назва папки де зберігається світ
	LevelName string `toml:"level-name"`

	// Сід, якщо в папці світу немає level.dat
	LevelSeed int64 `toml:"level-seed"`

	// Куди складати вивантажені JSON файли
	OutputDir string `toml:"output-dir"`

	// YAML файл з пресетами мульти-шумових біомів, може бути порожнім
	MultiNoisePresets string `toml:"multi-noise-presets"`

	// Чи перевіряти вихідні файли по JSON схемі перед записом
	ValidateOutput bool `toml:"validate-output"`

	// Скільки чанків можна прочитати з диску за раз
	ChunkLoadingLimiter Limiter `toml:"chunk-loading-limiter"`

	Dimensions []DimensionConfig `toml:"dimension"`
}

// DimensionConfig - один вимір
type DimensionConfig struct {
	Name        string `toml:"name"`
	MinSectionY int32  `toml:"min-section-y"`
	MaxSectionY int32  `toml:"max-section-y"`

	// Generator - основний генератор, Default - запасний
	Generator GeneratorConfig  `toml:"generator"`
	Default   *GeneratorConfig `toml:"default"`
}

// GeneratorConfig описує одну родину генераторів.
// Які поля потрібні - залежить від Type.
type GeneratorConfig struct {
	Type   string   `toml:"type"`   // fixed, checkerboard, region, multi_noise
	Biome  string   `toml:"biome"`  // fixed
	Biomes []string `toml:"biomes"` // checkerboard
	Scale  int      `toml:"scale"`  // checkerboard
	Preset string   `toml:"preset"` // multi_noise
	Region string   `toml:"region"` // region, шлях відносно папки світу
}

// DefaultConfig - ванільні виміри
func DefaultConfig() Config {
	return Config{
		LevelName:         "world",
		OutputDir:         "extracted",
		MultiNoisePresets: "multi_noise.yaml",
		ValidateOutput:    true,
		Dimensions: []DimensionConfig{
			{
				Name: "overworld", MinSectionY: -4, MaxSectionY: 19,
				Generator: GeneratorConfig{Type: "multi_noise", Preset: "minecraft:overworld"},
				Default:   &GeneratorConfig{Type: "region", Region: "region"},
			},
			{
				Name: "the_nether", MinSectionY: 0, MaxSectionY: 15,
				Generator: GeneratorConfig{Type: "multi_noise", Preset: "minecraft:nether"},
				Default:   &GeneratorConfig{Type: "region", Region: filepath.Join("DIM-1", "region")},
			},
			{
				Name: "the_end", MinSectionY: 0, MaxSectionY: 15,
				Generator: GeneratorConfig{Type: "region", Region: filepath.Join("DIM1", "region")},
			},
		},
	}
}

// Limiter - структура для обмеження частоти дій
// Наприклад: не більше 100 чанків кожні 5 секунд
type Limiter struct {
	// Як часто можна виконувати дію, порожнє значення = без обмежень
	Every duration `toml:"every"`

	// Скільки разів можна виконати дію за цей період
	N int
}

// Limiter перетворює наші налаштування в готовий rate.Limiter.
// Кожен виклик створює новий лімітер, щоб виміри не ділили стан.
func (l *Limiter) Limiter() *rate.Limiter {
	burst := l.N
	if burst < 1 {
		burst = 1 // з нульовим burst Wait ніколи не дочекається
	}
	return rate.NewLimiter(rate.Every(l.Every.Duration), burst)
}

// duration - обгортка навколо time.Duration
// Потрібна щоб читати тривалість з конфіг файлу
type duration struct {
	time.Duration
}

// UnmarshalText перетворює текст з конфігу в time.Duration
// Наприклад "5s" -> 5 секунд
func (d *duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return
}
