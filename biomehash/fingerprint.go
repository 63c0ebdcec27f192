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
	"crypto/md5"
	"encoding/hex"
	"errors"
	"hash"
	"io"
	"strings"

	"SteelExtractor/world"
)

// UnknownBiome підставляється в хеш замість клітинки, яку не вдалося класифікувати
const UnknownBiome = "unknown"

// ErrInvalidSectionRange - нижня секція вища за верхню
var ErrInvalidSectionRange = errors.New("min section y above max section y")

// Fingerprint - 128-бітний відбиток біомів однієї колони
type Fingerprint [md5.Size]byte

// String повертає 32 символи в нижньому регістрі
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

func (f Fingerprint) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Builder рахує відбитки колон.
// Namespace відрізається від ідентифікаторів перед хешуванням, щоб
// "minecraft:plains" і "plains" давали однакові байти.
type Builder struct {
	namespace string
}

func NewBuilder(namespace string) *Builder {
	return &Builder{namespace: namespace}
}

// Canonical прибирає префікс простору імен, якщо він є
func (b *Builder) Canonical(id string) string {
	return strings.TrimPrefix(id, b.namespace)
}

// ColumnDigest - результат для однієї колони
type ColumnDigest struct {
	Fingerprint Fingerprint
	Failed      int   // скільки клітинок замінено на UnknownBiome
	Err         error // перша помилка класифікатора, якщо була
}

// Build класифікує всі клітинки колони між minSectionY і maxSectionY
// і згортає їх у відбиток.
//
// Класифікація йде в порядку генерації (x, y, z), а хешування - в
// канонічному (y, z, x) з байтом-маркером секції. Тому відбиток залежить
// тільки від набору класифікацій, а не від того, як їх отримали.
func (b *Builder) Build(cls world.Classifier, col Column, minSectionY, maxSectionY int32) ColumnDigest {
	vol := volume{minSectionY: minSectionY, maxSectionY: maxSectionY}
	if vol.sections() <= 0 {
		return ColumnDigest{Err: ErrInvalidSectionRange}
	}
	biomes, failed, err := b.classify(cls, col, vol, vol.walkGeneration)
	return ColumnDigest{
		Fingerprint: b.digest(vol, biomes),
		Failed:      failed,
		Err:         err,
	}
}

// classify заповнює таблицю класифікацій, обходячи клітинки через walk
func (b *Builder) classify(cls world.Classifier, col Column, vol volume, walk func(func(Cell))) (biomes []string, failed int, firstErr error) {
	biomes = make([]string, vol.sections()*cellsPerSection)
	walk(func(c Cell) {
		qx, qy, qz := c.absolute(col)
		id, err := cls.Classify(qx, qy, qz)
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			id = UnknownBiome
		}
		biomes[vol.index(c)] = id
	})
	return
}

// digest згортає таблицю в канонічному порядку
func (b *Builder) digest(vol volume, biomes []string) (f Fingerprint) {
	h := md5.New()
	vol.walkCanonical(
		func(sectionY int32) {
			h.Write([]byte{byte(sectionY)})
		},
		func(c Cell) {
			writeID(h, b.Canonical(biomes[vol.index(c)]))
		},
	)
	h.Sum(f[:0])
	return
}

func writeID(h hash.Hash, id string) {
	_, _ = io.WriteString(h, id)
}
