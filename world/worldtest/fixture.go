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

// Йоу, чат! Тут ми складаємо маленькі світи прямо з коду:
// level.dat з сідом і .mca регіони з біомами.
// Тести і утиліта mkworld використовують це, щоб не тягати бінарні файли в репозиторії.

package worldtest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"os"
	"path/filepath"

	"github.com/Tnze/go-mc/nbt"
	"github.com/Tnze/go-mc/save/region"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Типи стиснення сектора, як їх пише ванільний сервер
const (
	Gzip byte = 1
	Zlib byte = 2
	Raw  byte = 3
)

// Chunk - чанк, у якого є тільки біоми
type Chunk struct {
	X, Z     int32
	Sections []Section
}

// Section - одна секція з палітрою біомів і упакованими індексами
type Section struct {
	Y       int8
	Palette []string
	Data    []int64
}

type chunkNBT struct {
	DataVersion int32
	XPos        int32 `nbt:"xPos"`
	ZPos        int32 `nbt:"zPos"`
	YPos        int32 `nbt:"yPos"`
	Status      string
	Sections    []sectionNBT `nbt:"sections"`
}

type sectionNBT struct {
	Y      int8
	Biomes biomesNBT `nbt:"biomes"`
}

type biomesNBT struct {
	Palette []string `nbt:"palette"`
	Data    []int64  `nbt:"data"`
}

type levelNBT struct {
	Data struct {
		LevelName        string
		DataVersion      int32
		WorldGenSettings struct {
			Seed int64 `nbt:"seed"`
		}
	}
}

// DataVersion 1.20.1
const DataVersion = 3465

// WriteLevel створює <dir>/level.dat з сідом світу
func WriteLevel(dir string, seed int64) error {
	var lv levelNBT
	lv.Data.LevelName = filepath.Base(dir)
	lv.Data.DataVersion = DataVersion
	lv.Data.WorldGenSettings.Seed = seed
	return WriteLevelNBT(dir, lv)
}

// WriteLevelNBT записує довільне значення як <dir>/level.dat.
// Потрібно для старих форматів і файлів без частини тегів.
func WriteLevelNBT(dir string, v any) (errRet error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, "level.dat"))
	if err != nil {
		return err
	}
	defer func(f *os.File) {
		if err := f.Close(); errRet == nil {
			errRet = err
		}
	}(f)

	gw := gzip.NewWriter(f)
	if err := nbt.NewEncoder(gw).Encode(v, ""); err != nil {
		return fmt.Errorf("encode level data fail: %w", err)
	}
	return gw.Close()
}

// WriteChunks записує чанки в регіони директорії dir.
// Існуючі файли регіонів перезаписуються.
func WriteChunks(dir string, compression byte, chunks ...Chunk) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	byRegion := make(map[[2]int][]Chunk)
	for _, c := range chunks {
		rx, rz := region.At(int(c.X), int(c.Z))
		byRegion[[2]int{rx, rz}] = append(byRegion[[2]int{rx, rz}], c)
	}
	for pos, cs := range byRegion {
		if err := writeRegion(filepath.Join(dir, fmt.Sprintf("r.%d.%d.mca", pos[0], pos[1])), compression, cs); err != nil {
			return err
		}
	}
	return nil
}

func writeRegion(path string, compression byte, chunks []Chunk) (errRet error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	r, err := region.Create(path)
	if err != nil {
		return fmt.Errorf("create region fail: %w", err)
	}
	defer func(r *region.Region) {
		if err := r.Close(); errRet == nil {
			errRet = err
		}
	}(r)

	for _, c := range chunks {
		data, err := EncodeChunk(compression, c)
		if err != nil {
			return err
		}
		x, z := region.In(int(c.X), int(c.Z))
		if err := r.WriteSector(x, z, data); err != nil {
			return fmt.Errorf("write chunk [%d, %d] fail: %w", c.X, c.Z, err)
		}
	}
	return nil
}

// EncodeChunk повертає вміст сектора: байт стиснення і NBT чанку
func EncodeChunk(compression byte, c Chunk) ([]byte, error) {
	cn := chunkNBT{
		DataVersion: DataVersion,
		XPos:        c.X,
		ZPos:        c.Z,
		Status:      "minecraft:full",
	}
	for i, s := range c.Sections {
		if i == 0 || int32(s.Y) < cn.YPos {
			cn.YPos = int32(s.Y)
		}
		cn.Sections = append(cn.Sections, sectionNBT{
			Y:      s.Y,
			Biomes: biomesNBT{Palette: s.Palette, Data: s.Data},
		})
	}

	var buf bytes.Buffer
	buf.WriteByte(compression)
	var w io.WriteCloser
	switch compression {
	case Gzip:
		w = gzip.NewWriter(&buf)
	case Zlib:
		w = zlib.NewWriter(&buf)
	case Raw:
		w = nopCloser{&buf}
	default:
		return nil, fmt.Errorf("unknown compression type %d", compression)
	}
	if err := nbt.NewEncoder(w).Encode(cn, ""); err != nil {
		return nil, fmt.Errorf("encode chunk fail: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// UniformSection - секція з одним біомом, без масиву даних
func UniformSection(y int8, biome string) Section {
	return Section{Y: y, Palette: []string{biome}}
}

// PackSection пакує біоми секції в палітру і масив long.
// biomes[i] відповідає клітинці i = y<<4 | z<<2 | x.
func PackSection(y int8, biomes [64]string) Section {
	var palette []string
	index := make(map[string]uint64)
	for _, b := range biomes {
		if _, ok := index[b]; !ok {
			index[b] = uint64(len(palette))
			palette = append(palette, b)
		}
	}
	if len(palette) == 1 {
		return Section{Y: y, Palette: palette}
	}

	bitsPer := bits.Len(uint(len(palette) - 1))
	perLong := 64 / bitsPer
	data := make([]int64, (len(biomes)+perLong-1)/perLong)
	for i, b := range biomes {
		data[i/perLong] |= int64(index[b] << (uint(i%perLong) * uint(bitsPer)))
	}
	return Section{Y: y, Palette: palette, Data: data}
}
