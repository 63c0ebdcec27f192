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

package world

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/time/rate"

	"SteelExtractor/world/worldtest"
)

func newRegion(t *testing.T, compression byte, chunks ...worldtest.Chunk) *regionClassifier {
	t.Helper()
	dir := t.TempDir()
	if err := worldtest.WriteChunks(dir, compression, chunks...); err != nil {
		t.Fatal(err)
	}
	cls, err := Region{Dir: dir}.NewClassifier(0)
	if err != nil {
		t.Fatal(err)
	}
	return cls.(*regionClassifier)
}

func TestRegion_Compression(t *testing.T) {
	for name, compression := range map[string]byte{"gzip": worldtest.Gzip, "zlib": worldtest.Zlib, "raw": worldtest.Raw} {
		t.Run(name, func(t *testing.T) {
			cls := newRegion(t, compression, worldtest.Chunk{X: 3, Z: -2, Sections: []worldtest.Section{
				worldtest.UniformSection(-1, "minecraft:desert"),
				worldtest.UniformSection(0, "minecraft:plains"),
			}})
			for _, tc := range []struct {
				qy   int32
				want string
			}{{-4, "minecraft:desert"}, {-1, "minecraft:desert"}, {0, "minecraft:plains"}, {3, "minecraft:plains"}} {
				got, err := cls.Classify(13, tc.qy, -6)
				if err != nil {
					t.Fatal(err)
				}
				if got != tc.want {
					t.Errorf("qy %d: got %q, want %q", tc.qy, got, tc.want)
				}
			}
		})
	}
}

func TestRegion_PackedSection(t *testing.T) {
	var biomes [64]string
	names := []string{"minecraft:plains", "minecraft:forest", "minecraft:river", "minecraft:beach", "minecraft:ocean"}
	for i := range biomes {
		biomes[i] = names[(i*7)%len(names)]
	}
	cls := newRegion(t, worldtest.Gzip, worldtest.Chunk{X: -1, Z: -1, Sections: []worldtest.Section{
		worldtest.PackSection(2, biomes),
	}})
	for i, want := range biomes {
		qx, qz, qy := int32(-4+i&3), int32(-4+i>>2&3), int32(8+i>>4)
		got, err := cls.Classify(qx, qy, qz)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("cell %d: got %q, want %q", i, got, want)
		}
	}
}

func TestRegion_CachesColumns(t *testing.T) {
	cls := newRegion(t, worldtest.Zlib, worldtest.Chunk{X: 0, Z: 0, Sections: []worldtest.Section{
		worldtest.UniformSection(0, "minecraft:plains"),
	}})
	if _, err := cls.Classify(0, 0, 0); err != nil {
		t.Fatal(err)
	}
	// файлів більше немає, але колона вже в кеші
	if err := os.RemoveAll(cls.dir); err != nil {
		t.Fatal(err)
	}
	if b, err := cls.Classify(3, 2, 1); err != nil || b != "minecraft:plains" {
		t.Errorf("cached column: got %q, %v", b, err)
	}
	if len(cls.columns) != 1 {
		t.Errorf("got %d cached columns", len(cls.columns))
	}
}

func TestRegion_Missing(t *testing.T) {
	cls := newRegion(t, worldtest.Gzip, worldtest.Chunk{X: 0, Z: 0, Sections: []worldtest.Section{
		worldtest.UniformSection(0, "minecraft:plains"),
	}})

	// чанку немає в існуючому регіоні
	if _, err := cls.Classify(4, 0, 0); !errors.Is(err, errChunkNotExist) {
		t.Errorf("missing chunk: got %v", err)
	}
	// регіону немає взагалі
	if _, err := cls.Classify(4*32*4, 0, 0); !errors.Is(err, errChunkNotExist) {
		t.Errorf("missing region: got %v", err)
	}
	// секції немає
	if _, err := cls.Classify(0, 4, 0); !errors.Is(err, errSectionNotExist) {
		t.Errorf("missing section: got %v", err)
	}
	// помилка кешується так само як і біоми
	if _, err := cls.Classify(5, 1, 1); !errors.Is(err, errChunkNotExist) {
		t.Errorf("cached missing chunk: got %v", err)
	}
}

func TestRegion_BrokenSection(t *testing.T) {
	cls := newRegion(t, worldtest.Gzip, worldtest.Chunk{X: 0, Z: 0, Sections: []worldtest.Section{
		{Y: 0, Palette: []string{"a", "b"}},
		worldtest.UniformSection(1, "minecraft:plains"),
	}})
	if _, err := cls.Classify(0, 0, 0); err == nil {
		t.Error("section without data must fail")
	}
	if b, err := cls.Classify(0, 4, 0); err != nil || b != "minecraft:plains" {
		t.Errorf("healthy section: got %q, %v", b, err)
	}
}

func TestRegion_NewClassifier(t *testing.T) {
	if _, err := (Region{Dir: filepath.Join(t.TempDir(), "nope")}).NewClassifier(0); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing dir: got %v", err)
	}
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (Region{Dir: file}).NewClassifier(0); err == nil {
		t.Error("plain file accepted as region dir")
	}
	if got := (Region{}).Family(); got != "region" {
		t.Errorf("family %q", got)
	}
}

func TestRegion_Limiter(t *testing.T) {
	dir := t.TempDir()
	if err := worldtest.WriteChunks(dir, worldtest.Gzip, worldtest.Chunk{X: 0, Z: 0, Sections: []worldtest.Section{
		worldtest.UniformSection(0, "minecraft:plains"),
	}}); err != nil {
		t.Fatal(err)
	}
	// ліміт нуль без запасу: Wait одразу повертає помилку
	cls, err := Region{Dir: dir, Limiter: rate.NewLimiter(0, 0)}.NewClassifier(0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cls.Classify(0, 0, 0); err == nil {
		t.Error("expected limiter error")
	}
}

func TestDecompressSector(t *testing.T) {
	if _, err := decompressSector(nil); err == nil {
		t.Error("empty sector accepted")
	}
	if _, err := decompressSector([]byte{9, 1, 2}); err == nil {
		t.Error("unknown compression accepted")
	}
	if _, err := decompressSector([]byte{1, 0, 0}); err == nil {
		t.Error("broken gzip accepted")
	}
}
