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

// cellsPerAxis - секція завжди має 4x4x4 кварт-клітинки, незалежно від виміру
const (
	cellsPerAxis    = 4
	cellsPerSection = cellsPerAxis * cellsPerAxis * cellsPerAxis
)

// Cell - одна кварт-клітинка всередині секції
type Cell struct {
	SectionY int32
	X, Y, Z  int32 // локальні зміщення, 0..3
}

// absolute повертає абсолютну кварт-координату клітинки в колоні col
func (c Cell) absolute(col Column) (qx, qy, qz int32) {
	return col.X*cellsPerAxis + c.X, c.SectionY*cellsPerAxis + c.Y, col.Z*cellsPerAxis + c.Z
}

// volume - решітка клітинок однієї колони між двома секціями включно
type volume struct {
	minSectionY, maxSectionY int32
}

func (v volume) sections() int {
	return int(v.maxSectionY-v.minSectionY) + 1
}

// index - позиція клітинки у плоскій таблиці класифікацій.
// Таблиця не залежить від порядку обходу.
func (v volume) index(c Cell) int {
	return int(c.SectionY-v.minSectionY)*cellsPerSection + int(c.X*16+c.Y*4+c.Z)
}

// walkGeneration обходить клітинки в порядку генерації: x, y, z.
// Саме так звертається до біомів ванільний генератор, і класифікатор
// з внутрішнім кешем може залежати від цього порядку.
func (v volume) walkGeneration(fn func(Cell)) {
	for sy := v.minSectionY; sy <= v.maxSectionY; sy++ {
		for x := int32(0); x < cellsPerAxis; x++ {
			for y := int32(0); y < cellsPerAxis; y++ {
				for z := int32(0); z < cellsPerAxis; z++ {
					fn(Cell{SectionY: sy, X: x, Y: y, Z: z})
				}
			}
		}
	}
}

// walkCanonical обходить клітинки в порядку хешування: y, z, x.
// onSection викликається перед першою клітинкою кожної секції.
func (v volume) walkCanonical(onSection func(sectionY int32), fn func(Cell)) {
	for sy := v.minSectionY; sy <= v.maxSectionY; sy++ {
		onSection(sy)
		for y := int32(0); y < cellsPerAxis; y++ {
			for z := int32(0); z < cellsPerAxis; z++ {
				for x := int32(0); x < cellsPerAxis; x++ {
					fn(Cell{SectionY: sy, X: x, Y: y, Z: z})
				}
			}
		}
	}
}
