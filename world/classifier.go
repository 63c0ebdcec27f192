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

// Йоу, чат! Сьогодні розберемо як сервер вирішує, який біом стоїть у точці світу!
// Біоми в майнкрафті зберігаються з роздільністю 1/4 блока по кожній осі,
// тобто одна секція 16x16x16 блоків містить 4x4x4 "кварт-клітинки".
// Класифікатор - це те, що за кварт-координатою повертає назву біому.

package world

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

// Classifier повертає ідентифікатор біому (наприклад "minecraft:plains")
// для абсолютної кварт-координати. Результат має залежати тільки від
// координати і конфігурації класифікатора.
type Classifier interface {
	Classify(qx, qy, qz int32) (string, error)
}

// ClassifierFunc дозволяє використати звичайну функцію як Classifier
type ClassifierFunc func(qx, qy, qz int32) (string, error)

func (f ClassifierFunc) Classify(qx, qy, qz int32) (string, error) { return f(qx, qy, qz) }

// Generator - одна "родина" генераторів біомів (fixed, checkerboard, region, multi_noise).
// Кожен вимір створює собі новий класифікатор через NewClassifier.
type Generator interface {
	Family() string
	NewClassifier(seed int64) (Classifier, error)
}

// ErrGeneratorUnavailable повертається коли родина генератора не може працювати
// в цьому процесі (наприклад немає семплера клімату).
var ErrGeneratorUnavailable = errors.New("generator family unavailable")

// Fixed - найпростіший генератор: один біом на весь вимір
type Fixed struct {
	Biome string
}

func (f Fixed) Family() string { return "fixed" }

func (f Fixed) NewClassifier(int64) (Classifier, error) {
	if f.Biome == "" {
		return nil, errors.New("fixed generator: empty biome")
	}
	biome := f.Biome
	return ClassifierFunc(func(_, _, _ int32) (string, error) {
		return biome, nil
	}), nil
}

// Checkerboard розкладає біоми шахівницею з колон.
// Розмір клітинки - 2^(Scale+2) кварт-клітинок, тобто 2^Scale чанків.
type Checkerboard struct {
	Biomes []string
	Scale  int
}

func (c Checkerboard) Family() string { return "checkerboard" }

func (c Checkerboard) NewClassifier(int64) (Classifier, error) {
	if len(c.Biomes) == 0 {
		return nil, errors.New("checkerboard generator: no biomes")
	}
	if c.Scale < 0 || c.Scale > 62 {
		return nil, fmt.Errorf("checkerboard generator: scale %d out of range", c.Scale)
	}
	biomes := append([]string(nil), c.Biomes...)
	shift := uint(c.Scale + 2)
	n := int64(len(biomes))
	return ClassifierFunc(func(qx, _, qz int32) (string, error) {
		// зсув вправо для від'ємних чисел округлює вниз, як і у ванілі
		i := floorMod(int64(qx>>shift)+int64(qz>>shift), n)
		return biomes[i], nil
	}), nil
}

// floorMod - залишок від ділення зі знаком дільника (як Math.floorMod)
func floorMod[T constraints.Signed](a, b T) T {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}
