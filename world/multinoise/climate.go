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

// Йоу, чат! Тут живе мульти-шумова вибірка біомів - так генерується
// overworld і the_nether у сучасному майнкрафті.
// Кожен біом описується "точкою параметрів": діапазони температури,
// вологості, континентальності, ерозії, глибини і дивності (weirdness).
// Генератор рахує кліматичну точку в координаті і шукає найближчий біом.

package multinoise

import "fmt"

// quantizeScale - параметри зберігаються як long, помножені на 10000
const quantizeScale = 10000

// Quantize переводить float параметр у ціле представлення
func Quantize(v float32) int64 { return int64(v * quantizeScale) }

// Unquantize робить зворотне перетворення
func Unquantize(v int64) float32 { return float32(v) / quantizeScale }

// Parameter - діапазон [Min, Max] одного кліматичного параметра
type Parameter struct {
	Min, Max int64
}

// Point створює діапазон з однієї точки
func Point(v float32) Parameter {
	return Span(v, v)
}

// Span створює діапазон з двох float значень
func Span(lo, hi float32) Parameter {
	return Parameter{Min: Quantize(lo), Max: Quantize(hi)}
}

// distance - 0 всередині діапазону, інакше відстань до найближчої межі
func (p Parameter) distance(v int64) int64 {
	switch {
	case v > p.Max:
		return v - p.Max
	case v < p.Min:
		return p.Min - v
	default:
		return 0
	}
}

func (p Parameter) String() string {
	return fmt.Sprintf("[%g, %g]", Unquantize(p.Min), Unquantize(p.Max))
}

// ParameterPoint - повний опис біому в кліматичному просторі
type ParameterPoint struct {
	Temperature     Parameter
	Humidity        Parameter
	Continentalness Parameter
	Erosion         Parameter
	Depth           Parameter
	Weirdness       Parameter
	Offset          int64
}

// TargetPoint - кліматична точка, порахована семплером в конкретній координаті
type TargetPoint struct {
	Temperature, Humidity, Continentalness, Erosion, Depth, Weirdness int64
}

// fitness - сума квадратів відстаней по всіх осях плюс квадрат зміщення.
// Чим менше - тим краще біом підходить.
func (p *ParameterPoint) fitness(t TargetPoint) int64 {
	sq := func(v int64) int64 { return v * v }
	return sq(p.Temperature.distance(t.Temperature)) +
		sq(p.Humidity.distance(t.Humidity)) +
		sq(p.Continentalness.distance(t.Continentalness)) +
		sq(p.Erosion.distance(t.Erosion)) +
		sq(p.Depth.distance(t.Depth)) +
		sq(p.Weirdness.distance(t.Weirdness)) +
		sq(p.Offset)
}

// Entry - пара біом + точка параметрів
type Entry struct {
	Biome string
	Point ParameterPoint
}

// ParameterList - упорядкований список біомів одного пресету
type ParameterList []Entry

// Find повертає біом з найменшим fitness.
// При рівності виграє той, що раніше у списку.
func (l ParameterList) Find(t TargetPoint) (string, bool) {
	best, bestFit := -1, int64(0)
	for i := range l {
		if f := l[i].Point.fitness(t); best < 0 || f < bestFit {
			best, bestFit = i, f
		}
	}
	if best < 0 {
		return "", false
	}
	return l[best].Biome, true
}
