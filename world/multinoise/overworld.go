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

// Йоу, чат! Ванільний overworld не лежить у файлі, а збирається з таблиць:
// 5 температур x 5 вологостей, 7 рівнів ерозії, смуги континентальності
// і 13 зрізів дивності. Кожна клітинка таблиці дає біом, а кожен
// поверхневий біом додається двічі - для глибини 0 і глибини 1.
// Порядок записів важливий: при рівному fitness виграє раніший.

package multinoise

const ns = "minecraft:"

// SpanOf об'єднує два діапазони: від мінімуму першого до максимуму другого
func SpanOf(lo, hi Parameter) Parameter {
	return Parameter{Min: lo.Min, Max: hi.Max}
}

var (
	fullRange = Span(-1, 1)

	temperatures = [5]Parameter{Span(-1, -0.45), Span(-0.45, -0.15), Span(-0.15, 0.2), Span(0.2, 0.55), Span(0.55, 1)}
	humidities   = [5]Parameter{Span(-1, -0.35), Span(-0.35, -0.1), Span(-0.1, 0.1), Span(0.1, 0.3), Span(0.3, 1)}
	erosions     = [7]Parameter{Span(-1, -0.78), Span(-0.78, -0.375), Span(-0.375, -0.2225), Span(-0.2225, 0.05), Span(0.05, 0.45), Span(0.45, 0.55), Span(0.55, 1)}

	frozenRange   = temperatures[0]
	unfrozenRange = SpanOf(temperatures[1], temperatures[4])

	mushroomFieldsContinentalness = Span(-1.2, -1.05)
	deepOceanContinentalness      = Span(-1.05, -0.455)
	oceanContinentalness          = Span(-0.455, -0.19)
	coastContinentalness          = Span(-0.19, -0.11)
	inlandContinentalness         = Span(-0.11, 0.55)
	nearInlandContinentalness     = Span(-0.11, 0.03)
	midInlandContinentalness      = Span(0.03, 0.3)
	farInlandContinentalness      = Span(0.3, 1)
)

// Таблиці біомів [температура][вологість]. Порожній рядок - варіанту немає.
var (
	oceans = [2][5]string{
		{"deep_frozen_ocean", "deep_cold_ocean", "deep_ocean", "deep_lukewarm_ocean", "warm_ocean"},
		{"frozen_ocean", "cold_ocean", "ocean", "lukewarm_ocean", "warm_ocean"},
	}
	middleBiomes = [5][5]string{
		{"snowy_plains", "snowy_plains", "snowy_plains", "snowy_taiga", "taiga"},
		{"plains", "plains", "forest", "taiga", "old_growth_spruce_taiga"},
		{"flower_forest", "plains", "forest", "birch_forest", "dark_forest"},
		{"savanna", "savanna", "forest", "jungle", "jungle"},
		{"desert", "desert", "desert", "desert", "desert"},
	}
	middleBiomesVariant = [5][5]string{
		{"ice_spikes", "", "snowy_taiga", "", ""},
		{"", "", "", "", "old_growth_pine_taiga"},
		{"sunflower_plains", "", "", "old_growth_birch_forest", ""},
		{"", "", "plains", "sparse_jungle", "bamboo_jungle"},
		{"", "", "", "", ""},
	}
	plateauBiomes = [5][5]string{
		{"snowy_plains", "snowy_plains", "snowy_plains", "snowy_taiga", "snowy_taiga"},
		{"meadow", "meadow", "forest", "taiga", "old_growth_spruce_taiga"},
		{"meadow", "meadow", "meadow", "meadow", "dark_forest"},
		{"savanna_plateau", "savanna_plateau", "forest", "forest", "jungle"},
		{"badlands", "badlands", "badlands", "wooded_badlands", "wooded_badlands"},
	}
	plateauBiomesVariant = [5][5]string{
		{"ice_spikes", "", "", "", ""},
		{"cherry_grove", "", "meadow", "meadow", "old_growth_pine_taiga"},
		{"cherry_grove", "cherry_grove", "forest", "birch_forest", ""},
		{"", "", "", "", ""},
		{"eroded_badlands", "eroded_badlands", "", "", ""},
	}
	shatteredBiomes = [5][5]string{
		{"windswept_gravelly_hills", "windswept_gravelly_hills", "windswept_hills", "windswept_forest", "windswept_forest"},
		{"windswept_gravelly_hills", "windswept_gravelly_hills", "windswept_hills", "windswept_forest", "windswept_forest"},
		{"windswept_hills", "windswept_hills", "windswept_hills", "windswept_forest", "windswept_forest"},
		{"", "", "", "", ""},
		{"", "", "", "", ""},
	}
)

// Overworld будує ванільний список параметрів overworld
func Overworld() ParameterList {
	var b overworldBuilder
	b.offCoast()
	b.inland()
	b.underground()
	return b.list
}

type overworldBuilder struct {
	list ParameterList
}

func (b *overworldBuilder) add(t, h, c, e, d, w Parameter, biome string) {
	b.list = append(b.list, Entry{Biome: ns + biome, Point: ParameterPoint{
		Temperature:     t,
		Humidity:        h,
		Continentalness: c,
		Erosion:         e,
		Depth:           d,
		Weirdness:       w,
	}})
}

// surface - біом на поверхні і одразу під нею
func (b *overworldBuilder) surface(t, h, c, e, w Parameter, biome string) {
	b.add(t, h, c, e, Point(0), w, biome)
	b.add(t, h, c, e, Point(1), w, biome)
}

func (b *overworldBuilder) offCoast() {
	b.surface(fullRange, fullRange, mushroomFieldsContinentalness, fullRange, fullRange, "mushroom_fields")
	for i, t := range temperatures {
		b.surface(t, fullRange, deepOceanContinentalness, fullRange, fullRange, oceans[0][i])
		b.surface(t, fullRange, oceanContinentalness, fullRange, fullRange, oceans[1][i])
	}
}

func (b *overworldBuilder) inland() {
	b.midSlice(Span(-1, -0.93333334))
	b.highSlice(Span(-0.93333334, -0.7666667))
	b.peaks(Span(-0.7666667, -0.56666666))
	b.highSlice(Span(-0.56666666, -0.4))
	b.midSlice(Span(-0.4, -0.26666668))
	b.lowSlice(Span(-0.26666668, -0.05))
	b.valleys(Span(-0.05, 0.05))
	b.lowSlice(Span(0.05, 0.26666668))
	b.midSlice(Span(0.26666668, 0.4))
	b.highSlice(Span(0.4, 0.56666666))
	b.peaks(Span(0.56666666, 0.7666667))
	b.highSlice(Span(0.7666667, 0.93333334))
	b.midSlice(Span(0.93333334, 1))
}

func (b *overworldBuilder) peaks(w Parameter) {
	coastFar := SpanOf(coastContinentalness, farInlandContinentalness)
	coastNear := SpanOf(coastContinentalness, nearInlandContinentalness)
	midFar := SpanOf(midInlandContinentalness, farInlandContinentalness)
	for i, t := range temperatures {
		for j, h := range humidities {
			middle := pickMiddle(i, j, w)
			middleOrBadlands := pickMiddleOrBadlandsIfHot(i, j, w)
			middleOrSlope := pickMiddleOrBadlandsIfHotOrSlopeIfCold(i, j, w)
			plateau := pickPlateau(i, j, w)
			shattered := pickShattered(i, j, w)
			savanna := maybeWindsweptSavanna(i, j, w, shattered)
			peak := pickPeak(i, j, w)

			b.surface(t, h, coastFar, erosions[0], w, peak)
			b.surface(t, h, coastNear, erosions[1], w, middleOrSlope)
			b.surface(t, h, midFar, erosions[1], w, peak)
			b.surface(t, h, coastNear, SpanOf(erosions[2], erosions[3]), w, middle)
			b.surface(t, h, midFar, erosions[2], w, plateau)
			b.surface(t, h, midInlandContinentalness, erosions[3], w, middleOrBadlands)
			b.surface(t, h, farInlandContinentalness, erosions[3], w, plateau)
			b.surface(t, h, coastFar, erosions[4], w, middle)
			b.surface(t, h, coastNear, erosions[5], w, savanna)
			b.surface(t, h, midFar, erosions[5], w, shattered)
			b.surface(t, h, coastFar, erosions[6], w, middle)
		}
	}
}

func (b *overworldBuilder) highSlice(w Parameter) {
	coastFar := SpanOf(coastContinentalness, farInlandContinentalness)
	coastNear := SpanOf(coastContinentalness, nearInlandContinentalness)
	midFar := SpanOf(midInlandContinentalness, farInlandContinentalness)
	for i, t := range temperatures {
		for j, h := range humidities {
			middle := pickMiddle(i, j, w)
			middleOrBadlands := pickMiddleOrBadlandsIfHot(i, j, w)
			middleOrSlope := pickMiddleOrBadlandsIfHotOrSlopeIfCold(i, j, w)
			plateau := pickPlateau(i, j, w)
			shattered := pickShattered(i, j, w)
			savanna := maybeWindsweptSavanna(i, j, w, middle)
			slope := pickSlope(i, j, w)
			peak := pickPeak(i, j, w)

			b.surface(t, h, coastContinentalness, SpanOf(erosions[0], erosions[1]), w, middle)
			b.surface(t, h, nearInlandContinentalness, erosions[0], w, slope)
			b.surface(t, h, midFar, erosions[0], w, peak)
			b.surface(t, h, nearInlandContinentalness, erosions[1], w, middleOrSlope)
			b.surface(t, h, midFar, erosions[1], w, slope)
			b.surface(t, h, coastNear, SpanOf(erosions[2], erosions[3]), w, middle)
			b.surface(t, h, midFar, erosions[2], w, plateau)
			b.surface(t, h, midInlandContinentalness, erosions[3], w, middleOrBadlands)
			b.surface(t, h, farInlandContinentalness, erosions[3], w, plateau)
			b.surface(t, h, coastFar, erosions[4], w, middle)
			b.surface(t, h, coastNear, erosions[5], w, savanna)
			b.surface(t, h, midFar, erosions[5], w, shattered)
			b.surface(t, h, coastFar, erosions[6], w, middle)
		}
	}
}

// swamps - спільний початок середніх і низьких зрізів
func (b *overworldBuilder) swamps(w Parameter) {
	nearFar := SpanOf(nearInlandContinentalness, farInlandContinentalness)
	b.surface(fullRange, fullRange, coastContinentalness, SpanOf(erosions[0], erosions[2]), w, "stony_shore")
	b.surface(SpanOf(temperatures[1], temperatures[2]), fullRange, nearFar, erosions[6], w, "swamp")
	b.surface(SpanOf(temperatures[3], temperatures[4]), fullRange, nearFar, erosions[6], w, "mangrove_swamp")
}

func (b *overworldBuilder) midSlice(w Parameter) {
	b.swamps(w)
	coastFar := SpanOf(coastContinentalness, farInlandContinentalness)
	coastNear := SpanOf(coastContinentalness, nearInlandContinentalness)
	nearFar := SpanOf(nearInlandContinentalness, farInlandContinentalness)
	nearMid := SpanOf(nearInlandContinentalness, midInlandContinentalness)
	midFar := SpanOf(midInlandContinentalness, farInlandContinentalness)
	for i, t := range temperatures {
		for j, h := range humidities {
			middle := pickMiddle(i, j, w)
			middleOrBadlands := pickMiddleOrBadlandsIfHot(i, j, w)
			middleOrSlope := pickMiddleOrBadlandsIfHotOrSlopeIfCold(i, j, w)
			shattered := pickShattered(i, j, w)
			plateau := pickPlateau(i, j, w)
			beach := pickBeach(i)
			savanna := maybeWindsweptSavanna(i, j, w, middle)
			shatteredCoast := pickShatteredCoast(i, j, w)
			slope := pickSlope(i, j, w)

			b.surface(t, h, nearFar, erosions[0], w, slope)
			b.surface(t, h, nearMid, erosions[1], w, middleOrSlope)
			if i == 0 {
				b.surface(t, h, farInlandContinentalness, erosions[1], w, slope)
			} else {
				b.surface(t, h, farInlandContinentalness, erosions[1], w, plateau)
			}
			b.surface(t, h, nearInlandContinentalness, erosions[2], w, middle)
			b.surface(t, h, midInlandContinentalness, erosions[2], w, middleOrBadlands)
			b.surface(t, h, farInlandContinentalness, erosions[2], w, plateau)
			b.surface(t, h, coastNear, erosions[3], w, middle)
			b.surface(t, h, midFar, erosions[3], w, middleOrBadlands)
			if w.Max < 0 {
				b.surface(t, h, coastContinentalness, erosions[4], w, beach)
				b.surface(t, h, nearFar, erosions[4], w, middle)
			} else {
				b.surface(t, h, coastFar, erosions[4], w, middle)
			}
			b.surface(t, h, coastContinentalness, erosions[5], w, shatteredCoast)
			b.surface(t, h, nearInlandContinentalness, erosions[5], w, savanna)
			b.surface(t, h, midFar, erosions[5], w, shattered)
			if w.Max < 0 {
				b.surface(t, h, coastContinentalness, erosions[6], w, beach)
			} else {
				b.surface(t, h, coastContinentalness, erosions[6], w, middle)
			}
			if i == 0 {
				b.surface(t, h, nearFar, erosions[6], w, middle)
			}
		}
	}
}

func (b *overworldBuilder) lowSlice(w Parameter) {
	b.swamps(w)
	nearFar := SpanOf(nearInlandContinentalness, farInlandContinentalness)
	midFar := SpanOf(midInlandContinentalness, farInlandContinentalness)
	for i, t := range temperatures {
		for j, h := range humidities {
			middle := pickMiddle(i, j, w)
			middleOrBadlands := pickMiddleOrBadlandsIfHot(i, j, w)
			middleOrSlope := pickMiddleOrBadlandsIfHotOrSlopeIfCold(i, j, w)
			beach := pickBeach(i)
			savanna := maybeWindsweptSavanna(i, j, w, middle)
			shatteredCoast := pickShatteredCoast(i, j, w)

			b.surface(t, h, nearInlandContinentalness, SpanOf(erosions[0], erosions[1]), w, middleOrBadlands)
			b.surface(t, h, midFar, SpanOf(erosions[0], erosions[1]), w, middleOrSlope)
			b.surface(t, h, nearInlandContinentalness, SpanOf(erosions[2], erosions[3]), w, middle)
			b.surface(t, h, midFar, SpanOf(erosions[2], erosions[3]), w, middleOrBadlands)
			b.surface(t, h, coastContinentalness, SpanOf(erosions[3], erosions[4]), w, beach)
			b.surface(t, h, nearFar, erosions[4], w, middle)
			b.surface(t, h, coastContinentalness, erosions[5], w, shatteredCoast)
			b.surface(t, h, nearInlandContinentalness, erosions[5], w, savanna)
			b.surface(t, h, midFar, erosions[5], w, middle)
			b.surface(t, h, coastContinentalness, erosions[6], w, beach)
			if i == 0 {
				b.surface(t, h, nearFar, erosions[6], w, middle)
			}
		}
	}
}

func (b *overworldBuilder) valleys(w Parameter) {
	coastFar := SpanOf(coastContinentalness, farInlandContinentalness)
	inlandFar := SpanOf(inlandContinentalness, farInlandContinentalness)
	midFar := SpanOf(midInlandContinentalness, farInlandContinentalness)
	lowErosion := SpanOf(erosions[0], erosions[1])
	frozenCoast, coast := "frozen_river", "river"
	if w.Max < 0 {
		frozenCoast, coast = "stony_shore", "stony_shore"
	}

	b.surface(frozenRange, fullRange, coastContinentalness, lowErosion, w, frozenCoast)
	b.surface(unfrozenRange, fullRange, coastContinentalness, lowErosion, w, coast)
	b.surface(frozenRange, fullRange, nearInlandContinentalness, lowErosion, w, "frozen_river")
	b.surface(unfrozenRange, fullRange, nearInlandContinentalness, lowErosion, w, "river")
	b.surface(frozenRange, fullRange, coastFar, SpanOf(erosions[2], erosions[5]), w, "frozen_river")
	b.surface(unfrozenRange, fullRange, coastFar, SpanOf(erosions[2], erosions[5]), w, "river")
	b.surface(frozenRange, fullRange, coastContinentalness, erosions[6], w, "frozen_river")
	b.surface(unfrozenRange, fullRange, coastContinentalness, erosions[6], w, "river")
	b.surface(SpanOf(temperatures[1], temperatures[2]), fullRange, inlandFar, erosions[6], w, "swamp")
	b.surface(SpanOf(temperatures[3], temperatures[4]), fullRange, inlandFar, erosions[6], w, "mangrove_swamp")
	b.surface(frozenRange, fullRange, inlandFar, erosions[6], w, "frozen_river")
	for i, t := range temperatures {
		for j, h := range humidities {
			b.surface(t, h, midFar, lowErosion, w, pickMiddleOrBadlandsIfHot(i, j, w))
		}
	}
}

// underground - печерні біоми: глибина 0.2..0.9, deep_dark на самому дні
func (b *overworldBuilder) underground() {
	caves := Span(0.2, 0.9)
	b.add(fullRange, fullRange, Span(0.8, 1), fullRange, caves, fullRange, "dripstone_caves")
	b.add(fullRange, Span(0.7, 1), fullRange, fullRange, caves, fullRange, "lush_caves")
	b.add(fullRange, fullRange, fullRange, SpanOf(erosions[0], erosions[1]), Point(1.1), fullRange, "deep_dark")
}

func pickMiddle(t, h int, w Parameter) string {
	if w.Max < 0 {
		return middleBiomes[t][h]
	}
	if v := middleBiomesVariant[t][h]; v != "" {
		return v
	}
	return middleBiomes[t][h]
}

func pickMiddleOrBadlandsIfHot(t, h int, w Parameter) string {
	if t == 4 {
		return pickBadlands(h, w)
	}
	return pickMiddle(t, h, w)
}

func pickMiddleOrBadlandsIfHotOrSlopeIfCold(t, h int, w Parameter) string {
	if t == 0 {
		return pickSlope(t, h, w)
	}
	return pickMiddleOrBadlandsIfHot(t, h, w)
}

func maybeWindsweptSavanna(t, h int, w Parameter, fallback string) string {
	if t > 1 && h < 4 && w.Max >= 0 {
		return "windswept_savanna"
	}
	return fallback
}

func pickShatteredCoast(t, h int, w Parameter) string {
	fallback := pickBeach(t)
	if w.Max >= 0 {
		fallback = pickMiddle(t, h, w)
	}
	return maybeWindsweptSavanna(t, h, w, fallback)
}

func pickBeach(t int) string {
	switch t {
	case 0:
		return "snowy_beach"
	case 4:
		return "desert"
	default:
		return "beach"
	}
}

func pickBadlands(h int, w Parameter) string {
	switch {
	case h < 2 && w.Max < 0:
		return "badlands"
	case h < 2:
		return "eroded_badlands"
	case h < 3:
		return "badlands"
	default:
		return "wooded_badlands"
	}
}

func pickPlateau(t, h int, w Parameter) string {
	if w.Max >= 0 {
		if v := plateauBiomesVariant[t][h]; v != "" {
			return v
		}
	}
	return plateauBiomes[t][h]
}

func pickPeak(t, h int, w Parameter) string {
	switch {
	case t <= 2 && w.Max < 0:
		return "jagged_peaks"
	case t <= 2:
		return "frozen_peaks"
	case t == 3:
		return "stony_peaks"
	default:
		return pickBadlands(h, w)
	}
}

func pickSlope(t, h int, w Parameter) string {
	switch {
	case t >= 3:
		return pickPlateau(t, h, w)
	case h <= 1:
		return "snowy_slopes"
	default:
		return "grove"
	}
}

func pickShattered(t, h int, w Parameter) string {
	if v := shatteredBiomes[t][h]; v != "" {
		return v
	}
	return pickMiddle(t, h, w)
}

// Nether - ванільний пресет незеру
func Nether() ParameterList {
	return ParameterList{
		{Biome: ns + "nether_wastes", Point: ParameterPoint{}},
		{Biome: ns + "soul_sand_valley", Point: ParameterPoint{Humidity: Point(-0.5)}},
		{Biome: ns + "crimson_forest", Point: ParameterPoint{Temperature: Point(0.4)}},
		{Biome: ns + "warped_forest", Point: ParameterPoint{Humidity: Point(0.5), Offset: Quantize(0.375)}},
		{Biome: ns + "basalt_deltas", Point: ParameterPoint{Temperature: Point(-0.5), Offset: Quantize(0.175)}},
	}
}

// Vanilla повертає вбудовані пресети, які знає ванільний сервер
func Vanilla() Presets {
	return Presets{
		"minecraft:overworld": Overworld(),
		"minecraft:nether":    Nether(),
	}
}

// Merge додає пресети other поверх p. Однакові імена замінюються.
func (p Presets) Merge(other Presets) Presets {
	merged := make(Presets, len(p)+len(other))
	for name, list := range p {
		merged[name] = list
	}
	for name, list := range other {
		merged[name] = list
	}
	return merged
}
