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
	"fmt"
	"math/bits"
)

// biomeIndex - індекс кварт-клітинки всередині секції: y, потім z, потім x
func biomeIndex(qx, qy, qz int32) int {
	return int((qy&3)<<4 | (qz&3)<<2 | qx&3)
}

// unpackBiomes розпаковує палітровий контейнер біомів однієї секції.
// Палітра з одного елемента не має даних взагалі.
// Інакше кожен індекс займає ceil(log2(len(palette))) бітів,
// і значення ніколи не переходить через межу двох long.
func unpackBiomes(palette []string, data []int64) (out [64]string, err error) {
	n := len(palette)
	switch {
	case n == 0:
		return out, errors.New("empty biome palette")
	case n == 1:
		for i := range out {
			out[i] = palette[0]
		}
		return out, nil
	}

	bitsPer := bits.Len(uint(n - 1))
	perLong := 64 / bitsPer
	if need := (len(out) + perLong - 1) / perLong; len(data) < need {
		return out, fmt.Errorf("biome data too short: %d longs, need %d", len(data), need)
	}
	mask := uint64(1)<<bitsPer - 1
	for i := range out {
		v := uint64(data[i/perLong]) >> (uint(i%perLong) * uint(bitsPer)) & mask
		if v >= uint64(n) {
			return out, fmt.Errorf("biome palette index %d out of range %d", v, n)
		}
		out[i] = palette[v]
	}
	return out, nil
}
